package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/model"
)

// TopicRepository 周知トピック数据访问接口
type TopicRepository interface {
	Create(ctx context.Context, topic *model.Topic) error
	GetByID(ctx context.Context, id string) (*model.Topic, error)
	List(ctx context.Context, limit int) ([]model.Topic, error)
	Update(ctx context.Context, topic *model.Topic) error
	Delete(ctx context.Context, id string) error
}

// ── Topic Repository 实现 ──

type topicRepo struct {
	db *gorm.DB
}

func NewTopicRepo(db *gorm.DB) TopicRepository {
	return &topicRepo{db: db}
}

func (r *topicRepo) Create(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *topicRepo) GetByID(ctx context.Context, id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).
		Preload("Poster").
		Where("topic_id = ?", id).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepo) List(ctx context.Context, limit int) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.WithContext(ctx).
		Preload("Poster").
		Order("created_at DESC").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

func (r *topicRepo) Update(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Save(topic).Error
}

func (r *topicRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("topic_id = ?", id).
		Delete(&model.Topic{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/topic_repo.go
