package model

import "time"

// LubricationPoint 給油ポイント表 — 对应 lubrication_points
// (machine_name, location) 组合唯一，由数据库约束保证
type LubricationPoint struct {
	PointID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"id"`
	MachineName string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_lub_point,priority:1" json:"machine_name"`
	Location    string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_lub_point,priority:2" json:"location"`
	CycleDays   int     `gorm:"not null;check:cycle_days > 0"                             json:"cycle_days"`
	Description *string `gorm:"type:text"                                                 json:"description,omitempty"`
	IsActive    bool    `gorm:"not null;default:true"                                     json:"is_active"`
	CreatedBy   *string `gorm:"type:uuid"                                                 json:"created_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (LubricationPoint) TableName() string { return "lubrication_points" }

// LubricationRecord 給油記録表 — 对应 lubrication_records（追加型，创建后不可变）
type LubricationRecord struct {
	RecordID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PointID     string    `gorm:"type:uuid;not null;index"                       json:"point_id"`
	PerformedAt time.Time `gorm:"not null"                                       json:"performed_at"`
	PerformedBy *string   `gorm:"type:uuid"                                      json:"performed_by,omitempty"`
	NextDueDate time.Time `gorm:"type:date;not null"                             json:"next_due_date"` // performed_at + cycle_days，写入时计算
	Notes       *string   `gorm:"type:text"                                      json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (LubricationRecord) TableName() string { return "lubrication_records" }

// [自证通过] internal/model/lubrication.go
