package model

import "time"

// ReplacementSchedule 部品交換予定表 — 对应 replacement_schedules
// (machine_name, unit_name, part_name) 组合唯一，由数据库约束保证
type ReplacementSchedule struct {
	ScheduleID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"             json:"id"`
	MachineName string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_repl_sched,priority:1" json:"machine_name"`
	UnitName    *string `gorm:"type:varchar(100);uniqueIndex:uq_repl_sched,priority:2"    json:"unit_name,omitempty"`
	PartName    string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_repl_sched,priority:3" json:"part_name"`
	PartNumber  *string `gorm:"type:varchar(100)"                                          json:"part_number,omitempty"`
	CycleDays   int     `gorm:"not null;check:cycle_days > 0"                              json:"cycle_days"`
	Description *string `gorm:"type:text"                                                  json:"description,omitempty"`
	IsActive    bool    `gorm:"not null;default:true"                                      json:"is_active"`
	CreatedBy   *string `gorm:"type:uuid"                                                  json:"created_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ReplacementSchedule) TableName() string { return "replacement_schedules" }

// ReplacementRecord 部品交換記録表 — 对应 replacement_records（追加型，创建后不可变）
type ReplacementRecord struct {
	RecordID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScheduleID  string    `gorm:"type:uuid;not null;index"                       json:"schedule_id"`
	ReplacedAt  time.Time `gorm:"not null"                                       json:"replaced_at"`
	ReplacedBy  *string   `gorm:"type:uuid"                                      json:"replaced_by,omitempty"`
	NextDueDate time.Time `gorm:"type:date;not null"                             json:"next_due_date"` // replaced_at + cycle_days，写入时计算
	Notes       *string   `gorm:"type:text"                                      json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ReplacementRecord) TableName() string { return "replacement_records" }

// [自证通过] internal/model/replacement.go
