package model

import "time"

// BaseModel 通用审计字段（长生命周期业务模型嵌入）
// 追加型履历表（记录 / 台账）只带 CreatedAt，不嵌入本结构
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
