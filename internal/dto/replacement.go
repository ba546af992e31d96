package dto

// ── 部品交換モジュール DTO ──

// CreateReplacementScheduleRequest 创建交換予定请求
type CreateReplacementScheduleRequest struct {
	MachineName string  `json:"machine_name" binding:"required,max=100"`
	UnitName    *string `json:"unit_name"    binding:"omitempty,max=100"`
	PartName    string  `json:"part_name"    binding:"required,max=100"`
	PartNumber  *string `json:"part_number"  binding:"omitempty,max=100"`
	CycleDays   int     `json:"cycle_days"   binding:"required,min=1"`
	Description *string `json:"description"`
}

// UpdateReplacementScheduleRequest 更新交換予定请求（部分更新）
type UpdateReplacementScheduleRequest struct {
	MachineName *string `json:"machine_name" binding:"omitempty,max=100"`
	UnitName    *string `json:"unit_name"    binding:"omitempty,max=100"`
	PartName    *string `json:"part_name"    binding:"omitempty,max=100"`
	PartNumber  *string `json:"part_number"  binding:"omitempty,max=100"`
	CycleDays   *int    `json:"cycle_days"   binding:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// PerformReplacementRequest 交換実施请求
type PerformReplacementRequest struct {
	ReplacedAt *string `json:"replaced_at" binding:"omitempty"` // RFC3339 或 2006-01-02
	Notes      *string `json:"notes"`
}

// ReplacementScheduleStatusResponse 带期限状态的交換予定
type ReplacementScheduleStatusResponse struct {
	ID           string  `json:"id"`
	MachineName  string  `json:"machine_name"`
	UnitName     *string `json:"unit_name,omitempty"`
	PartName     string  `json:"part_name"`
	PartNumber   *string `json:"part_number,omitempty"`
	CycleDays    int     `json:"cycle_days"`
	Description  *string `json:"description,omitempty"`
	IsActive     bool    `json:"is_active"`
	LastReplaced *string `json:"last_replaced,omitempty"`
	NextDueDate  *string `json:"next_due_date,omitempty"`
	DaysUntilDue *int    `json:"days_until_due,omitempty"`
	Status       string  `json:"status"` // overdue | due_soon | upcoming | ok
}

// ReplacementRecordResponse 交換記録响应
type ReplacementRecordResponse struct {
	ID          string  `json:"id"`
	ScheduleID  string  `json:"schedule_id"`
	ReplacedAt  string  `json:"replaced_at"`
	ReplacedBy  *string `json:"replaced_by,omitempty"`
	NextDueDate string  `json:"next_due_date"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// [自证通过] internal/dto/replacement.go
