package model

import "time"

// 在库操作种别（入出库台账的 action_type，日文值与前端约定一致）
const (
	ActionReceive = "入庫" // 入库
	ActionIssue   = "出庫" // 出库
	ActionAdjust  = "調整" // 盘点调整（直接设定库存值）
	ActionOrder   = "発注" // 发注依赖（不变更库存）
)

// 库存状态（派生值，不落库）
const (
	StockSufficient = "sufficient"
	StockLow        = "low"
	StockOut        = "out"
)

// Part 部品表 — 对应 parts
type Part struct {
	PartID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PartNumber   *string `gorm:"type:varchar(100);uniqueIndex"                  json:"part_number,omitempty"`
	PartName     string  `gorm:"type:varchar(100);not null"                     json:"part_name"`
	CurrentStock int     `gorm:"not null;default:0;check:current_stock >= 0"    json:"current_stock"`
	MinStock     int     `gorm:"not null;default:0"                             json:"min_stock"`
	Unit         string  `gorm:"type:varchar(20);not null"                      json:"unit"`
	UnitName     *string `gorm:"type:varchar(100)"                              json:"unit_name,omitempty"`
	Location     *string `gorm:"type:varchar(100)"                              json:"location,omitempty"`
	ShelfBoxName *string `gorm:"type:varchar(100)"                              json:"shelf_box_name,omitempty"`
	Description  *string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	CreatedBy    *string `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Part) TableName() string { return "parts" }

// NeedsOrder 是否需要发注（current_stock < min_stock，派生值）
func (p *Part) NeedsOrder() bool {
	return p.CurrentStock < p.MinStock
}

// StockStatus 库存状态（派生值）
func (p *Part) StockStatus() string {
	switch {
	case p.CurrentStock == 0:
		return StockOut
	case p.CurrentStock < p.MinStock:
		return StockLow
	default:
		return StockSufficient
	}
}

// PartHistory 入出庫履歴表 — 对应 part_history（追加型台账）
// 每条记录保存操作前后的库存快照；出库后 stock_after 不得为负
type PartHistory struct {
	HistoryID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PartID      string    `gorm:"type:uuid;not null;index"                       json:"part_id"`
	ActionType  string    `gorm:"type:varchar(10);not null"                      json:"action_type"` // 入庫 | 出庫 | 調整 | 発注
	Quantity    int       `gorm:"not null"                                       json:"quantity"`
	StockBefore int       `gorm:"not null"                                       json:"stock_before"`
	StockAfter  int       `gorm:"not null;check:stock_after >= 0"                json:"stock_after"`
	PerformedBy *string   `gorm:"type:uuid"                                      json:"performed_by,omitempty"`
	Notes       *string   `gorm:"type:text"                                      json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (PartHistory) TableName() string { return "part_history" }

// [自证通过] internal/model/part.go
