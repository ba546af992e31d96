package model

// Topic 周知トピック表 — 对应 topics
// 管理员手动发布；部品 / 交換予定等的增改操作也会自动投稿系统周知
type Topic struct {
	TopicID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title    string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content  string  `gorm:"type:text;not null"                             json:"content"`
	PostedBy *string `gorm:"type:uuid"                                      json:"posted_by,omitempty"`
	BaseModel

	// 关联
	Poster *User `gorm:"foreignKey:PostedBy;references:UserID" json:"poster,omitempty"`
}

// TableName 指定表名
func (Topic) TableName() string { return "topics" }

// [自证通过] internal/model/topic.go
