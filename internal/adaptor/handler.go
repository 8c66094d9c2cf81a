package adaptor

import (
	"job-portal/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Job          *JobHandler
	Admin        *AdminHandler
	Message      *MessageHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, service.Registration, log),
		Job:          NewJobHandler(service.Job, log),
		Admin:        NewAdminHandler(service.Admin, log),
		Message:      NewMessageHandler(service.Message, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
