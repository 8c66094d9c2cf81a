package repository

import (
	"job-portal/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	OTP          OTPRepository
	Approval     ApprovalRepository
	Job          JobRepository
	Application  ApplicationRepository
	Conversation ConversationRepository
	Message      MessageRepository
	Notification NotificationRepository
	Audit        AuditRepository
	RateLimit    RateLimitRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		OTP:          NewOTPRepository(db, log),
		Approval:     NewApprovalRepository(db, log),
		Job:          NewJobRepository(db, log),
		Application:  NewApplicationRepository(db, log),
		Conversation: NewConversationRepository(db, log),
		Message:      NewMessageRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Audit:        NewAuditRepository(db, log),
		RateLimit:    NewRateLimitRepository(db),
	}
}
