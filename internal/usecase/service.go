package usecase

import (
	"job-portal/internal/data/repository"
	"job-portal/pkg/blob"
	"job-portal/pkg/mailer"
	"job-portal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	OTP          OTPService
	Registration RegistrationService
	Auth         AuthService
	Admin        AdminService
	Job          JobService
	Message      MessageService
	Notification NotificationService
}

func NewService(
	repo *repository.Repository,
	mail mailer.Service,
	blobStore blob.Store,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	otp := NewOTPService(repo, mail, config, log)
	auth := NewAuthService(repo, otp, blobStore, config, log)

	return &Service{
		OTP:          otp,
		Registration: NewRegistrationService(repo, otp, auth, config, log),
		Auth:         auth,
		Admin:        NewAdminService(repo, mail, log),
		Job:          NewJobService(repo, blobStore, log),
		Message:      NewMessageService(repo, log),
		Notification: NewNotificationService(repo, log),
	}
}
