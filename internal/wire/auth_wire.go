package wire

import (
	"time"

	"job-portal/internal/adaptor"
	"job-portal/internal/data/repository"
	"job-portal/pkg/middleware"
	"job-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Credential endpoints carry a per-IP rate limit on top of the
	// per-email OTP budget enforced in the service.
	limited := middleware.RateLimit(repo.RateLimit, 20, time.Minute, log)

	r.Group(func(r chi.Router) {
		r.Use(limited)

		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/verify-email", authHandler.VerifyEmail)
		r.Post("/api/auth/resend-otp", authHandler.ResendOTP)
		r.Post("/api/auth/login", authHandler.Login)
		r.Post("/api/auth/refresh", authHandler.Refresh)
		r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/api/auth/reset-password", authHandler.ResetPassword)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.AccessSecret, repo.User, log))

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", authHandler.Me)
		r.Put("/api/auth/me", authHandler.UpdateProfile)
		r.Put("/api/auth/me/avatar", authHandler.UploadAvatar)
		r.Put("/api/auth/password", authHandler.ChangePassword)
	})
}
