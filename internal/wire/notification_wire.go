package wire

import (
	"job-portal/internal/adaptor"
	"job-portal/internal/data/repository"
	"job-portal/pkg/middleware"
	"job-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== AUTHENTICATED ROUTES ====================
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.AccessSecret, repo.User, log))

		r.Get("/", notificationHandler.List)
		r.Get("/unread-count", notificationHandler.UnreadCount)
		r.Put("/read-all", notificationHandler.MarkAllRead)
		r.Put("/{id}/read", notificationHandler.MarkRead)
		r.Delete("/{id}", notificationHandler.Delete)
	})
}
