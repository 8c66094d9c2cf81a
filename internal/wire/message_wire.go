package wire

import (
	"job-portal/internal/adaptor"
	"job-portal/internal/data/repository"
	"job-portal/pkg/middleware"
	"job-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMessage(
	r chi.Router,
	messageHandler *adaptor.MessageHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== AUTHENTICATED ROUTES ====================
	r.Route("/api/conversations", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.AccessSecret, repo.User, log))

		r.Post("/", messageHandler.StartConversation)
		r.Get("/", messageHandler.ListConversations)
		r.Get("/unread-count", messageHandler.UnreadCount)
		r.Post("/{id}/messages", messageHandler.Send)
		r.Get("/{id}/messages", messageHandler.ListMessages)
		r.Put("/{id}/read", messageHandler.MarkRead)
		r.Delete("/{id}", messageHandler.DeleteConversation)
	})
}
