package wire

import (
	"job-portal/internal/adaptor"
	"job-portal/internal/data/repository"
	"job-portal/pkg/middleware"
	"job-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.AccessSecret, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/approvals", adminHandler.ListApprovals)
		r.Get("/approvals/{id}", adminHandler.GetApproval)
		r.Post("/approvals/{id}/approve", adminHandler.Approve)
		r.Post("/approvals/{id}/reject", adminHandler.Reject)
		r.Delete("/approvals/{id}", adminHandler.DeleteApproval)

		r.Get("/stats", adminHandler.Stats)

		r.Get("/users", adminHandler.ListUsers)
		r.Put("/users/{id}/status", adminHandler.SetUserActive)
		r.Put("/users/{id}/role", adminHandler.SetUserRole)
		r.Delete("/users/{id}", adminHandler.DeleteUser)

		r.Get("/audit-logs", adminHandler.ListAuditLogs)
	})
}
