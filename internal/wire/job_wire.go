package wire

import (
	"job-portal/internal/adaptor"
	"job-portal/internal/data/repository"
	"job-portal/pkg/middleware"
	"job-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireJob(
	r chi.Router,
	jobHandler *adaptor.JobHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Listings stay open; a valid token personalizes the detail view
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(config.JWT.AccessSecret, repo.User))

		r.Get("/api/jobs", jobHandler.List)
		r.Get("/api/jobs/{id}", jobHandler.Get)
	})

	// ==================== RECRUITER ROUTES (approved only) ====================
	// Job-mutating routes are gated on approval; unapproved recruiters
	// can still read everything above.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.AccessSecret, repo.User, log))
		r.Use(middleware.RecruiterGate(log))

		r.Post("/api/jobs", jobHandler.Create)
		r.Put("/api/jobs/{id}", jobHandler.Update)
		r.Delete("/api/jobs/{id}", jobHandler.Delete)
		r.Put("/api/applications/{id}/status", jobHandler.UpdateApplicationStatus)
	})

	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.AccessSecret, repo.User, log))

		r.Post("/api/jobs/{id}/apply", jobHandler.Apply)
		r.Get("/api/jobs/{id}/applications", jobHandler.ListApplicationsForJob)
		r.Get("/api/applications", jobHandler.ListMyApplications)
		r.Delete("/api/applications/{id}", jobHandler.Withdraw)

		r.Post("/api/jobs/{id}/bookmark", jobHandler.AddBookmark)
		r.Delete("/api/jobs/{id}/bookmark", jobHandler.RemoveBookmark)
		r.Get("/api/bookmarks", jobHandler.ListBookmarks)

		r.Get("/api/stats/recruiter", jobHandler.RecruiterStats)
		r.Get("/api/stats/candidate", jobHandler.CandidateStats)
	})
}
