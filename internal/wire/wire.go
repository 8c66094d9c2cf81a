package wire

import (
	"net/http"

	"job-portal/internal/adaptor"
	"job-portal/internal/data/repository"
	"job-portal/internal/usecase"
	"job-portal/pkg/blob"
	"job-portal/pkg/mailer"
	"job-portal/pkg/middleware"
	"job-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers, and the router
func Wiring(
	repo *repository.Repository,
	mail mailer.Service,
	blobStore blob.Store,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, mail, blobStore, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.App.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	wireAuth(r, handler.Auth, repo, config, logger)
	wireJob(r, handler.Job, repo, config, logger)
	wireAdmin(r, handler.Admin, repo, config, logger)
	wireMessage(r, handler.Message, repo, config, logger)
	wireNotification(r, handler.Notification, repo, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
