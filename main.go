package main

import (
	"context"
	"log"
	"time"

	"job-portal/cmd"
	"job-portal/internal/data/repository"
	"job-portal/internal/wire"
	"job-portal/pkg/blob"
	"job-portal/pkg/database"
	"job-portal/pkg/mailer"
	"job-portal/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize repositories and outbound services
	repos := repository.NewRepository(db, logger)
	mail := mailer.New(config.Email, config.App.FrontendURL)

	blobStore, err := blob.NewS3Store(config.S3)
	if err != nil {
		logger.Fatal("Failed to init object storage", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, mail, blobStore, config, logger)

	// Periodic housekeeping: trim expired OTPs and stale rate limit rows.
	// Expiry is enforced at verification time; this only keeps tables lean.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 15m", func() {
		ctx := context.Background()
		if _, err := app.Service.OTP.SweepExpired(ctx); err != nil {
			logger.Warn("OTP sweep failed", zap.Error(err))
		}
		if _, err := repos.RateLimit.DeleteStale(ctx, 24*time.Hour); err != nil {
			logger.Warn("Rate limit cleanup failed", zap.Error(err))
		}
	}); err != nil {
		logger.Warn("Failed to schedule housekeeping job", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
