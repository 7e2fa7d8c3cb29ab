// @title TaxMitra API
// @version 1.0
// @description GST tax slab, entry and returns service
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"taxmitra/internal/config"
	"taxmitra/internal/email/noop"
	"taxmitra/internal/email/ses"
	"taxmitra/internal/handler"
	"taxmitra/internal/port"
	"taxmitra/internal/repository/postgres"
	"taxmitra/internal/router"
	"taxmitra/internal/service"
	s3storage "taxmitra/internal/storage/s3"
	"taxmitra/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Setup(logger.Config{Format: cfg.Log.Format, Level: cfg.Log.Level})

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	slabRepo := postgres.NewSlabRepo(db)
	entryRepo := postgres.NewEntryRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize workbook archiving, disabled unless a bucket is configured
	var storage port.ObjectStorage
	if cfg.Archive.Enabled() {
		storage, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Info().Str("bucket", cfg.Archive.Bucket).Msg("workbook archiving enabled")
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	slabSvc := service.NewSlabService(slabRepo)
	entrySvc := service.NewEntryService(entryRepo, slabRepo)
	reportSvc := service.NewReportService(entryRepo, slabRepo, storage, emailSender, cfg.Archive.Bucket)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	slabH := handler.NewSlabHandler(slabSvc)
	entryH := handler.NewEntryHandler(entrySvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, slabH, entryH, reportH, healthH)

	log.Info().Str("addr", cfg.Server.Port).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
