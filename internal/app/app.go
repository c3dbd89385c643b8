package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cradoe/treelance/internal/cache"
	"github.com/cradoe/treelance/internal/config"
	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/file"
	"github.com/cradoe/treelance/internal/helper"
	"github.com/cradoe/treelance/internal/repository"
	seeders "github.com/cradoe/treelance/internal/seeder"
	"github.com/cradoe/treelance/internal/service"
	"github.com/cradoe/treelance/internal/smtp"
	"github.com/cradoe/treelance/internal/stream"
	"github.com/joho/godotenv"
)

// Essential services and resources are exposed to the application
// so handlers and workers can reach them when they need them.
type Application struct {
	Config        config.Config
	DB            repository.Database
	Logger        *slog.Logger
	Mailer        *smtp.Mailer
	WG            sync.WaitGroup
	Cache         *cache.Cache
	Kafka         *stream.KafkaStream
	FileUploader  *file.FileUploader
	Verifications *service.VerificationService
	errorHandler  *errHandler.ErrorRepository
	Helper        *helper.HelperRepository
}

func NewApplication(logger *slog.Logger) (*Application, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	cfg := LoadConfig()

	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := seeders.New(db.Tier(), logger).Run(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed contractor tiers: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	redisCache := cache.New(cfg.Redis.Server, cfg.Redis.DB)
	kafkaStream := stream.New(cfg.KafkaServers, logger)

	app := &Application{
		Config:       cfg,
		DB:           db,
		Logger:       logger,
		Mailer:       mailer,
		Cache:        redisCache,
		Kafka:        kafkaStream,
		FileUploader: file.New(cfg.FileUploader.CloudName, cfg.FileUploader.ApiKey, cfg.FileUploader.ApiSecret),
	}

	app.errorHandler = errHandler.New(cfg.Notifications.Email, cfg.BaseURL, mailer, logger)
	app.Helper = helper.New(cfg.BaseURL, &app.WG, app.errorHandler)
	app.Verifications = service.NewVerificationService(db.Verification(), db.Activity(), redisCache, kafkaStream, logger, cfg.Redis.TTL)

	return app, nil
}

// Close releases every connection the application holds. Queued events
// are flushed before the broker connection is dropped.
func (app *Application) Close() {
	app.Kafka.Close()

	if err := app.Cache.Close(); err != nil {
		app.Logger.Warn("failed to close cache", "error", err)
	}

	if err := app.DB.Close(); err != nil {
		app.Logger.Warn("failed to close database", "error", err)
	}
}
