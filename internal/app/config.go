package app

import (
	"time"

	"github.com/cradoe/treelance/internal/config"
	"github.com/cradoe/treelance/internal/env"
)

// LoadConfig reads configuration from the environment.
// Default values are for development only: make sure no production-level
// value is ever exposed as a default here.
func LoadConfig() config.Config {
	var cfg config.Config

	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:4444")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 4444)

	cfg.Db.Dsn = env.GetString("DB_DSN", "user:pass@localhost:5432/treelance?sslmode=disable")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)

	cfg.Jwt.SecretKey = env.GetString("JWT_SECRET_KEY", "3lq6n2xuy6sgqfzkb4ytq7wdxhgaj2vc")

	// server errors and tier changes are not emailed when NOTIFICATIONS_EMAIL is unset
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "example_username")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "pa55word")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "Tree-Lance <no_reply@example.org>")

	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "localhost:9092")

	cfg.Redis.Server = env.GetString("REDIS_SERVER", "localhost:6379")
	cfg.Redis.DB = env.GetInt("REDIS_DB", 0)
	cfg.Redis.TTL = env.GetDuration("CACHE_TTL", 10*time.Minute)

	cfg.FileUploader.CloudName = env.GetString("CLOUDINARY_CLOUD_NAME", "")
	cfg.FileUploader.ApiKey = env.GetString("CLOUDINARY_API_KEY", "")
	cfg.FileUploader.ApiSecret = env.GetString("CLOUDINARY_API_SECRET", "")

	cfg.Reverify.Interval = env.GetDuration("REVERIFY_INTERVAL", 24*time.Hour)
	cfg.Reverify.BatchSize = env.GetInt("REVERIFY_BATCH_SIZE", 500)

	return cfg
}
