package mocks

import (
	"time"

	"github.com/cradoe/treelance/internal/config"
)

// NewConfig returns a configuration suitable for tests: no external
// services are reachable at these addresses.
func NewConfig() *config.Config {
	cfg := &config.Config{
		BaseURL:      "http://localhost:4444",
		HttpPort:     4444,
		KafkaServers: "localhost:9092",
	}

	cfg.Db.Dsn = "mock_dsn"
	cfg.Jwt.SecretKey = "test_secret"
	cfg.Notifications.Email = "ops@example.com"
	cfg.Smtp.Host = "localhost"
	cfg.Smtp.Port = 25
	cfg.Smtp.From = "Tree-Lance <no-reply@example.com>"
	cfg.Redis.Server = "localhost:6379"
	cfg.Redis.TTL = 5 * time.Minute
	cfg.Reverify.Interval = time.Hour
	cfg.Reverify.BatchSize = 100

	return cfg
}
