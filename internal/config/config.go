package config

import "time"

type Config struct {
	BaseURL  string
	HttpPort int
	Db       struct {
		Dsn         string
		Automigrate bool
	}
	Jwt struct {
		SecretKey string
	}
	Notifications struct {
		Email string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	FileUploader struct {
		CloudName string
		ApiKey    string
		ApiSecret string
	}
	Redis struct {
		Server string
		DB     int
		TTL    time.Duration
	}
	Reverify struct {
		// how often stored verifications are checked for lapsed credentials
		Interval  time.Duration
		BatchSize int
	}
	KafkaServers string
}
