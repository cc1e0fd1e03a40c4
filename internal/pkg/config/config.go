package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// SessionTTL bounds the lifetime of issued session tokens.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	// ConfirmationTTL bounds the lifetime of registration tokens.
	ConfirmationTTL time.Duration `env:"CONFIRMATION_TTL, default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sportmeet"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	APIKey  string `env:"RESEND_API_KEY"`
	From    string `env:"MAIL_FROM,     default=no-reply@sportmeet.app"`
	BaseURL string `env:"MAIL_BASE_URL, default=http://localhost:8080"`
	Enabled bool   `env:"MAIL_ENABLED,  default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
