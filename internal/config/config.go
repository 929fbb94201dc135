package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort string

	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	// RabbitMQURL empty disables event publishing.
	RabbitMQURL        string
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	// OrderTimeout bounds a single order placement, transaction included.
	OrderTimeout time.Duration
}

// Load reads configuration from the environment and, when present, a
// config.yaml in the working directory. Environment variables win.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "toko.db")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("BREAKER_MAX_FAILURES", 5)
	v.SetDefault("BREAKER_OPEN_TIMEOUT", "30s")
	v.SetDefault("ORDER_TIMEOUT", "10s")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		AppPort:            v.GetString("APP_PORT"),
		DatabaseDriver:     v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             v.GetDuration("JWT_TTL"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		BreakerMaxFailures: v.GetUint32("BREAKER_MAX_FAILURES"),
		BreakerOpenTimeout: v.GetDuration("BREAKER_OPEN_TIMEOUT"),
		OrderTimeout:       v.GetDuration("ORDER_TIMEOUT"),
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.OrderTimeout <= 0 {
		return Config{}, fmt.Errorf("ORDER_TIMEOUT must be positive, got %s", cfg.OrderTimeout)
	}
	return cfg, nil
}
