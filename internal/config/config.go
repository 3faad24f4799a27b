package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"dev"`
	ProdOrigins       string        `envconfig:"PROD_ORIGINS"`
	HTTPAddr          string        `envconfig:"HTTP_ADDR" default:":8080"`
	DBDSN             string        `envconfig:"DB_DSN" required:"true"`
	RunMigrations     bool          `envconfig:"RUN_MIGRATIONS" default:"true"`
	DBMaxConns        int32         `envconfig:"DB_MAX_CONNS"`
	DBMinConns        int32         `envconfig:"DB_MIN_CONNS"`
	DBMaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME"`
	JWTSecret         string        `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"15m"`

	// Lifecycle events are written to the outbox table and relayed to AMQP when AMQPURL is set.
	AMQPURL            string        `envconfig:"AMQP_URL"`
	EventExchange      string        `envconfig:"EVENT_EXCHANGE" default:"booking.events"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	OutboxBatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`

	PageSizeDefault int `envconfig:"PAGE_SIZE_DEFAULT" default:"20"`
	PageSizeMax     int `envconfig:"PAGE_SIZE_MAX" default:"100"`

	IsProduction bool `ignored:"true"`
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// envconfig accepts a variable that is set but empty
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.IsProduction = cfg.AppEnv == PROD_STRING

	if cfg.PageSizeDefault < 1 {
		return nil, fmt.Errorf("PAGE_SIZE_DEFAULT must be positive, got %d", cfg.PageSizeDefault)
	}
	if cfg.PageSizeMax < cfg.PageSizeDefault {
		return nil, fmt.Errorf("PAGE_SIZE_MAX (%d) must not be below PAGE_SIZE_DEFAULT (%d)", cfg.PageSizeMax, cfg.PageSizeDefault)
	}
	if cfg.OutboxBatchSize < 1 {
		return nil, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", cfg.OutboxBatchSize)
	}

	return cfg, nil
}
