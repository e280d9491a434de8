package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string        `mapstructure:"DATABASE_URL" validate:"required"`
	Port              string        `mapstructure:"PORT" validate:"required,numeric"`
	IsProduction      bool          `mapstructure:"IS_PRODUCTION"`
	HMACSecret        string        `mapstructure:"HMAC_SECRET" validate:"required,min=16"`
	MigrationsPath    string        `mapstructure:"MIGRATIONS_PATH" validate:"required"`
	DBConnectAttempts int           `mapstructure:"DB_CONNECT_ATTEMPTS" validate:"min=1"`
	DBConnectBackoff  time.Duration `mapstructure:"DB_CONNECT_BACKOFF" validate:"gt=0"`

	RateLimit          string   `mapstructure:"RATE_LIMIT" validate:"required"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS" validate:"min=1,dive,required"`

	// Delivery worker
	RunDeliveryWorker          bool          `mapstructure:"RUN_DELIVERY_WORKER"`
	WebhookPollInterval        time.Duration `mapstructure:"WEBHOOK_POLL_INTERVAL" validate:"gt=0"`
	WebhookBatchSize           int           `mapstructure:"WEBHOOK_BATCH_SIZE" validate:"min=1,max=1000"`
	WebhookMaxAttempts         int           `mapstructure:"WEBHOOK_MAX_ATTEMPTS" validate:"min=1"`
	WebhookHTTPTimeout         time.Duration `mapstructure:"WEBHOOK_HTTP_TIMEOUT" validate:"gt=0"`
	WebhookDeliveryConcurrency int           `mapstructure:"WEBHOOK_DELIVERY_CONCURRENCY" validate:"min=1,max=64"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORT", "3000")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("HMAC_SECRET", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_CONNECT_ATTEMPTS", 30)
	v.SetDefault("DB_CONNECT_BACKOFF", "1s")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RUN_DELIVERY_WORKER", false)
	v.SetDefault("WEBHOOK_POLL_INTERVAL", "2s")
	v.SetDefault("WEBHOOK_BATCH_SIZE", 25)
	v.SetDefault("WEBHOOK_MAX_ATTEMPTS", 5)
	v.SetDefault("WEBHOOK_HTTP_TIMEOUT", "10s")
	v.SetDefault("WEBHOOK_DELIVERY_CONCURRENCY", 1)
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:                v.GetString("DATABASE_URL"),
		Port:                       v.GetString("PORT"),
		IsProduction:               v.GetBool("IS_PRODUCTION"),
		HMACSecret:                 v.GetString("HMAC_SECRET"),
		MigrationsPath:             v.GetString("MIGRATIONS_PATH"),
		DBConnectAttempts:          v.GetInt("DB_CONNECT_ATTEMPTS"),
		DBConnectBackoff:           v.GetDuration("DB_CONNECT_BACKOFF"),
		RateLimit:                  v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:         splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RunDeliveryWorker:          v.GetBool("RUN_DELIVERY_WORKER"),
		WebhookPollInterval:        v.GetDuration("WEBHOOK_POLL_INTERVAL"),
		WebhookBatchSize:           v.GetInt("WEBHOOK_BATCH_SIZE"),
		WebhookMaxAttempts:         v.GetInt("WEBHOOK_MAX_ATTEMPTS"),
		WebhookHTTPTimeout:         v.GetDuration("WEBHOOK_HTTP_TIMEOUT"),
		WebhookDeliveryConcurrency: v.GetInt("WEBHOOK_DELIVERY_CONCURRENCY"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.IsProduction && len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		log.Println("Warning: CORS_ALLOWED_ORIGINS allows every origin.")
	}

	return cfg, nil
}

// splitList parses a comma separated env value.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
