package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string // empty runs against the in-memory store
	MigrationsPath string
	DemoBrandID    string // tenant seeded into the in-memory store
	Port           string
	IsProduction   bool
	LogLevel       string
	JWTSecret      string

	// Notifications
	RedisURL          string // empty logs notifications instead of queueing them
	NotificationQueue string

	// Settlement
	PlatformFeeRate decimal.Decimal

	// Bulk import
	UploadRateLimit   string // ulule/limiter format, e.g. "30-M"
	CSVMaxUploadBytes int64

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DEMO_BRAND_ID", "demo-brand")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("NOTIFICATION_QUEUE", "royalty:notifications:earnings")
	v.SetDefault("PLATFORM_FEE_RATE", "0")
	v.SetDefault("UPLOAD_RATE_LIMIT", "30-M")
	v.SetDefault("CSV_MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Environment variables override defaults and .env values.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		DemoBrandID:       v.GetString("DEMO_BRAND_ID"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		JWTSecret:         v.GetString("JWT_SECRET"),
		RedisURL:          v.GetString("REDIS_URL"),
		NotificationQueue: v.GetString("NOTIFICATION_QUEUE"),
		UploadRateLimit:   v.GetString("UPLOAD_RATE_LIMIT"),
		CSVMaxUploadBytes: v.GetInt64("CSV_MAX_UPLOAD_BYTES"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Using the in-memory store; data is lost on restart.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("PLATFORM_FEE_RATE")))
	if err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_FEE_RATE: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("PLATFORM_FEE_RATE must be between 0 and 1, got %s", rate)
	}
	cfg.PlatformFeeRate = rate

	if cfg.CSVMaxUploadBytes <= 0 {
		cfg.CSVMaxUploadBytes = 10 << 20
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
