package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Event delivery modes.
const (
	DeliveryRiver  = "river"
	DeliveryInline = "inline"
)

// Config is the runtime configuration of the API server.
type Config struct {
	Port              string
	DatabasePath      string
	JWTSecret         string
	AppEnv            string
	FrontendOrigin    string
	EventDelivery     string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	AuthRatePerMinute float64
	AuthRateBurst     int
	LogLevel          slog.Level
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Variables already set in the
// environment take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Config{
		Port:           envOrDefault("PORT", "3001"),
		DatabasePath:   envOrDefault("DATABASE_PATH", "skillbarter.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AppEnv:         envOrDefault("APP_ENV", "development"),
		FrontendOrigin: envOrDefault("FRONTEND_ORIGIN", "http://localhost:5173"),
		EventDelivery:  strings.ToLower(envOrDefault("EVENT_DELIVERY", DeliveryRiver)),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}
	if cfg.EventDelivery != DeliveryRiver && cfg.EventDelivery != DeliveryInline {
		return Config{}, fmt.Errorf("EVENT_DELIVERY must be %q or %q, got %q", DeliveryRiver, DeliveryInline, cfg.EventDelivery)
	}

	var err error
	if cfg.AccessTokenTTL, err = durationOrDefault("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = durationOrDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.AuthRatePerMinute, err = strconv.ParseFloat(envOrDefault("AUTH_RATE_PER_MINUTE", "30"), 64); err != nil {
		return Config{}, fmt.Errorf("parsing AUTH_RATE_PER_MINUTE: %w", err)
	}
	if cfg.AuthRateBurst, err = strconv.Atoi(envOrDefault("AUTH_RATE_BURST", "10")); err != nil {
		return Config{}, fmt.Errorf("parsing AUTH_RATE_BURST: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
