package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("Port = %q, want 3001", cfg.Port)
	}
	if cfg.DatabasePath != "skillbarter.db" {
		t.Errorf("DatabasePath = %q, want skillbarter.db", cfg.DatabasePath)
	}
	if cfg.EventDelivery != DeliveryRiver {
		t.Errorf("EventDelivery = %q, want %q", cfg.EventDelivery, DeliveryRiver)
	}
	if cfg.AccessTokenTTL != 15*time.Minute || cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("TTLs = %s/%s", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.AuthRatePerMinute != 30 || cfg.AuthRateBurst != 10 {
		t.Errorf("rate = %v/%d", cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("EVENT_DELIVERY", "INLINE")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	if cfg.EventDelivery != DeliveryInline {
		t.Errorf("EventDelivery = %q, want %q", cfg.EventDelivery, DeliveryInline)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Errorf("AccessTokenTTL = %s, want 5m", cfg.AccessTokenTTL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"EVENT_DELIVERY":    "kafka",
		"ACCESS_TOKEN_TTL":  "soon",
		"REFRESH_TOKEN_TTL": "-1h",
		"AUTH_RATE_BURST":   "many",
		"LOG_LEVEL":         "loud",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/.env", []byte("JWT_SECRET=from-file\nPORT=4000\n"), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	// godotenv only fills unset variables; clear the ones set above.
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "from-file" || cfg.Port != "4000" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvOrDefault(t *testing.T) {
	if v := envOrDefault("SKILLBARTER_TEST_NONEXISTENT_KEY", "fallback"); v != "fallback" {
		t.Errorf("got %q, want %q", v, "fallback")
	}

	t.Setenv("SKILLBARTER_TEST_KEY", "custom")
	if v := envOrDefault("SKILLBARTER_TEST_KEY", "fallback"); v != "custom" {
		t.Errorf("got %q, want %q", v, "custom")
	}
}
