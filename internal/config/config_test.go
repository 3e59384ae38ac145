package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Expected bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected token TTL 24h, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.JWTSecret != devJWTSecret {
		t.Errorf("Expected development secret fallback, got %q", cfg.Auth.JWTSecret)
	}
	if !cfg.Orders.StrictTransitions {
		t.Error("Strict transitions should default to on")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("ORDERS_STRICT_TRANSITIONS", "false")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("Expected read timeout 3s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Orders.StrictTransitions {
		t.Error("Strict transitions should be off")
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("Expected secret from env, got %q", cfg.Auth.JWTSecret)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL", "tomorrow")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "lots")
	t.Setenv("ORDERS_STRICT_TRANSITIONS", "sometimes")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for malformed env values")
	}

	for _, key := range []string{"AUTH_TOKEN_TTL", "DATABASE_MAX_OPEN_CONNS", "ORDERS_STRICT_TRANSITIONS"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Expected error to mention %s, got: %v", key, err)
		}
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when production has no JWT secret")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{URL: "postgres://x"},
		Auth:     AuthConfig{JWTSecret: "x", TokenTTL: time.Hour, BcryptCost: 99},
		Log:      LogConfig{Format: "xml"},
		Orders:   OrdersConfig{MaxPageSize: 0},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected validation error")
	}
}
