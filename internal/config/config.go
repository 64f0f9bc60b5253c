// Package config loads process configuration from the environment into an
// explicit value passed to constructors; core logic never reads ambient
// state.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/msomdec/taskflow/internal/auth"
)

// DevJWTSecret is the fallback signing secret. It exists so the server runs
// out of the box in development; Load logs a loud warning whenever it is
// used, and production deployments must set JWT_SECRET.
const DevJWTSecret = "dev-secret-key-change-in-production"

// Config holds all runtime configuration for the server.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	BcryptCost   int
	TokenTTL     time.Duration
}

// Load reads configuration from environment variables, applying defaults and
// validating ranges.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         envOrDefault("PORT", "8080"),
		DatabasePath: envOrDefault("DATABASE_PATH", "taskflow.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		BcryptCost:   12,
		TokenTTL:     auth.DefaultTokenTTL,
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevJWTSecret
		slog.Warn("JWT_SECRET not set, using development secret; do not use in production")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if cost < 4 || cost > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", ttl)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
