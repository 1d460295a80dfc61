// Package config loads runtime configuration for both server mode
// (environment variables) and local daemon mode (~/.attune yaml files).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port  int
	Debug bool

	// Database. A postgres:// URL selects the Postgres repositories;
	// anything else is treated as a SQLite file path.
	DatabaseURL string

	// RabbitMQ. Empty disables activity event publishing.
	RabbitMQURL string

	// Rate limiting
	RateLimitRequests int // requests per interval per client
	RateLimitInterval int // seconds
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		Debug:             getEnvBool("DEBUG", false),
		DatabaseURL:       getEnv("DATABASE_URL", "attune.db"),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitInterval: getEnvInt("RATE_LIMIT_INTERVAL", 60),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.RateLimitRequests <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitInterval <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_INTERVAL must be positive, got %d", cfg.RateLimitInterval)
	}

	return cfg, nil
}

// UsePostgres reports whether the database URL selects Postgres
func (c *Config) UsePostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
