// Package config provides environment-driven configuration for the
// enhancement service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server needs to start. Secrets come from
// the environment (or a .env file loaded by the entry point).
type Config struct {
	Port int

	// DatabaseURL is the PostgreSQL connection string for member quotas.
	DatabaseURL string

	// Redis connection for the guest usage store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// GeminiAPIKey authenticates against the generation backend.
	GeminiAPIKey string

	// JWTSecret verifies bearer tokens issued by the auth provider.
	JWTSecret string

	// Quota knobs.
	GuestDailyLimit  int
	FreePlanMessages int

	// MaxInputTokens bounds the estimated size of enhanceable input.
	MaxInputTokens int
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnvInt("PORT", 8080),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GuestDailyLimit:  getEnvInt("GUEST_DAILY_LIMIT", 5),
		FreePlanMessages: getEnvInt("FREE_PLAN_MESSAGES", 50),
		MaxInputTokens:   getEnvInt("MAX_INPUT_TOKENS", 8000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and numeric ranges.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be a valid port number, got %d", c.Port)
	}
	if c.GuestDailyLimit < 1 {
		return fmt.Errorf("GUEST_DAILY_LIMIT must be at least 1, got %d", c.GuestDailyLimit)
	}
	if c.MaxInputTokens < 1 {
		return fmt.Errorf("MAX_INPUT_TOKENS must be positive, got %d", c.MaxInputTokens)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
