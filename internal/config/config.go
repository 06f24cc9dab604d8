// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens. Must be set to a strong random value
	// in production; the default exists only for local development.
	JWTSecret string

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration

	// PotOpenContributions lets addresses other than the owner contribute
	// to a savings pot.
	PotOpenContributions bool

	// PotCapAtTarget rejects pot contributions past the target amount.
	PotCapAtTarget bool
}

// Load reads the configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		Port:                 getEnvInt("PORT", 8080),
		DBPath:               getEnv("DB_PATH", "./data/ledger.db"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-only-insecure-secret"),
		TokenTTL:             getEnvDuration("TOKEN_TTL", 24*time.Hour),
		PotOpenContributions: getEnvBool("POT_OPEN_CONTRIBUTIONS", false),
		PotCapAtTarget:       getEnvBool("POT_CAP_AT_TARGET", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
