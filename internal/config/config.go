// package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// http
	HTTPPort int

	// nats; empty disables publishing
	NatsURL string

	// store
	SnapshotPath string // sqlite snapshot file; empty keeps the store memory-only
	RosterPath   string // YAML roster seed

	// api rate limiting (mutations per second per client)
	MutationRPS   float64
	MutationBurst int

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 3200),
		NatsURL:       getEnv("NATS_URL", ""),
		SnapshotPath:  getEnv("SNAPSHOT_PATH", "./data/dispatch.db"),
		RosterPath:    getEnv("ROSTER_PATH", "./roster.yaml"),
		MutationRPS:   getEnvFloat("MUTATION_RPS", 10),
		MutationBurst: getEnvInt("MUTATION_BURST", 20),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
