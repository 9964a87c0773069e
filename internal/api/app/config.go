package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Registry backend selection values for REGISTRY_BACKEND.
const (
	RegistryBackendMemory = "memory"
	RegistryBackendRedis  = "redis"
)

var ErrMissingSecrets = errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must be set")

type Config struct {
	// AccessSecret and RefreshSecret sign the two token classes. Both are
	// required and must never appear in logs or responses.
	AccessSecret  string
	RefreshSecret string

	DatabaseFile        string        // Path to SQLite database file (default: ./taskdeck.db)
	RegistryBackend     string        // Refresh token registry backend (memory, redis) (default: memory)
	RedisAddr           string        // Redis address, required when RegistryBackend is redis
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment, first merging in a
// .env file when one exists in the working directory.
func LoadConfig() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := Config{
		AccessSecret:        os.Getenv("AUTH_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("AUTH_REFRESH_SECRET"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "taskdeck.db"),
		RegistryBackend:     getEnvOrDefault("REGISTRY_BACKEND", RegistryBackendMemory),
		RedisAddr:           getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return Config{}, ErrMissingSecrets
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
