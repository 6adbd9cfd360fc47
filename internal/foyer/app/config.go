package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string // Issuer claim expected on admin bearer tokens
	JWTSecret string // Required: shared secret for verifying admin bearer tokens

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./foyer.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	BaseURL              string        // Optional: public base URL used in invitation links (default: http://localhost:8080)
	InvitationTTL        time.Duration // Optional: invitation validity window (default: 7 days)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               getEnvOrDefault("FOYER_ISSUER", "foyer"),
		JWTSecret:            os.Getenv("FOYER_JWT_SECRET"),
		DatabaseFile:         getEnvOrDefault("FOYER_DATABASE_FILE", "foyer.db"),
		PepperFile:           getEnvOrDefault("FOYER_PEPPER_FILE", "pepper"),
		BaseURL:              getEnvOrDefault("FOYER_BASE_URL", "http://localhost:8080"),
		InvitationTTL:        getEnvDurationOrDefault("FOYER_INVITE_TTL", 7*24*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
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

	return defaultValue
}
