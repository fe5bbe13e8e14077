package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Required: issuer claim for tokens
	BootstrapToken string // Optional: token required to perform bootstrap

	SigningKeyFile       string        // Optional: path to an Ed25519 PKCS8 PEM; ephemeral key generated when empty
	AccessTokenTTL       time.Duration // Optional: lifetime of issued access tokens (default: 1h)
	DatabaseFile         string        // Optional: path to SQLite database file (default: ./wayfarer.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	InvitationRetention  time.Duration // How long expired unredeemed invitations stay queryable (default: 30 days)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               os.Getenv("WAYFARER_ISSUER"),
		BootstrapToken:       os.Getenv("BOOTSTRAP_TOKEN"),
		SigningKeyFile:       os.Getenv("WAYFARER_SIGNING_KEY_FILE"),
		AccessTokenTTL:       getEnvDurationOrDefault("WAYFARER_ACCESS_TOKEN_TTL", time.Hour),
		DatabaseFile:         getEnvOrDefault("WAYFARER_DATABASE_FILE", "wayfarer.db"),
		PepperFile:           getEnvOrDefault("WAYFARER_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		InvitationRetention:  getEnvDurationOrDefault("INVITATION_RETENTION", 30*24*time.Hour),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "wayfarer"
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
