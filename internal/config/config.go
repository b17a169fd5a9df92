package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port       int
	LogLevel   string
	LogFormat  string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	LogDir     string
	APIKey     string // API key for admin endpoints

	// Event system
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Discord announcer (optional, disabled when token is empty)
	DiscordToken     string
	DiscordChannelID string

	Environment string
	Version     string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", "arena"),
		LogDir:              getEnv("LOG_DIR", "logs"),
		APIKey:              getEnv("API_KEY", ""),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
		DiscordToken:        getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID:    getEnv("DISCORD_CHANNEL_ID", ""),
		Environment:         getEnv("ENVIRONMENT", "dev"),
		Version:             getEnv("VERSION", "dev"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	retriesStr := getEnv("EVENT_MAX_RETRIES", strconv.Itoa(DefaultEventMaxRetries))
	retries, err := strconv.Atoi(retriesStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_MAX_RETRIES value: %w", err)
	}
	cfg.EventMaxRetries = retries

	delayStr := getEnv("EVENT_RETRY_DELAY", DefaultEventRetryDelay.String())
	delay, err := time.ParseDuration(delayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETRY_DELAY value: %w", err)
	}
	cfg.EventRetryDelay = delay

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
