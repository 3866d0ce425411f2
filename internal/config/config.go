package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// Upload and analysis limits
	MaxUploadMB   int64
	DefaultStep   time.Duration // concurrency sampling step when unspecified
	MaxSamples    int           // upper bound on grid points per request
	MaxDatasets   int           // datasets kept in memory; oldest evicted
	CapacityLines int           // phone lines for capacity alerts, 0 disables

	// WebSocket timings
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "20"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}
	config.MaxUploadMB = maxUploadMB

	defaultStep, err := time.ParseDuration(getEnv("DEFAULT_STEP", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_STEP: %w", err)
	}
	if defaultStep <= 0 {
		return nil, fmt.Errorf("invalid DEFAULT_STEP: must be positive, got %v", defaultStep)
	}
	config.DefaultStep = defaultStep

	maxSamples, err := strconv.Atoi(getEnv("MAX_SAMPLES", "20000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_SAMPLES: %w", err)
	}
	config.MaxSamples = maxSamples

	maxDatasets, err := strconv.Atoi(getEnv("MAX_DATASETS", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_DATASETS: %w", err)
	}
	config.MaxDatasets = maxDatasets

	capacityLines, err := strconv.Atoi(getEnv("CAPACITY_LINES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAPACITY_LINES: %w", err)
	}
	config.CapacityLines = capacityLines

	// Parse WebSocket timeouts
	wsReadTimeout, err := strconv.Atoi(getEnv("WS_READ_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_READ_TIMEOUT: %w", err)
	}
	config.WSReadTimeout = time.Duration(wsReadTimeout) * time.Second

	wsWriteTimeout, err := strconv.Atoi(getEnv("WS_WRITE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_WRITE_TIMEOUT: %w", err)
	}
	config.WSWriteTimeout = time.Duration(wsWriteTimeout) * time.Second

	// Calculate WebSocket constants
	config.PongWait = config.WSReadTimeout
	config.PingPeriod = (config.PongWait * 9) / 10 // Must be less than pongWait
	config.WriteWait = config.WSWriteTimeout
	config.MaxMessageSize = 512

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
