package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
// In Go, we use structs to group related data
type Config struct {
	// RIPE Atlas API configuration
	APIBaseURL string `validate:"required,url"`  // Root of the Atlas v2 API
	PageSize   int    `validate:"min=1,max=500"` // Objects per page; 500 is the API maximum
	SortKey    string `validate:"required"`      // Sort order for the catalog listing

	// Reporting
	ProgressInterval int `validate:"min=1"` // Log progress every N probes

	// Logging
	LogLevel  string // debug, info, warn, error
	LogPretty bool   // Human-readable console output

	// Operational endpoints (Prometheus /metrics, /health)
	// Empty disables the ops server entirely.
	MetricsAddr string
}

// Load reads configuration from environment variables
// with sensible defaults
// This is a function that returns a pointer to Config
func Load() *Config {
	// Load .env file if it exists (for local development)
	// In production, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		// Atlas API config with defaults
		// NOTE: the API does not allow more than 500 objects per page
		APIBaseURL: getEnv("ATLAS_API_URL", "https://atlas.ripe.net/api/v2"),
		PageSize:   getEnvAsInt("ATLAS_PAGE_SIZE", 500),
		SortKey:    getEnv("ATLAS_SORT", "id"),

		// Progress reporting (default: one log line per full page)
		ProgressInterval: getEnvAsInt("PROGRESS_INTERVAL", 500),

		// Logging config
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		// Ops server config (disabled by default for a one-shot run)
		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}
}

// Validate checks the loaded configuration against the struct tags
// Returns a descriptive error if any setting is out of range
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
// This is a helper function (lowercase = private to this package)
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	// Try to convert string to integer
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// If conversion fails, return default
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as a boolean
// Returns default if not set or invalid
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
