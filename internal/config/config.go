package config

import (
	"fmt"
	"os"
	"strconv"

	"edakit/domain/stats"
	"edakit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Engine   EngineConfig
	Database DatabaseConfig
	Server   ServerConfig
	Sweep    SweepConfig
}

// EngineConfig holds the decision thresholds of the test procedures
type EngineConfig struct {
	SignificanceLevel    float64
	LargeSampleThreshold int
	MinExpectedCount     float64
}

// DatabaseConfig holds database connection settings. The URL is only needed
// when frames are loaded with a SQL query.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SweepConfig holds batch execution settings
type SweepConfig struct {
	Concurrency int
}

// Load reads configuration from environment variables and validates it.
// Callers load any .env file first.
func Load() (*Config, error) {
	engine, err := loadEngineConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engine configuration")
	}

	sweep, err := loadSweepConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sweep configuration")
	}

	return &Config{
		Engine:   *engine,
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Sweep: *sweep,
	}, nil
}

func loadEngineConfig() (*EngineConfig, error) {
	alpha, err := getEnvFloatOrDefault("SIGNIFICANCE_LEVEL", 0.05)
	if err != nil {
		return nil, err
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.ConfigInvalid("SIGNIFICANCE_LEVEL must be between 0 and 1")
	}

	threshold, err := getEnvIntOrDefault("LARGE_SAMPLE_THRESHOLD", 5000)
	if err != nil {
		return nil, err
	}
	if threshold < 3 {
		return nil, errors.ConfigInvalid("LARGE_SAMPLE_THRESHOLD must be at least 3")
	}
	if threshold > stats.MaxLargeSampleThreshold {
		return nil, errors.ConfigInvalid(fmt.Sprintf("LARGE_SAMPLE_THRESHOLD must be at most %d", stats.MaxLargeSampleThreshold))
	}

	minExpected, err := getEnvFloatOrDefault("MIN_EXPECTED_COUNT", 5)
	if err != nil {
		return nil, err
	}
	if minExpected <= 0 {
		return nil, errors.ConfigInvalid("MIN_EXPECTED_COUNT must be positive")
	}

	return &EngineConfig{
		SignificanceLevel:    alpha,
		LargeSampleThreshold: threshold,
		MinExpectedCount:     minExpected,
	}, nil
}

func loadSweepConfig() (*SweepConfig, error) {
	n, err := getEnvIntOrDefault("SWEEP_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.ConfigInvalid("SWEEP_CONCURRENCY must be at least 1")
	}
	return &SweepConfig{Concurrency: n}, nil
}

// RequireDatabase fails when no DATABASE_URL is configured
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required for SQL sources")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer, got " + strconv.Quote(value))
	}
	return intValue, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number, got " + strconv.Quote(value))
	}
	return floatValue, nil
}
