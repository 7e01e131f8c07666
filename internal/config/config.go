package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fadedpez/suitdeck/internal/logging"
	"github.com/fadedpez/suitdeck/pkg/entities"
	"github.com/joho/godotenv"
)

// Storage backends for deal history
const (
	StorageNone          = "none"
	StorageMemory        = "memory"
	StorageFile          = "file"
	StorageSQLite        = "sqlite"
	StorageElasticsearch = "elasticsearch"
)

// Config holds all configuration for the application
type Config struct {
	// Deck configuration
	Variant entities.Variant
	Seed    int64 // 0 means seed from the clock

	// Logging
	LogLevel logging.Level

	// Deal history
	StorageType  string
	DataDir      string
	HistoryLimit int // >0 prints a report of that many stored deals after the cards

	// Elasticsearch configuration
	ESURL         string
	ESUsername    string
	ESPassword    string
	ESIndexPrefix string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables, after loading
// .env from the working directory if one exists
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only
func FromEnv() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	variant, err := entities.ParseVariant(getEnvWithDefault("DECK_VARIANT", string(entities.StandardWithJokers)))
	if err != nil {
		return nil, err
	}

	seed, err := strconv.ParseInt(getEnvWithDefault("DECK_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("DECK_SEED must be an integer: %w", err)
	}

	historyLimit, err := strconv.Atoi(getEnvWithDefault("DECK_HISTORY", "0"))
	if err != nil || historyLimit < 0 {
		return nil, fmt.Errorf("DECK_HISTORY must be a non-negative integer, got %q", os.Getenv("DECK_HISTORY"))
	}

	level, err := logging.ParseLevel(getEnvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Variant:       variant,
		Seed:          seed,
		LogLevel:      level,
		HistoryLimit:  historyLimit,
		StorageType:   getEnvWithDefault("STORAGE_TYPE", StorageNone),
		DataDir:       getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		ESURL:         getEnvWithDefault("ES_URL", "http://localhost:9200"),
		ESUsername:    os.Getenv("ES_USERNAME"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ES_INDEX_PREFIX", "suitdeck"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that enumerated settings hold known values
func (c *Config) validate() error {
	switch c.StorageType {
	case StorageNone, StorageMemory, StorageFile, StorageSQLite, StorageElasticsearch:
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	if c.StorageType == StorageElasticsearch && c.ESURL == "" {
		return fmt.Errorf("ES_URL is required for elasticsearch storage")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DealsFilePath is where the file backend keeps deal history
func (c *Config) DealsFilePath() string {
	return filepath.Join(c.DataDir, "deals.json")
}

// DatabasePath is where the SQLite backend keeps deal history
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "suitdeck.db")
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
