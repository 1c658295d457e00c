package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_TYPE
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string // optional; empty registers commands globally

	// Wallet persistence
	DataDir     string
	StorageType string

	// Privileged identity allowed to use /give
	AdminUserID string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		Token:       os.Getenv("DISCORD_TOKEN"),
		AppID:       os.Getenv("APP_ID"),
		GuildID:     os.Getenv("GUILD_ID"),
		DataDir:     getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		StorageType: getEnvWithDefault("STORAGE_TYPE", StorageFile),
		AdminUserID: os.Getenv("ADMIN_USER_ID"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	switch c.StorageType {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_TYPE must be one of file, sqlite, memory (got %q)", c.StorageType)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
