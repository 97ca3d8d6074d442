package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort int `env:"HTTP_PORT" default:"3001"`

	// Database: postgres:// URL or a SQLite file path
	DatabaseURL string `env:"DATABASE_URL" default:"./data/movielogger.db"`

	// Authentication
	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" default:"24h"`

	// Redis Cache (empty URL disables the catalog cache)
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" default:"3600"`

	// External APIs
	TMDBAPIURL       string `env:"TMDB_API_URL" default:"https://api.themoviedb.org/3"`
	TMDBAPIKey       string `env:"TMDB_API_KEY"`
	TMDBImageBaseURL string `env:"TMDB_IMAGE_BASE_URL" default:"https://image.tmdb.org/t/p"`

	// Catalog backfill (cmd/catalog-sync)
	CatalogSyncWorkers int `env:"CATALOG_SYNC_WORKERS" default:"4"`
	CatalogSyncBatch   int `env:"CATALOG_SYNC_BATCH" default:"500"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
	LogFile   string `env:"LOG_FILE"`

	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional, system env vars still apply
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 3001); err != nil {
		return nil, err
	}

	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "./data/movielogger.db")

	// Authentication
	loadEnvString(&config.JWTSecret, "JWT_SECRET", "")
	if err := loadEnvDuration(&config.JWTExpiry, "JWT_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")
	if err := loadEnvInt(&config.CacheTTL, "CACHE_TTL", 3600); err != nil {
		return nil, err
	}

	// External APIs
	loadEnvString(&config.TMDBAPIURL, "TMDB_API_URL", "https://api.themoviedb.org/3")
	loadEnvString(&config.TMDBAPIKey, "TMDB_API_KEY", "")
	loadEnvString(&config.TMDBImageBaseURL, "TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p")

	if err := loadEnvInt(&config.CatalogSyncWorkers, "CATALOG_SYNC_WORKERS", 4); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.CatalogSyncBatch, "CATALOG_SYNC_BATCH", 500); err != nil {
		return nil, err
	}

	// Logging
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	loadEnvString(&config.LogFile, "LOG_FILE", "")

	loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"})

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		// Trim whitespace from each element
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
}

// Validate checks the configuration for the API server, which signs tokens.
func (c *Config) Validate() error {
	errors := c.validateCommon()

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	if c.JWTExpiry <= 0 {
		errors = append(errors, "JWT_EXPIRY must be positive")
	}

	// HS256 keys shorter than 32 bytes are brute-forceable
	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	} else if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	return joinValidation(errors)
}

// ValidateCatalogSync checks the configuration for the catalog backfill job,
// which never serves HTTP or issues tokens.
func (c *Config) ValidateCatalogSync() error {
	return joinValidation(c.validateCommon())
}

func (c *Config) validateCommon() []string {
	var errors []string

	if c.CacheTTL < 0 {
		errors = append(errors, "CACHE_TTL must not be negative")
	}

	if c.CatalogSyncWorkers < 1 || c.CatalogSyncBatch < 1 {
		errors = append(errors, "CATALOG_SYNC_WORKERS and CATALOG_SYNC_BATCH must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	return errors
}

func joinValidation(errors []string) error {
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
