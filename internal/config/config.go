package config

import (
	"fmt"
	"os"
	"time"

	"creditwatch/internal/logger"
)

type Config struct {
	// Google Sheets Configuration
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Google Drive fallback (CSV export download)
	GoogleDriveFileID string
	GoogleDriveAPIKey string

	// Dataset cache
	CacheTTL time.Duration

	// HTTP server
	ListenAddr string

	// Year fallback policy for undated ledger rows: "current" or "skip"
	YearFallback string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Ledger"),
		GoogleDriveFileID:    getEnv("GOOGLE_DRIVE_FILE_ID", ""),
		GoogleDriveAPIKey:    getEnv("GOOGLE_DRIVE_API_KEY", ""),
		ListenAddr:           getEnv("LISTEN_ADDR", ":8080"),
		YearFallback:         getEnv("YEAR_FALLBACK", "current"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stdout"),
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	config.CacheTTL = ttl

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.GoogleSheetURL == "" && c.GoogleDriveFileID == "" {
		return fmt.Errorf("either GOOGLE_SHEET_URL or GOOGLE_DRIVE_FILE_ID is required")
	}
	if c.YearFallback != "current" && c.YearFallback != "skip" {
		return fmt.Errorf("YEAR_FALLBACK must be \"current\" or \"skip\", got %q", c.YearFallback)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
