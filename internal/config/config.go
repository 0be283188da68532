package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Google Sheets source. An empty SheetID is valid and routes every run
	// to the synthetic fallback.
	SheetID         string
	SheetRange      string
	CredentialsFile string
	SheetsTimeout   time.Duration

	// Artifact directories. WorkDir holds the per-run raw and transformed
	// artifacts; ProcessedDir holds the persisted snapshots.
	WorkDir      string
	ProcessedDir string

	HTTPAddr  string
	LogLevel  string
	LogFormat string

	// Schedule-mode settings.
	ScheduleInterval   time.Duration
	ScheduleRetries    int
	ScheduleRetryDelay time.Duration
	ShutdownTimeout    time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	sheetsTimeout, err := parseDuration("SHEETS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	scheduleInterval, err := parseDuration("SCHEDULE_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	retryDelay, err := parseDuration("SCHEDULE_RETRY_DELAY", "2m")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	retries, err := parseRetries()
	if err != nil {
		return nil, err
	}

	return &Config{
		SheetID:         os.Getenv("GOOGLE_SHEET_ID"),
		SheetRange:      envOrDefault("GOOGLE_SHEET_RANGE", "Sheet1"),
		CredentialsFile: envOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials/google_sheets_credentials.json"),
		SheetsTimeout:   sheetsTimeout,

		WorkDir:      envOrDefault("WORK_DIR", os.TempDir()),
		ProcessedDir: envOrDefault("PROCESSED_DIR", "data/processed"),

		HTTPAddr:  envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		ScheduleInterval:   scheduleInterval,
		ScheduleRetries:    retries,
		ScheduleRetryDelay: retryDelay,
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}

// envOrDefault returns the variable's value, or fallback when unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseDuration reads a positive duration variable, falling back when unset.
func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

// parseRetries reads SCHEDULE_RETRIES; zero disables retrying a failed run.
func parseRetries() (int, error) {
	raw := envOrDefault("SCHEDULE_RETRIES", "1")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid SCHEDULE_RETRIES: %q", raw)
	}
	return n, nil
}
