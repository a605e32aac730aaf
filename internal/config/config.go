// Package config resolves run defaults from .env files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds defaults for command flags.
type Config struct {
	LogDirectory    string
	OutputDirectory string
	ManifestPath    string
	Workers         int
	WatchDebounce   time.Duration
	LogLevel        string
}

// Default values
const (
	defaultWatchDebounce = 2 * time.Second
	defaultLogLevel      = "info"
)

// Load reads configuration from the first .env file found and the environment.
// Environment variables already set take precedence over .env values.
func Load() *Config {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	return &Config{
		LogDirectory:    getEnvString("SHOWDOWN_STATS_LOG_DIR", ""),
		OutputDirectory: getEnvString("SHOWDOWN_STATS_OUTPUT_DIR", ""),
		ManifestPath:    getEnvString("SHOWDOWN_STATS_MANIFEST", ""),
		Workers:         getEnvInt("SHOWDOWN_STATS_WORKERS", 0),
		WatchDebounce:   getEnvDuration("SHOWDOWN_STATS_WATCH_DEBOUNCE", defaultWatchDebounce),
		LogLevel:        getEnvString("SHOWDOWN_STATS_LOG_LEVEL", defaultLogLevel),
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "showdown-stats", ".env"))
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves a positive integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
