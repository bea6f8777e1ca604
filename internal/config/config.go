// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultLogSource is analyzed when no log source is configured.
const DefaultLogSource = "demo.log"

// Config holds the application configuration.
type Config struct {
	LogSource     string
	DatabasePath  string
	LogLevel      string
	LogFile       string
	WatchDebounce time.Duration
	DemoEntries   int
	ImportToDB    bool
	Watch         bool
	Notify        bool
}

// Default values
const (
	defaultWatchDebounce = 100 * time.Millisecond
	defaultDemoEntries   = 1000
	defaultLogLevel      = "info"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		LogSource:     getEnvString("LOG_SOURCE", DefaultLogSource),
		DatabasePath:  getEnvString("DATABASE_PATH", ""),
		LogLevel:      getEnvString("LOG_LEVEL", defaultLogLevel),
		LogFile:       getEnvString("LOG_FILE", ""),
		WatchDebounce: getEnvDuration("WATCH_DEBOUNCE", defaultWatchDebounce),
		DemoEntries:   getEnvInt("DEMO_ENTRIES", defaultDemoEntries),
		ImportToDB:    getEnvBool("IMPORT_TO_DB", false),
		Watch:         getEnvBool("WATCH", true),
		Notify:        getEnvBool("NOTIFY", false),
	}

	if cfg.ImportToDB && cfg.DatabasePath == "" {
		cfg.DatabasePath = getDefaultDatabasePath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DatabasePath != "" {
		if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LogSource) == "" {
		return fmt.Errorf("LOG_SOURCE must not be empty")
	}
	if c.DemoEntries < 0 {
		return fmt.Errorf("DEMO_ENTRIES must not be negative, got %d", c.DemoEntries)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("WATCH_DEBOUNCE must not be negative, got %v", c.WatchDebounce)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "weblog-analyzer", ".env"),
			filepath.Join(home, ".weblog-analyzer", ".env"),
		)
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite entry store.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weblog.db"
	}
	return filepath.Join(home, ".config", "weblog-analyzer", "weblog.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool plus "yes"/"no".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "100ms", "1s"; a bare number is read as milliseconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
