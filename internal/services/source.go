package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/j-veylop/weblog-analyzer/internal/config"
	"github.com/j-veylop/weblog-analyzer/internal/db"
	"github.com/j-veylop/weblog-analyzer/internal/logfile"
	"github.com/j-veylop/weblog-analyzer/internal/logger"
)

const sqlitePrefix = "sqlite:"

// DatabasePath reports whether identifier names a SQLite entry store and
// returns its path.
func DatabasePath(identifier string) (string, bool) {
	if strings.HasPrefix(identifier, sqlitePrefix) {
		return strings.TrimPrefix(identifier, sqlitePrefix), true
	}
	switch strings.ToLower(filepath.Ext(identifier)) {
	case ".db", ".sqlite", ".sqlite3":
		return identifier, true
	}
	return "", false
}

// OpenSource builds the log source named by identifier. A SQLite identifier
// opens the entry store, which is returned so the caller can close it;
// anything else is read as a log file.
func OpenSource(identifier string) (logfile.Source, *db.DB, error) {
	if identifier == "" {
		return nil, nil, errors.New("no log source given")
	}

	if path, ok := DatabasePath(identifier); ok {
		database, err := db.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open entry store: %w", err)
		}
		return database.NewSource(), database, nil
	}

	reader, err := logfile.NewReader(identifier)
	if err != nil {
		return nil, nil, err
	}
	return reader, nil, nil
}

// ensureDemoLog writes a demo log when the default log source is missing.
func ensureDemoLog(cfg *config.Config) error {
	if cfg.LogSource != config.DefaultLogSource {
		return nil
	}
	if _, err := os.Stat(cfg.LogSource); !errors.Is(err, os.ErrNotExist) {
		return nil
	}

	logger.Info("creating demo log", "path", cfg.LogSource, "entries", cfg.DemoEntries)
	return logfile.CreateDemo(cfg.LogSource, cfg.DemoEntries, uint64(time.Now().UnixNano()))
}
