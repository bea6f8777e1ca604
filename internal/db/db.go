// Package db persists parsed access-log entries in SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// entryStorePragmas tune SQLite for one writer that bulk-imports a log and
// many short read queries from the analyzer.
var entryStorePragmas = []struct {
	name, value string
}{
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"busy_timeout", "5000"},
	{"temp_store", "MEMORY"},
	{"cache_size", "-16000"}, // KiB
}

// DB is the entry store. The embedded *sql.DB stays reachable for ad hoc
// queries in tests.
type DB struct {
	*sql.DB
	path string
}

// New opens the entry store at path, creating its directory when needed,
// and applies any pending migrations.
func New(path string) (*DB, error) {
	ctx := context.Background()

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open entry store: %w", err)
	}
	store := &DB{DB: conn, path: path}

	for _, step := range []struct {
		what string
		run  func(context.Context) error
	}{
		{"connect to", store.PingContext},
		{"tune", store.applyPragmas},
		{"migrate", store.migrate},
	} {
		if err := step.run(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to %s entry store %s: %w", step.what, path, err)
		}
	}
	return store, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create entry store directory: %w", err)
	}
	return nil
}

func (db *DB) applyPragmas(ctx context.Context) error {
	for _, p := range entryStorePragmas {
		stmt := fmt.Sprintf("PRAGMA %s=%s", p.name, p.value)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

// Path returns the file the store was opened from.
func (db *DB) Path() string {
	return db.path
}

// Vacuum compacts the file after an import has replaced the stored entries.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}

// Close folds the write-ahead log back into the main file and closes the
// connection pool.
func (db *DB) Close() error {
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}
