package db

import (
	"context"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many ran.
// ts holds the wall-clock time as written in the log so the generated bucket
// columns match the in-memory analysis; utc_offset keeps the original zone.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS access_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		utc_offset INTEGER NOT NULL DEFAULT 0,
		remote_addr TEXT,
		method TEXT,
		path TEXT,
		status INTEGER DEFAULT 0,
		bytes INTEGER DEFAULT 0,
		raw TEXT,
		year INTEGER GENERATED ALWAYS AS (CAST(strftime('%Y', ts) AS INTEGER)) STORED,
		month INTEGER GENERATED ALWAYS AS (CAST(strftime('%m', ts) AS INTEGER)) STORED,
		day INTEGER GENERATED ALWAYS AS (CAST(strftime('%d', ts) AS INTEGER)) STORED,
		hour INTEGER GENERATED ALWAYS AS (CAST(strftime('%H', ts) AS INTEGER)) STORED
	);
	CREATE INDEX IF NOT EXISTS idx_access_entries_ts ON access_entries(ts);`,

	`CREATE INDEX IF NOT EXISTS idx_access_entries_hour ON access_entries(hour);
	CREATE INDEX IF NOT EXISTS idx_access_entries_year_month ON access_entries(year, month);`,
}

// SchemaVersion returns the number of applied migrations.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (db *DB) migrate(ctx context.Context) error {
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
	}
	return nil
}
