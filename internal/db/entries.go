package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/weblog-analyzer/internal/logfile"
	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// wallClockLayout is how entry times are stored: the clock reading as written
// in the log, without zone. The zone offset lives in utc_offset.
const wallClockLayout = "2006-01-02 15:04:05"

// bucketColumns maps dimensions to their generated columns.
var bucketColumns = map[models.Dimension]string{
	models.DimensionHour:  "hour",
	models.DimensionDay:   "day",
	models.DimensionMonth: "month",
	models.DimensionYear:  "year",
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertEntries stores entries in a single transaction and returns how many were written.
func (db *DB) InsertEntries(ctx context.Context, entries []models.LogEntry) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	n, err := insertEntries(ctx, tx, entries)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit entries: %w", err)
	}
	return n, nil
}

func insertEntries(ctx context.Context, ex execer, entries []models.LogEntry) (int, error) {
	query := `
	INSERT INTO access_entries (ts, utc_offset, remote_addr, method, path, status, bytes, raw)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, e := range entries {
		_, offset := e.Time.Zone()
		if _, err := ex.ExecContext(ctx, query,
			e.Time.Format(wallClockLayout), offset,
			e.RemoteAddr, e.Method, e.Path, e.Status, e.Bytes, e.Raw,
		); err != nil {
			return i, fmt.Errorf("failed to insert entry %d: %w", i+1, err)
		}
	}
	return len(entries), nil
}

// ImportSource replaces the stored entries with every entry of src.
func (db *DB) ImportSource(ctx context.Context, src logfile.Source) (int, error) {
	if err := src.Reset(); err != nil {
		return 0, fmt.Errorf("failed to reset log source: %w", err)
	}
	var entries []models.LogEntry
	for src.HasNext() {
		e, err := src.Next()
		if err != nil {
			return 0, fmt.Errorf("failed to read log source: %w", err)
		}
		entries = append(entries, e)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM access_entries"); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to clear entries: %w", err)
	}
	n, err := insertEntries(ctx, tx, entries)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return n, nil
}

// CountEntries returns the number of stored entries.
func (db *DB) CountEntries(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM access_entries").Scan(&n)
	return n, err
}

// LoadEntries returns every stored entry in insertion order.
func (db *DB) LoadEntries(ctx context.Context) ([]models.LogEntry, error) {
	rows, err := db.QueryContext(ctx, `
	SELECT ts, utc_offset, COALESCE(remote_addr, ''), COALESCE(method, ''), COALESCE(path, ''),
		COALESCE(status, 0), COALESCE(bytes, 0), COALESCE(raw, '')
	FROM access_entries
	ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var (
			e      models.LogEntry
			ts     string
			offset int
		)
		if err := rows.Scan(&ts, &offset, &e.RemoteAddr, &e.Method, &e.Path, &e.Status, &e.Bytes, &e.Raw); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Time, err = time.ParseInLocation(wallClockLayout, ts, time.FixedZone("", offset))
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored time %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BucketCounts groups stored entries by a dimension's bucket.
func (db *DB) BucketCounts(ctx context.Context, dim models.Dimension) (map[int]int, error) {
	col, ok := bucketColumns[dim]
	if !ok {
		return nil, fmt.Errorf("unknown dimension %d", dim)
	}

	// col comes from bucketColumns, never from input.
	rows, err := db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM access_entries GROUP BY %s", col, col))
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", col, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var bucket, n int
		if err := rows.Scan(&bucket, &n); err != nil {
			return nil, err
		}
		counts[bucket] = n
	}
	return counts, rows.Err()
}
