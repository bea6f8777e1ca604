package db

import (
	"context"
	"io"

	"github.com/j-veylop/weblog-analyzer/internal/logfile"
	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// Source is a logfile.Source over the stored entries. Each Reset reloads the
// table so entries imported since the last pass are seen.
type Source struct {
	db     *DB
	cursor *logfile.MemorySource
}

var _ logfile.Source = (*Source)(nil)

// NewSource creates a source over the stored entries.
func (db *DB) NewSource() *Source {
	return &Source{db: db, cursor: logfile.NewMemorySource(nil)}
}

// Reset reloads the stored entries and rewinds to the first one.
func (s *Source) Reset() error {
	entries, err := s.db.LoadEntries(context.Background())
	if err != nil {
		return err
	}
	s.cursor = logfile.NewMemorySource(entries)
	return nil
}

// HasNext reports whether entries remain.
func (s *Source) HasNext() bool {
	return s.cursor.HasNext()
}

// Next returns the next stored entry.
func (s *Source) Next() (models.LogEntry, error) {
	return s.cursor.Next()
}

// PrintData writes every stored entry.
func (s *Source) PrintData(w io.Writer) error {
	entries, err := s.db.LoadEntries(context.Background())
	if err != nil {
		return err
	}
	return logfile.NewMemorySource(entries).PrintData(w)
}
