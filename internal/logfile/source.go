// Package logfile reads web server access logs and exposes them as a
// rewindable sequence of entries.
package logfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/j-veylop/weblog-analyzer/internal/models"
)

var (
	// ErrExhausted is returned by Next when no entries remain.
	ErrExhausted = errors.New("log source exhausted")
	// ErrMalformedLine is returned by ParseLine for lines it cannot interpret.
	ErrMalformedLine = errors.New("malformed log line")
)

// Source is a log that can be rewound to its first entry and iterated forward
// any number of times.
type Source interface {
	// Reset rewinds iteration to the first entry.
	Reset() error
	// HasNext reports whether Next will yield another entry.
	HasNext() bool
	// Next returns the next entry, or ErrExhausted.
	Next() (models.LogEntry, error)
	// PrintData writes every entry, one per line, in log order.
	PrintData(w io.Writer) error
}

// Reloader is implemented by sources whose backing data can change on disk.
type Reloader interface {
	Reload() error
}

// printEntries writes entries in the weblog line format.
func printEntries(w io.Writer, entries []models.LogEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}
