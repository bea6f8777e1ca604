package logfile

import (
	"io"

	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// MemorySource is a Source backed by a slice of entries.
type MemorySource struct {
	entries []models.LogEntry
	pos     int
	resets  int
}

// NewMemorySource creates a source yielding the given entries in order.
func NewMemorySource(entries []models.LogEntry) *MemorySource {
	cp := make([]models.LogEntry, len(entries))
	copy(cp, entries)
	return &MemorySource{entries: cp}
}

// Reset rewinds to the first entry.
func (m *MemorySource) Reset() error {
	m.pos = 0
	m.resets++
	return nil
}

// HasNext reports whether entries remain.
func (m *MemorySource) HasNext() bool {
	return m.pos < len(m.entries)
}

// Next returns the next entry.
func (m *MemorySource) Next() (models.LogEntry, error) {
	if m.pos >= len(m.entries) {
		return models.LogEntry{}, ErrExhausted
	}
	e := m.entries[m.pos]
	m.pos++
	return e, nil
}

// PrintData writes every entry.
func (m *MemorySource) PrintData(w io.Writer) error {
	return printEntries(w, m.entries)
}

// Len returns the number of entries.
func (m *MemorySource) Len() int {
	return len(m.entries)
}

// Resets returns how many times Reset has been called.
func (m *MemorySource) Resets() int {
	return m.resets
}
