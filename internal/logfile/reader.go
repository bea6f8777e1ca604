package logfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/j-veylop/weblog-analyzer/internal/logger"
	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// Reader is a Source over a log file on disk. The file is parsed up front;
// Reset rewinds over the parsed entries and Reload re-reads the file.
type Reader struct {
	mu      sync.Mutex
	path    string
	entries []models.LogEntry
	pos     int
	skipped int
}

// NewReader opens and parses the log file at path.
func NewReader(path string) (*Reader, error) {
	r := &Reader{path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the file the reader was created for.
func (r *Reader) Path() string {
	return r.path
}

// Reload re-reads the file and rewinds to the first entry.
func (r *Reader) Reload() error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	entries, skipped, err := readEntries(f)
	if err != nil {
		return fmt.Errorf("failed to read log file %s: %w", r.path, err)
	}

	r.mu.Lock()
	r.entries = entries
	r.skipped = skipped
	r.pos = 0
	r.mu.Unlock()

	logger.Debug("log file loaded", "path", r.path, "entries", len(entries), "skipped", skipped)
	return nil
}

func readEntries(rd io.Reader) ([]models.LogEntry, int, error) {
	var entries []models.LogEntry
	skipped := 0

	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		entry, err := ParseLine(line)
		if err != nil {
			if line != "" {
				skipped++
				logger.Debug("skipping log line", "line", lineNo, "error", err)
			}
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return entries, skipped, nil
}

// Reset rewinds to the first entry.
func (r *Reader) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = 0
	return nil
}

// HasNext reports whether entries remain.
func (r *Reader) HasNext() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos < len(r.entries)
}

// Next returns the next entry, or ErrExhausted.
func (r *Reader) Next() (models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pos >= len(r.entries) {
		return models.LogEntry{}, ErrExhausted
	}
	e := r.entries[r.pos]
	r.pos++
	return e, nil
}

// PrintData writes every parsed entry.
func (r *Reader) PrintData(w io.Writer) error {
	r.mu.Lock()
	entries := r.entries
	r.mu.Unlock()
	return printEntries(w, entries)
}

// Len returns the number of parsed entries.
func (r *Reader) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Skipped returns the number of non-empty lines that could not be parsed.
func (r *Reader) Skipped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}
