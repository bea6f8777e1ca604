package logfile

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// demoStatuses are the response codes written to demo logs, weighted towards 200.
var demoStatuses = []int{200, 200, 200, 200, 200, 200, 304, 404, 403, 500}

// DemoEntries generates n random entries spread over the given year, sorted
// chronologically. The same seed yields the same entries.
func DemoEntries(n int, year int, seed uint64) []models.LogEntry {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	span := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Sub(start)

	entries := make([]models.LogEntry, n)
	for i := range entries {
		offset := time.Duration(rng.Int64N(int64(span)))
		entries[i] = models.LogEntry{
			Time:   start.Add(offset).Truncate(time.Minute),
			Status: demoStatuses[rng.IntN(len(demoStatuses))],
			Bytes:  int64(200 + rng.IntN(20000)),
		}
	}
	slices.SortFunc(entries, func(a, b models.LogEntry) int {
		return a.Time.Compare(b.Time)
	})
	return entries
}

// CreateDemo writes n random weblog lines to path, creating parent directories.
func CreateDemo(path string, n int, seed uint64) error {
	if n < 0 {
		return fmt.Errorf("invalid demo entry count %d", n)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create demo log: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := printEntries(w, DemoEntries(n, time.Now().Year(), seed)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write demo log: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write demo log: %w", err)
	}
	return f.Close()
}
