// Package analyzer builds hourly, daily, monthly and yearly access histograms
// from a log source and answers busiest/quietest queries over them.
package analyzer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/j-veylop/weblog-analyzer/internal/logfile"
	"github.com/j-veylop/weblog-analyzer/internal/logger"
	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// ErrBucketOutOfRange is returned when an entry's bucket has no slot in a
// fixed-size table.
var ErrBucketOutOfRange = errors.New("bucket out of range")

// Analyzer drives full passes over a log source to build per-bucket counts.
// Analyze calls accumulate: running a pass twice doubles the counts unless
// the table is cleared in between.
type Analyzer struct {
	// passMu serialises passes; the source has a single cursor.
	passMu sync.Mutex
	mu     sync.RWMutex

	source  logfile.Source
	hourly  *Table
	daily   *Table
	monthly *Table
	yearly  *Table
	updated time.Time
}

// New creates an analyzer with zeroed tables over the given source.
func New(source logfile.Source) *Analyzer {
	return &Analyzer{
		source:  source,
		hourly:  NewTable(models.DimensionHour),
		daily:   NewTable(models.DimensionDay),
		monthly: NewTable(models.DimensionMonth),
		yearly:  NewTable(models.DimensionYear),
	}
}

// Source returns the log source the analyzer reads.
func (a *Analyzer) Source() logfile.Source {
	return a.source
}

func (a *Analyzer) table(dim models.Dimension) *Table {
	switch dim {
	case models.DimensionHour:
		return a.hourly
	case models.DimensionDay:
		return a.daily
	case models.DimensionMonth:
		return a.monthly
	default:
		return a.yearly
	}
}

// AnalyzeHourlyData counts accesses per hour of day.
func (a *Analyzer) AnalyzeHourlyData() error {
	return a.Analyze(models.DimensionHour)
}

// AnalyzeDailyData counts accesses per day of month.
func (a *Analyzer) AnalyzeDailyData() error {
	return a.Analyze(models.DimensionDay)
}

// AnalyzeMonthlyData counts accesses per month of year.
func (a *Analyzer) AnalyzeMonthlyData() error {
	return a.Analyze(models.DimensionMonth)
}

// AnalyzeYearlyData counts accesses per year.
func (a *Analyzer) AnalyzeYearlyData() error {
	return a.Analyze(models.DimensionYear)
}

// AnalyzeAll runs a pass for every dimension, stopping at the first error.
func (a *Analyzer) AnalyzeAll() error {
	for _, dim := range models.Dimensions {
		if err := a.Analyze(dim); err != nil {
			return err
		}
	}
	return nil
}

// Analyze resets the source, reads every entry and adds one count per entry
// to the dimension's table. The pass is committed only if it completes, so a
// failed pass leaves the table unchanged.
func (a *Analyzer) Analyze(dim models.Dimension) error {
	a.passMu.Lock()
	defer a.passMu.Unlock()

	tally, n, err := a.tally(dim)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.table(dim).merge(tally); err != nil {
		return err
	}
	a.updated = time.Now()

	logger.Debug("analysis pass complete", "dimension", dim.String(), "entries", n)
	return nil
}

// tally counts one full pass over the source into a fresh table.
// The caller holds passMu.
func (a *Analyzer) tally(dim models.Dimension) (*Table, int, error) {
	if err := a.source.Reset(); err != nil {
		return nil, 0, fmt.Errorf("failed to reset log source: %w", err)
	}

	t := NewTable(dim)
	n := 0
	for a.source.HasNext() {
		entry, err := a.source.Next()
		if err != nil {
			return nil, n, fmt.Errorf("failed to read log entry %d: %w", n+1, err)
		}
		if err := t.Increment(dim.Bucket(entry)); err != nil {
			return nil, n, err
		}
		n++
	}
	return t, n, nil
}

// Rebuild recounts every dimension from scratch and swaps the new tables in
// together. Readers see either the old tables or the new ones; if any pass
// fails the old tables stay in place.
func (a *Analyzer) Rebuild() error {
	a.passMu.Lock()
	defer a.passMu.Unlock()

	fresh := make(map[models.Dimension]*Table, len(models.Dimensions))
	for _, dim := range models.Dimensions {
		t, _, err := a.tally(dim)
		if err != nil {
			return err
		}
		fresh[dim] = t
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.hourly = fresh[models.DimensionHour]
	a.daily = fresh[models.DimensionDay]
	a.monthly = fresh[models.DimensionMonth]
	a.yearly = fresh[models.DimensionYear]
	a.updated = time.Now()

	logger.Debug("analysis rebuilt", "entries", a.hourly.Total())
	return nil
}

// Clear zeroes one table.
func (a *Analyzer) Clear(dim models.Dimension) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.table(dim).clear()
}

// ClearAll zeroes every table.
func (a *Analyzer) ClearAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, dim := range models.Dimensions {
		a.table(dim).clear()
	}
}

// Table returns a copy of a dimension's table.
func (a *Analyzer) Table(dim models.Dimension) *Table {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table(dim).Clone()
}

// Busiest returns the first slot with the highest count, or NoBucket.
func (a *Analyzer) Busiest(dim models.Dimension) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table(dim).Busiest()
}

// Quietest returns the first slot with the lowest count, or NoBucket.
func (a *Analyzer) Quietest(dim models.Dimension) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table(dim).Quietest()
}

// BusiestWindow returns the start slot of the busiest run of width adjacent slots.
func (a *Analyzer) BusiestWindow(dim models.Dimension, width int) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table(dim).BusiestWindow(width)
}

// WindowSum returns the accesses in width adjacent slots starting at start.
func (a *Analyzer) WindowSum(dim models.Dimension, start, width int) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table(dim).WindowSum(start, width)
}

// BusiestHour returns the hour with the most accesses.
func (a *Analyzer) BusiestHour() int { return a.Busiest(models.DimensionHour) }

// BusiestTwoHours returns the first hour of the busiest two-hour period.
func (a *Analyzer) BusiestTwoHours() int { return a.BusiestWindow(models.DimensionHour, 2) }

// QuietestHour returns the hour with the fewest accesses.
func (a *Analyzer) QuietestHour() int { return a.Quietest(models.DimensionHour) }

// BusiestDay returns the daily slot (day of month minus one) with the most accesses.
func (a *Analyzer) BusiestDay() int { return a.Busiest(models.DimensionDay) }

// QuietestDay returns the daily slot with the fewest accesses.
func (a *Analyzer) QuietestDay() int { return a.Quietest(models.DimensionDay) }

// BusiestMonth returns the monthly slot (month minus one) with the most accesses.
func (a *Analyzer) BusiestMonth() int { return a.Busiest(models.DimensionMonth) }

// QuietestMonth returns the monthly slot with the fewest accesses.
func (a *Analyzer) QuietestMonth() int { return a.Quietest(models.DimensionMonth) }

// BusiestYear returns the yearly slot with the most accesses, or NoBucket
// before the first yearly pass.
func (a *Analyzer) BusiestYear() int { return a.Busiest(models.DimensionYear) }

// QuietestYear returns the yearly slot with the fewest accesses.
func (a *Analyzer) QuietestYear() int { return a.Quietest(models.DimensionYear) }

// TotalAccesses returns the sum of a dimension's table.
func (a *Analyzer) TotalAccesses(dim models.Dimension) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table(dim).Total()
}

// NumberOfAccesses returns the number of accesses counted by the hourly passes.
func (a *Analyzer) NumberOfAccesses() int {
	return a.TotalAccesses(models.DimensionHour)
}

// TotalAccessesPerMonth returns the number of accesses counted by the daily passes.
func (a *Analyzer) TotalAccessesPerMonth() int {
	return a.TotalAccesses(models.DimensionDay)
}

// Summary reports the extremes and total of a dimension's table.
func (a *Analyzer) Summary(dim models.Dimension) models.Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	t := a.table(dim)
	s := models.Summary{
		Dimension: dim,
		Counts:    t.Counts(),
		Base:      t.Base(),
		Busiest:   t.Busiest(),
		Quietest:  t.Quietest(),
		Total:     t.Total(),
		UpdatedAt: a.updated,
	}
	s.BusiestCount = t.Count(s.Busiest)
	s.QuietestCount = t.Count(s.Quietest)
	return s
}

// Summaries returns a summary for every dimension.
func (a *Analyzer) Summaries() []models.Summary {
	out := make([]models.Summary, 0, len(models.Dimensions))
	for _, dim := range models.Dimensions {
		out = append(out, a.Summary(dim))
	}
	return out
}

// PrintCounts writes a "<heading>: Count" line followed by one
// "<bucket>: <count>" line per slot in slot order.
func (a *Analyzer) PrintCounts(w io.Writer, dim models.Dimension) error {
	s := a.Summary(dim)
	if _, err := fmt.Fprintf(w, "%s: Count\n", dim.Heading()); err != nil {
		return err
	}
	for i, c := range s.Counts {
		if _, err := fmt.Fprintf(w, "%d: %d\n", s.Label(i), c); err != nil {
			return err
		}
	}
	return nil
}

// PrintData writes the raw entries of the log source.
func (a *Analyzer) PrintData(w io.Writer) error {
	a.passMu.Lock()
	defer a.passMu.Unlock()
	return a.source.PrintData(w)
}
