package models

import "time"

// Summary holds the extremes and total of one count table.
type Summary struct {
	Dimension     Dimension
	Counts        []int
	Base          int
	Busiest       int
	BusiestCount  int
	Quietest      int
	QuietestCount int
	Total         int
	UpdatedAt     time.Time
}

// HasData reports whether the summarised table holds any slots.
func (s Summary) HasData() bool {
	return len(s.Counts) > 0
}

// Label returns the bucket value for a slot index.
func (s Summary) Label(slot int) int {
	return s.Base + slot
}
