// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// LogEntry represents a single access recorded in a web server log.
type LogEntry struct {
	Time       time.Time
	RemoteAddr string
	Method     string
	Path       string
	Raw        string
	Status     int
	Bytes      int64
}

// Hour returns the hour of day of the access (0-23).
func (e LogEntry) Hour() int {
	return e.Time.Hour()
}

// Day returns the day of month of the access (1-31).
func (e LogEntry) Day() int {
	return e.Time.Day()
}

// Month returns the month of the access (1-12).
func (e LogEntry) Month() int {
	return int(e.Time.Month())
}

// Year returns the year of the access.
func (e LogEntry) Year() int {
	return e.Time.Year()
}

// Minute returns the minute of the access (0-59).
func (e LogEntry) Minute() int {
	return e.Time.Minute()
}

// String renders the entry in the classic weblog line format:
// year month day hour minute, followed by status and size when known.
func (e LogEntry) String() string {
	s := fmt.Sprintf("%d %02d %02d %02d %02d", e.Year(), e.Month(), e.Day(), e.Hour(), e.Minute())
	if e.Status > 0 {
		s += fmt.Sprintf(" %d %d", e.Status, e.Bytes)
	}
	return s
}
