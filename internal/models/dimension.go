package models

// Dimension identifies the time bucket an access is counted in.
type Dimension int

const (
	// DimensionHour buckets accesses by hour of day.
	DimensionHour Dimension = iota
	// DimensionDay buckets accesses by day of month.
	DimensionDay
	// DimensionMonth buckets accesses by month of year.
	DimensionMonth
	// DimensionYear buckets accesses by calendar year.
	DimensionYear
)

// MinYear and MaxYear bound the years a log entry may carry. They keep the
// yearly table small and match the four-digit years SQLite date functions accept.
const (
	MinYear = 1
	MaxYear = 9999
)

// ValidYear reports whether year lies in [MinYear, MaxYear].
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// Dimensions lists every dimension in display order.
var Dimensions = []Dimension{DimensionHour, DimensionDay, DimensionMonth, DimensionYear}

// String returns the display name for a dimension.
func (d Dimension) String() string {
	switch d {
	case DimensionHour:
		return "Hour"
	case DimensionDay:
		return "Day"
	case DimensionMonth:
		return "Month"
	case DimensionYear:
		return "Year"
	default:
		return "Unknown"
	}
}

// Heading returns the column heading used in count reports.
func (d Dimension) Heading() string {
	if d == DimensionHour {
		return "Hr"
	}
	return d.String()
}

// Base returns the bucket value stored in slot 0 of a fixed table.
func (d Dimension) Base() int {
	switch d {
	case DimensionDay, DimensionMonth:
		return 1
	default:
		return 0
	}
}

// Slots returns the fixed number of slots for the dimension (0 = grows on demand).
func (d Dimension) Slots() int {
	switch d {
	case DimensionHour:
		return 24
	case DimensionDay:
		return 31
	case DimensionMonth:
		return 12
	default:
		return 0
	}
}

// Contains reports whether bucket is a legal value for the dimension.
func (d Dimension) Contains(bucket int) bool {
	switch d {
	case DimensionYear:
		return ValidYear(bucket)
	default:
		return bucket >= d.Base() && bucket < d.Base()+d.Slots()
	}
}

// Bucket extracts the dimension's bucket value from an entry.
func (d Dimension) Bucket(e LogEntry) int {
	switch d {
	case DimensionHour:
		return e.Hour()
	case DimensionDay:
		return e.Day()
	case DimensionMonth:
		return e.Month()
	default:
		return e.Year()
	}
}

// Next cycles to the next dimension.
func (d Dimension) Next() Dimension {
	return (d + 1) % Dimension(len(Dimensions))
}
