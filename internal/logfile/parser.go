package logfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// clfLine matches Common and Combined Log Format lines:
// host ident user [time] "method path proto" status bytes ...
var clfLine = regexp.MustCompile(`^(\S+) \S+ \S+ \[([^\]]+)\] "(\S+)(?: (\S+))?[^"]*" (\d{3}) (\d+|-)`)

// ParseLine interprets one log line. It accepts the weblog format
// "YYYY MM DD HH mm [status] [bytes]", Common/Combined Log Format, and lines
// starting with a timestamp in one of the known layouts.
func ParseLine(line string) (models.LogEntry, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return models.LogEntry{}, fmt.Errorf("%w: empty line", ErrMalformedLine)
	}

	if m := clfLine.FindStringSubmatch(line); m != nil {
		return parseCLF(line, m)
	}

	fields := strings.Fields(line)
	if entry, ok := parseWeblog(fields); ok {
		entry.Raw = line
		return entry, nil
	}

	if ts, ok := parseLeadingTimestamp(fields); ok {
		return models.LogEntry{Time: ts, Raw: line}, nil
	}

	return models.LogEntry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
}

func parseCLF(line string, m []string) (models.LogEntry, error) {
	ts, err := time.Parse(clfLayout, m[2])
	if err != nil || !models.ValidYear(ts.Year()) {
		return models.LogEntry{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, m[2])
	}
	status, _ := strconv.Atoi(m[5])
	var size int64
	if m[6] != "-" {
		size, _ = strconv.ParseInt(m[6], 10, 64)
	}
	return models.LogEntry{
		Time:       ts,
		RemoteAddr: m[1],
		Method:     m[3],
		Path:       m[4],
		Status:     status,
		Bytes:      size,
		Raw:        line,
	}, nil
}

// parseWeblog handles "year month day hour minute [status] [bytes]".
func parseWeblog(fields []string) (models.LogEntry, bool) {
	if len(fields) < 5 {
		return models.LogEntry{}, false
	}

	var nums [5]int
	for i := range nums {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return models.LogEntry{}, false
		}
		nums[i] = n
	}

	year, month, day, hour, minute := nums[0], nums[1], nums[2], nums[3], nums[4]
	if !models.ValidYear(year) || month < 1 || month > 12 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return models.LogEntry{}, false
	}
	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalises out-of-range days (Feb 30 -> Mar 2); reject those.
	if ts.Day() != day {
		return models.LogEntry{}, false
	}

	entry := models.LogEntry{Time: ts}
	if len(fields) >= 6 {
		if status, err := strconv.Atoi(fields[5]); err == nil {
			entry.Status = status
		}
	}
	if len(fields) >= 7 {
		if size, err := strconv.ParseInt(fields[6], 10, 64); err == nil {
			entry.Bytes = size
		}
	}
	return entry, true
}

// parseLeadingTimestamp tries the first one, two and three fields as a timestamp.
func parseLeadingTimestamp(fields []string) (time.Time, bool) {
	for n := 1; n <= 3 && n <= len(fields); n++ {
		candidate := strings.Trim(strings.Join(fields[:n], " "), "[]")
		for _, layout := range timestampFormats {
			if ts, err := time.Parse(layout, candidate); err == nil && models.ValidYear(ts.Year()) {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}
