package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimestampLayout is the output rendering of parsed timestamps. It is
// ISO 8601 in UTC with trailing zero fractions trimmed, and dateparse reads
// it back to the identical instant.
const TimestampLayout = time.RFC3339Nano

// TimestampParser turns free-text cells into instants.
//
// The grammar is dateparse's ParseIn with UTC as the location for inputs that
// carry no zone. Ambiguous numeric dates such as 02/03/2024 are read
// month-first unless DayFirst is set; when the preferred order is impossible
// (13/01/2024) the parser retries with day and month swapped. Digit-only
// strings follow dateparse's rules (yyyymmdd, unix seconds/millis by length).
// Results carrying an explicit offset are converted to UTC.
type TimestampParser struct {
	DayFirst bool
}

// Parse returns nil for empty or unparsable input. It never panics.
func (p TimestampParser) Parse(s string) (ts *time.Time) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// malformed input must never abort a run
	defer func() {
		if recover() != nil {
			ts = nil
		}
	}()

	t, err := dateparse.ParseIn(s, time.UTC,
		dateparse.PreferMonthFirst(!p.DayFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// ParseTimestamp parses s with the default month-first grammar.
func ParseTimestamp(s string) *time.Time {
	return TimestampParser{}.Parse(s)
}

// FormatTimestamp renders t in TimestampLayout, or "" for nil.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}
