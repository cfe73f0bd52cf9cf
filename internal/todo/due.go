package todo

import (
	"strings"
	"time"
)

// DueLayout is the normalized layout for stored due dates.
const DueLayout = "2006-01-02T15:04:05.000Z"

// dueLayouts are tried in order when parsing user input.
var dueLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
}

// ParseDue normalizes a user-supplied due date. Parsed values are returned
// in DueLayout (UTC); date-only input means midnight UTC. Input that does
// not parse is returned trimmed but otherwise unchanged.
func ParseDue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, ok := parseDueTime(s)
	if !ok {
		return s
	}
	return t.UTC().Format(DueLayout)
}

func parseDueTime(s string) (time.Time, bool) {
	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
