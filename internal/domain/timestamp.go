package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the zero-padded UTC millisecond layout every stored
// timestamp is written in. Timeline and agenda ordering compare these
// strings directly, so the layout must not change.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp. Besides TimestampLayout it
// accepts any RFC 3339 value and a bare local "2006-01-02T15:04" or
// "2006-01-02" (interpreted in loc), which is what users type on the
// command line.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
