package domain

import (
	"fmt"
	"strings"
	"time"
)

// dateFormats are tried in order; the first layout that parses wins. The
// order resolves ambiguous fragments (a day of 12 or less parses under more
// than one layout), which is deliberate and matches the source site's output.
var dateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
}

// ParseDate parses a free-text added-date fragment into a calendar date.
// Known prefixes ("Added on ", "Reduced on ") are stripped before format
// matching; the relative phrases "today" and "yesterday" resolve against the
// current wall clock.
func ParseDate(raw string) (time.Time, error) {
	return parseDateAt(raw, time.Now())
}

func parseDateAt(raw string, now time.Time) (time.Time, error) {
	s := raw
	switch {
	case strings.HasPrefix(s, "Added on "):
		s = strings.TrimPrefix(s, "Added on ")
	case strings.HasPrefix(s, "Reduced on "):
		s = strings.TrimPrefix(s, "Reduced on ")
	case strings.HasPrefix(s, "Added today"), strings.HasPrefix(s, "Reduced today"):
		return DateOf(now), nil
	case strings.HasPrefix(s, "Added yesterday"), strings.HasPrefix(s, "Reduced yesterday"):
		return DateOf(now.AddDate(0, 0, -1)), nil
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// DateOf truncates a timestamp to its date component (midnight UTC).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
