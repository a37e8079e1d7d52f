package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDateTime accepts RFC 3339 timestamps, with or without fractional
// seconds. Naive timestamps (no offset) are accepted and read as UTC.
func ParseDateTime(s string) (time.Time, error) {
	return parseRFC3339(s)
}

// ParseAwareDateTime is ParseDateTime but rejects timestamps without an offset.
func ParseAwareDateTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParseDate accepts YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// ParseTime accepts HH:MM[:SS[.fraction]].
func ParseTime(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05.999999999", "15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("codec: invalid time %q", s)
}

// ParseDuration accepts Go duration strings ("1h30m") or a plain number of
// seconds ("90", "1.5").
func ParseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("codec: invalid duration %q", s)
	}
	return time.Duration(f * float64(time.Second)), nil
}

// FormatDateTime renders t canonically (UTC, RFC3339Nano).
func FormatDateTime(t time.Time) string {
	return formatRFC3339Canonical(t)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		// naive: no offset
		if t3, err3 := time.Parse("2006-01-02T15:04:05.999999999", s); err3 == nil {
			return t3, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
