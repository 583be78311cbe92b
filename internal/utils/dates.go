package utils

import (
	"strings"
	"time"
)

// flexibleTimeFormats are the timestamp layouts found in imported legacy
// records, tried in order. RFC3339 covers both "Z" and numeric-offset
// suffixes.
var flexibleTimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime normalizes a textual timestamp at the storage boundary.
// A value matching none of the known formats yields ok=false instead of an
// error, so callers can exclude it without failing.
func ParseFlexibleTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleTimeFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SameMonth reports whether two instants fall in the same calendar month and
// year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// RentalDays returns the rental duration in whole days, never less than one.
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
