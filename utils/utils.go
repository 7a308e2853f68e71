package utils

import (
	"regexp"
	"time"
)

// Accepts integers and decimals with optional sign and exponent, the same
// shape the original form validation accepted.
var numberRegEx = regexp.MustCompile(`^\s*[+-]?(\d+|\d*\.\d+|\d+\.\d*)([Ee][+-]?\d+)?\s*$`)

// ValidNumberField reports whether the string parses as a plain number.
func ValidNumberField(myNumber string) bool {
	return numberRegEx.MatchString(myNumber)
}

// JustDate truncates a time to local midnight of the same calendar day.
func JustDate(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// FirstDayOfMonth truncates a time to local midnight of the first of its month.
func FirstDayOfMonth(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.Local)
}

// WindowStart returns the inclusive start of a trailing N-day window:
// local midnight of today minus (days-1). This is the single window
// definition used by every report.
func WindowStart(days int, now time.Time) time.Time {
	return JustDate(now).AddDate(0, 0, -(days - 1))
}

// ParseDate tries RFC3339 first and falls back to a bare calendar date.
// The zero time and ok=false are returned when neither form matches.
func ParseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
