// Package dateutil provides date parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
)

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - "tomorrow": the day after relativeTo
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//
// Inputs are case-insensitive.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	result, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formats t as YYYY-MM-DD, the canonical storage form for dates.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ValidateTime checks that s is a valid HH:MM time.
func ValidateTime(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}
