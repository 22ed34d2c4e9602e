package model

import (
	"fmt"
	"time"
)

// Date layouts accepted on the wire. All date-only values are interpreted
// as UTC day boundaries so that day, month, year, and range computations
// agree on where a day starts.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	YearLayout  = "2006"
)

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string as the first instant of that month, UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t, nil
}

// ParseYear parses a YYYY string as the first instant of that year, UTC.
func ParseYear(s string) (time.Time, error) {
	t, err := time.ParseInLocation(YearLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q: expected YYYY", s)
	}
	return t, nil
}

// DayWindow returns the half-open window [start, start+1d) covering the
// calendar day that contains start.
func DayWindow(start time.Time) (time.Time, time.Time) {
	s := start.UTC().Truncate(24 * time.Hour)
	return s, s.AddDate(0, 0, 1)
}

// MonthWindow returns [first of month, first of next month).
func MonthWindow(start time.Time) (time.Time, time.Time) {
	s := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s, s.AddDate(0, 1, 0)
}

// YearWindow returns [Jan 1, next Jan 1).
func YearWindow(start time.Time) (time.Time, time.Time) {
	s := time.Date(start.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return s, s.AddDate(1, 0, 0)
}
