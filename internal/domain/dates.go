package domain

import "time"

// DateOf drops the clock part, keeping the calendar date as seen in t's location.
// The result is midnight UTC so it compares equal to DATE values read from postgres.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compares calendar dates
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// IsBeforeDay returns true if date is an earlier calendar day than ref
func IsBeforeDay(date, ref time.Time) bool {
	return DateOf(date).Before(DateOf(ref))
}

// MondayBasedWeekday converts time.Weekday (Sunday = 0) to Monday = 0 ... Sunday = 6
func MondayBasedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
