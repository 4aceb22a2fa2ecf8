package util

import (
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// WeekStart returns the calendar Monday of the week containing t,
// truncated to a date-only UTC value. Sunday folds back six days.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	y, m, d := t.AddDate(0, 0, -(wd - 1)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISOWeek returns the ISO-8601 week-year and week number (1-53) for t.
// Week 1 is the week containing the year's first Thursday, so the
// week-year may differ from the Gregorian year near boundaries.
func ISOWeek(t time.Time) (year, week int) {
	return t.UTC().ISOWeek()
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// ParseTime tries RFC3339 and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}
