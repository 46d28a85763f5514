package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for workout dates and
// streak comparisons.
const DateLayout = "2006-01-02"

// MonthLayout is the format of monthlyWorkouts keys.
const MonthLayout = "2006-01"

// DateString formats t as a calendar date (YYYY-MM-DD).
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthString formats t as a month key (YYYY-MM).
func MonthString(t time.Time) string {
	return t.Format(MonthLayout)
}

// IsConsecutiveDay reports whether two calendar dates are exactly one day
// apart, in either order. Time-of-day is irrelevant since both sides are
// date-only strings. Malformed dates are never consecutive.
func IsConsecutiveDay(a, b string) bool {
	da, err := time.Parse(DateLayout, a)
	if err != nil {
		return false
	}
	db, err := time.Parse(DateLayout, b)
	if err != nil {
		return false
	}
	days := int(db.Sub(da).Hours() / 24)
	return days == 1 || days == -1
}

// AnalyticsMonths returns the last n month keys ending at t, newest first.
// Used for the monthly workout chart.
func AnalyticsMonths(t time.Time, n int) []string {
	months := make([]string, 0, n)
	for i := 0; i < n; i++ {
		m := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		months = append(months, fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month())))
	}
	return months
}
