package model

import "time"

// DateOf drops the time-of-day of t as observed in t's own location and returns
// that calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil is the whole number of calendar days from from's date to to's date.
// Negative when to is in the past.
func DaysUntil(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}
