package dateutil

import (
	"time"
)

// MonthsBetween returns the number of whole calendar months elapsed from
// start to at. It is negative when at precedes start.
func MonthsBetween(start, at time.Time) int {
	months := (at.Year()-start.Year())*12 + int(at.Month()) - int(start.Month())
	if at.Day() < start.Day() {
		months--
	}
	return months
}

// ElapsedMonths is MonthsBetween clamped to [0, max]. It seeds a loan's
// current balance from a historical start date without ever producing a
// negative or past-term month count.
func ElapsedMonths(start, at time.Time, max int) int {
	m := MonthsBetween(start, at)
	if m < 0 {
		return 0
	}
	if m > max {
		return max
	}
	return m
}

// AddMonths returns the date n months after t, normalized by the stdlib
// calendar rules (Jan 31 + 1 month = Mar 3 on non-leap years).
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// YearsFromMonths converts a month count to fractional years.
func YearsFromMonths(months int) float64 {
	return float64(months) / 12.0
}
