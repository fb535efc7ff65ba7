package domain

import (
	"math"
	"time"
)

// ─── Calendar Days ──────────────────────────────────────────────────────────
// Streaks and daily resets compare calendar days in local time, not 24h
// windows. Day is a date without a clock.

// Day is a local calendar date.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Date: d}
}

// IsZero reports whether the day is unset (no prior login).
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Date == 0
}

// Time returns midnight of the day in local time.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.Local)
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(time.DateOnly)
}

// DaysSince returns the number of whole calendar days from prev to d.
// Same day → 0, next day → 1. Negative if d precedes prev.
func (d Day) DaysSince(prev Day) int {
	// Midnight-to-midnight difference, rounded to the nearest day so a 23h
	// or 25h DST day still counts as 1. Rounding (not truncation) keeps the
	// sign correct when d precedes prev.
	hours := d.Time().Sub(prev.Time()).Hours()
	return int(math.Round(hours / 24))
}

// WeekID returns a comparable ISO week identifier (year*100 + week).
// Used to decide whether the weekly reset boundary has been crossed —
// comparing week ids cannot skip a boundary the way wall-clock matching can.
func (d Day) WeekID() int {
	year, week := d.Time().ISOWeek()
	return year*100 + week
}
