// Package timeutil resolves school-day, week, and month boundaries in the
// configured application timezone. The location is passed explicitly; there
// is no process-wide timezone state.
package timeutil

import "time"

// DayBounds returns the UTC instants bracketing the local calendar day
// containing t.
func DayBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	local := t.In(loc)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// WeekStart returns midnight of the Monday of the local week containing t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	offset := (int(local.Weekday()) + 6) % 7
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -offset)
}

// WeekBounds returns the UTC instants bracketing the local week containing t.
func WeekBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	weekStart := WeekStart(t, loc)
	return weekStart.UTC(), weekStart.AddDate(0, 0, 7).UTC()
}

// MonthBounds returns the UTC instants bracketing the local month containing t.
func MonthBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	local := t.In(loc)
	start = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// YearBounds returns the UTC instants bracketing a local calendar year.
func YearBounds(year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(1, 0, 0).UTC()
}

// ParseLocalDate interprets a YYYY-MM-DD string as midnight in loc.
func ParseLocalDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}

// SameLocalDay reports whether a and b fall on the same calendar day in loc.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}
