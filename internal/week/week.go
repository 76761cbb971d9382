// Package week computes the Sunday-based week window shown by the widget:
// its boundaries, how far wall-clock time has progressed through it, the ISO
// week number and the seven day cells.
package week

import (
	"math"
	"time"
)

// DaysPerWeek is the number of cells in a week view.
const DaysPerWeek = 7

var labels = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Window is the half-open interval [Start, End) covering one week.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Day is one cell of the week view.
type Day struct {
	Label      string
	Date       time.Time
	DayOfMonth int
	Today      bool
}

// Midnight truncates t to 00:00 of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOf returns local midnight of the most recent Sunday on or before date.
func StartOf(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d-int(date.Weekday()), 0, 0, 0, 0, date.Location())
}

// WindowOf returns the week window containing date. End is seven calendar
// days after Start, so a window spanning a DST change is 167h or 169h long.
func WindowOf(date time.Time) Window {
	start := StartOf(date)
	return Window{Start: start, End: start.AddDate(0, 0, DaysPerWeek)}
}

// Progress returns the percentage of the reference week that has elapsed at
// now, clamped to [0, 100].
func Progress(reference, now time.Time) float64 {
	w := WindowOf(reference)
	total := w.End.Sub(w.Start)
	elapsed := now.Sub(w.Start)
	pct := float64(elapsed) / float64(total) * 100
	return math.Min(100, math.Max(0, pct))
}

// Number returns the ISO-8601 week number of date's calendar day. Weeks start
// on Monday and week 1 is the one holding the year's first Thursday, so early
// January days can belong to week 52 or 53 of the previous year.
func Number(date time.Time) int {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := day.AddDate(0, 0, 4-weekday)
	jan1 := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	ordinal := thursday.Sub(jan1).Hours()/24 + 1
	return int(math.Ceil(ordinal / DaysPerWeek))
}

// Days lists the seven days of date's week, Sunday first. The cell at
// date's weekday is marked Today whether or not date is the real current day.
func Days(date time.Time) [DaysPerWeek]Day {
	start := StartOf(date)
	current := int(date.Weekday())
	var days [DaysPerWeek]Day
	for i := range days {
		day := start.AddDate(0, 0, i)
		days[i] = Day{
			Label:      labels[i],
			Date:       day,
			DayOfMonth: day.Day(),
			Today:      i == current,
		}
	}
	return days
}

// Shift moves date by n whole weeks. Negative n moves backwards.
func Shift(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n*DaysPerWeek)
}
