// Package week computes the Monday–Sunday activity window the dashboard
// displays. A window always starts Monday at local midnight and ends the
// following Sunday at 23:59:59.999, regardless of which weekday the
// reference instant falls on.
package week

import (
	"fmt"
	"time"
)

// Range is a single activity window. Start is a Monday at 00:00:00.000,
// End the following Sunday at 23:59:59.999, both in the reference
// instant's location.
type Range struct {
	Start time.Time
	End   time.Time
}

// Containing returns the window of the week containing ref.
func Containing(ref time.Time) Range {
	// Monday as week start; Sunday wraps back to the previous Monday.
	day := int(ref.Weekday()) // Sunday=0 .. Saturday=6
	diff := 1 - day
	if day == 0 {
		diff = -6
	}

	monday := ref.AddDate(0, 0, diff)
	y, m, d := monday.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())

	sunday := start.AddDate(0, 0, 6)
	y, m, d = sunday.Date()
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), ref.Location())

	return Range{Start: start, End: end}
}

// ForOffset returns the window `weeks` weeks away from the one containing
// now. Negative offsets move into the past.
func ForOffset(now time.Time, weeks int) Range {
	return Containing(now.AddDate(0, 0, 7*weeks))
}

// Contains reports whether t falls inside the window (inclusive on both
// ends).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Label renders the window for display, e.g. "Jan 2 – Jan 8, 2006".
func (r Range) Label() string {
	return fmt.Sprintf("%s – %s", r.Start.Format("Jan 2"), r.End.Format("Jan 2, 2006"))
}
