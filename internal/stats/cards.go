// Package stats maps the server-derived weekly counters onto the four
// display cards. Pure formatting: no network, no mutation.
package stats

import (
	"strconv"
	"time"

	"github.com/planbrew/planbrew/internal/activity"
)

// Placeholder renders in place of a most-active day the backend could not
// determine.
const Placeholder = "—"

// Card is one display card.
type Card struct {
	Label string
	Value string
}

// Cards returns the four cards in their fixed order: Updates, Completed,
// Features, Most Active.
func Cards(s activity.Stats, loc *time.Location) []Card {
	return []Card{
		{Label: "Updates", Value: strconv.Itoa(s.TotalUpdates)},
		{Label: "Completed", Value: strconv.Itoa(s.Completions)},
		{Label: "Features", Value: strconv.Itoa(s.FeaturesWorkedOn)},
		{Label: "Most Active", Value: MostActiveDay(s.MostActiveDay, loc)},
	}
}

// MostActiveDay resolves a calendar-date string to a full weekday name,
// or the placeholder when the day is unknown. The date parses at local
// noon so a timezone boundary cannot shift it to a neighboring day.
func MostActiveDay(day *string, loc *time.Location) string {
	if day == nil || *day == "" {
		return Placeholder
	}
	t, err := time.ParseInLocation("2006-01-02", *day, loc)
	if err != nil {
		return Placeholder
	}
	return t.Add(12 * time.Hour).Format("Monday")
}
