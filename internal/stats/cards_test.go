package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbrew/planbrew/internal/activity"
)

func strPtr(s string) *string { return &s }

func TestCards_OrderAndValues(t *testing.T) {
	s := activity.Stats{
		TotalUpdates:     12,
		Completions:      4,
		Sessions:         7,
		Blockers:         1,
		MostActiveDay:    strPtr("2024-01-17"),
		FeaturesWorkedOn: 3,
	}

	cards := Cards(s, time.UTC)

	require.Len(t, cards, 4)
	assert.Equal(t, Card{"Updates", "12"}, cards[0])
	assert.Equal(t, Card{"Completed", "4"}, cards[1])
	assert.Equal(t, Card{"Features", "3"}, cards[2])
	assert.Equal(t, Card{"Most Active", "Wednesday"}, cards[3])
}

func TestMostActiveDay(t *testing.T) {
	assert.Equal(t, "Wednesday", MostActiveDay(strPtr("2024-01-17"), time.UTC))
	assert.Equal(t, "—", MostActiveDay(nil, time.UTC))
	assert.Equal(t, "—", MostActiveDay(strPtr(""), time.UTC))
	assert.Equal(t, "—", MostActiveDay(strPtr("not-a-date"), time.UTC))
}

func TestMostActiveDay_NoonAvoidsTimezoneShift(t *testing.T) {
	// West of UTC the calendar date must not slip to the previous day.
	honolulu := time.FixedZone("HST", -10*3600)
	assert.Equal(t, "Wednesday", MostActiveDay(strPtr("2024-01-17"), honolulu))

	// Far east of UTC either.
	auckland := time.FixedZone("NZDT", 13*3600)
	assert.Equal(t, "Wednesday", MostActiveDay(strPtr("2024-01-17"), auckland))
}
