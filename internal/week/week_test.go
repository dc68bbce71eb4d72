package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContaining_AllWeekdays(t *testing.T) {
	// 2024-01-15 is a Monday.
	base := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		ref := base.AddDate(0, 0, offset)
		r := Containing(ref)

		assert.Equal(t, time.Monday, r.Start.Weekday(), "ref %s", ref.Weekday())
		assert.Equal(t, time.Sunday, r.End.Weekday(), "ref %s", ref.Weekday())
		assert.Equal(t, 15, r.Start.Day(), "every day of that week maps to the same Monday")
		assert.True(t, r.Contains(ref), "window must contain its reference instant")
	}
}

func TestContaining_SundayWrapsBackward(t *testing.T) {
	// 2024-01-21 is a Sunday; its week started Monday the 15th.
	ref := time.Date(2024, 1, 21, 9, 0, 0, 0, time.UTC)
	r := Containing(ref)

	assert.Equal(t, 15, r.Start.Day())
	assert.Equal(t, 21, r.End.Day())
}

func TestContaining_StartAndEndClocks(t *testing.T) {
	ref := time.Date(2024, 1, 17, 23, 59, 0, 0, time.UTC)
	r := Containing(ref)

	h, m, s := r.Start.Clock()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{h, m, s})
	assert.Equal(t, 0, r.Start.Nanosecond())

	h, m, s = r.End.Clock()
	assert.Equal(t, [3]int{23, 59, 59}, [3]int{h, m, s})
	assert.Equal(t, int(999*time.Millisecond), r.End.Nanosecond())
}

func TestContaining_MonthBoundary(t *testing.T) {
	// 2024-02-01 is a Thursday; its week starts Monday Jan 29.
	ref := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	r := Containing(ref)

	assert.Equal(t, time.January, r.Start.Month())
	assert.Equal(t, 29, r.Start.Day())
	assert.Equal(t, time.February, r.End.Month())
	assert.Equal(t, 4, r.End.Day())
}

func TestContaining_YearBoundary(t *testing.T) {
	// 2024-01-01 is a Monday, but 2023-12-31 is a Sunday whose week starts
	// Monday Dec 25.
	ref := time.Date(2023, 12, 31, 6, 0, 0, 0, time.UTC)
	r := Containing(ref)

	require.Equal(t, 2023, r.Start.Year())
	assert.Equal(t, time.December, r.Start.Month())
	assert.Equal(t, 25, r.Start.Day())
	assert.Equal(t, 31, r.End.Day())

	next := Containing(time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, next.Start.Year())
	assert.Equal(t, 1, next.Start.Day())
}

func TestForOffset(t *testing.T) {
	now := time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC) // Wednesday

	current := ForOffset(now, 0)
	previous := ForOffset(now, -1)

	assert.Equal(t, 15, current.Start.Day())
	assert.Equal(t, 8, previous.Start.Day())
	assert.Equal(t, time.Monday, previous.Start.Weekday())
	assert.Equal(t, time.Sunday, previous.End.Weekday())
	assert.Equal(t, current.Start.AddDate(0, 0, -7), previous.Start)
}

func TestLabel(t *testing.T) {
	r := Containing(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Jan 15 – Jan 21, 2024", r.Label())
}

func TestContains(t *testing.T) {
	r := Containing(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC))

	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.Start.Add(-time.Millisecond)))
	assert.False(t, r.Contains(r.End.Add(time.Millisecond)))
}
