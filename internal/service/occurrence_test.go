package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap_api/internal/model"
)

func slotOn(day model.DayOfWeek, start, end string) *model.TimeSlot {
	return &model.TimeSlot{Day: day, StartTime: start, EndTime: end}
}

func TestNextOccurrence(t *testing.T) {
	// A Wednesday.
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

	startAt, endAt, err := NextOccurrence(now, slotOn(model.Monday, "09:00", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC), startAt)
	assert.Equal(t, time.Date(2024, time.March, 11, 10, 30, 0, 0, time.UTC), endAt)

	// Later in the same week.
	startAt, _, err = NextOccurrence(now, slotOn(model.Friday, "14:00", "15:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 8, 14, 0, 0, 0, time.UTC), startAt)
}

func TestNextOccurrence_TodayRollsAWeek(t *testing.T) {
	// Wednesday morning, slot later the same day: still next week.
	now := time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC)

	startAt, _, err := NextOccurrence(now, slotOn(model.Wednesday, "18:00", "19:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 13, 18, 0, 0, 0, time.UTC), startAt)
}

func TestNextOccurrence_Invalid(t *testing.T) {
	now := time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC)

	_, _, err := NextOccurrence(now, slotOn("FUNDAY", "09:00", "10:00"))
	require.Error(t, err)

	_, _, err = NextOccurrence(now, slotOn(model.Monday, "9am", "10:00"))
	require.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, err := parseClock("09:45")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 45, m)

	// Unpadded fields are rejected even though they name a real clock time:
	// stored times must stay fixed-width to compare correctly as strings.
	for _, bad := range []string{"24:00", "12:60", "noon", "12", "12:30:00", "9:00", "09:5", "+9:00", "12:-5"} {
		_, _, err := parseClock(bad)
		assert.Error(t, err, bad)
	}
}
