package timeofday_test

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"tasktracker/internal/timeofday"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDueDate_RoundTrip(t *testing.T) {
	ref := time.Date(2025, time.March, 14, 17, 42, 31, 123456789, time.UTC)

	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			s := fmt.Sprintf("%02d:%02d", h, m)

			due, err := timeofday.ToDueDate(s, ref)
			require.NoError(t, err, s)

			got := timeofday.ToTimeString(&due)
			require.NotNil(t, got)
			assert.Equal(t, s, *got)
		}
	}
}

func TestToDueDate_KeepsReferenceDayAndZeroesSeconds(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	ref := time.Date(2024, time.December, 31, 23, 59, 59, 999, loc)

	due, err := timeofday.ToDueDate("08:15", ref)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 31, 8, 15, 0, 0, loc), due)
	assert.Equal(t, loc, due.Location())
	assert.Zero(t, due.Second())
	assert.Zero(t, due.Nanosecond())
}

func TestToDueDate_DaylightSavingGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	springForward := time.Date(2025, time.March, 9, 12, 0, 0, 0, loc)

	_, err = timeofday.ToDueDate("02:30", springForward)
	assert.ErrorIs(t, err, timeofday.ErrSkippedTime)

	for _, s := range []string{"01:59", "03:00", "23:59"} {
		due, err := timeofday.ToDueDate(s, springForward)
		require.NoError(t, err, s)
		assert.Equal(t, s, *timeofday.ToTimeString(&due))
	}

	due, err := timeofday.ToDueDate("02:30", springForward.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "02:30", *timeofday.ToTimeString(&due))
}

func TestToDueDate_Accepts(t *testing.T) {
	ref := time.Now()
	for _, s := range []string{"00:00", "23:59", "12:00", "09:05"} {
		_, err := timeofday.ToDueDate(s, ref)
		assert.NoError(t, err, s)
	}
}

func TestToDueDate_Rejects(t *testing.T) {
	ref := time.Now()
	cases := []string{"24:00", "29:59", "12:60", "1:30", "", "12:3", "12-30", " 12:30", "12:30 ", "ab:cd", "123:00"}
	for _, s := range cases {
		_, err := timeofday.ToDueDate(s, ref)
		assert.ErrorIs(t, err, timeofday.ErrInvalidFormat, "input %q", s)
	}
}

func TestToTimeString_Nil(t *testing.T) {
	assert.Nil(t, timeofday.ToTimeString(nil))
}

func TestToTimeString_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	due := time.Date(2025, time.January, 1, 6, 30, 0, 0, time.UTC).In(loc)

	got := timeofday.ToTimeString(&due)

	require.NotNil(t, got)
	assert.Equal(t, "09:30", *got)
}
