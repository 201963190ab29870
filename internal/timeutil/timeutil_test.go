package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayBoundsCrossesUTCMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Berlin during summer time.
	instant := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.UTC)
	start, end := DayBounds(instant, loc)

	require.Equal(t, time.Date(2025, time.June, 10, 22, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, time.June, 11, 22, 0, 0, 0, time.UTC), end)
}

func TestWeekStartIsMonday(t *testing.T) {
	loc := time.UTC

	sunday := time.Date(2025, time.June, 15, 14, 0, 0, 0, loc)
	monday := time.Date(2025, time.June, 9, 0, 0, 0, 0, loc)
	require.Equal(t, monday, WeekStart(sunday, loc))
	require.Equal(t, monday, WeekStart(monday.Add(time.Hour), loc))
}

func TestMonthBounds(t *testing.T) {
	loc := time.UTC
	start, end := MonthBounds(time.Date(2025, time.February, 17, 9, 0, 0, 0, loc), loc)
	require.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, loc), start)
	require.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), end)
}

func TestParseLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	parsed, err := ParseLocalDate("2025-01-02", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 2, 0, 0, 0, 0, loc), parsed)

	_, err = ParseLocalDate("02/01/2025", loc)
	require.Error(t, err)
}

func TestSameLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	a := time.Date(2025, time.March, 1, 3, 0, 0, 0, time.UTC)  // Feb 28 local
	b := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC) // Mar 1 local
	require.False(t, SameLocalDay(a, b, loc))
	require.True(t, SameLocalDay(b, b.Add(2*time.Hour), loc))
}
