package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMillis(t *testing.T, value string) int64 {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	require.NoError(t, err)
	return parsed.UnixMilli()
}

func TestWeekRangeStartsOnMonday(t *testing.T) {
	tests := []struct {
		name      string
		day       string
		wantStart string
	}{
		{"wednesday", "2026-03-04", "2026-03-02"},
		{"monday maps to itself", "2026-03-02", "2026-03-02"},
		{"sunday belongs to the preceding monday", "2026-03-08", "2026-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := time.ParseInLocation("2006-01-02", tt.day, time.UTC)
			require.NoError(t, err)

			start, end := WeekRange(day)
			assert.Equal(t, tt.wantStart, start.Format("2006-01-02"))
			assert.Equal(t, time.Monday, start.Weekday())
			assert.Equal(t, 7*24*time.Hour, end.Sub(start))
		})
	}
}

func TestMonthGridPadsToFullWeeks(t *testing.T) {
	// June 2026 starts on a Monday and ends on a Tuesday.
	weeks := MonthGrid(2026, time.June, time.UTC)
	require.Len(t, weeks, 5)

	for _, week := range weeks {
		require.Len(t, week, 7)
		assert.Equal(t, time.Monday, week[0].Weekday())
		assert.Equal(t, time.Sunday, week[6].Weekday())
	}

	// No leading padding, trailing cells come from July.
	assert.Equal(t, "2026-06-01", weeks[0][0].Format("2006-01-02"))
	assert.Equal(t, "2026-07-05", weeks[4][6].Format("2006-01-02"))
}

func TestMonthGridLeadingPadding(t *testing.T) {
	// August 2026 starts on a Saturday: five days of July lead the grid.
	weeks := MonthGrid(2026, time.August, time.UTC)
	require.NotEmpty(t, weeks)

	assert.Equal(t, "2026-07-27", weeks[0][0].Format("2006-01-02"))
	assert.Equal(t, "2026-08-01", weeks[0][5].Format("2006-01-02"))

	last := weeks[len(weeks)-1]
	assert.Equal(t, "2026-09-06", last[6].Format("2006-01-02"))
}

func TestDayAndMonthBounds(t *testing.T) {
	at := time.Date(2026, time.March, 15, 17, 30, 0, 0, time.UTC)

	dayStart, dayEnd := DayBounds(at)
	assert.Equal(t, "2026-03-15 00:00:00", dayStart.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "2026-03-16 00:00:00", dayEnd.Format("2006-01-02 15:04:05"))

	monthStart, monthEnd := MonthBounds(at)
	assert.Equal(t, "2026-03-01", monthStart.Format("2006-01-02"))
	assert.Equal(t, "2026-04-01", monthEnd.Format("2006-01-02"))
}
