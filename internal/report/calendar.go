package report

import (
	"time"
)

// WeekRange returns the Monday-first week containing t: the start of its
// Monday and the start of the following Monday, in t's location.
func WeekRange(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())

	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(midnight.Weekday()) + 6) % 7
	start := midnight.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// MonthGrid returns the calendar weeks covering a month, Monday-first.
// Leading and trailing cells are filled with days from the adjacent months
// so every week has seven days.
func MonthGrid(year int, month time.Month, loc *time.Location) [][]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	gridStart, _ := WeekRange(first)

	lastDay := first.AddDate(0, 1, -1)
	_, gridEnd := WeekRange(lastDay)

	var weeks [][]time.Time
	for day := gridStart; day.Before(gridEnd); {
		week := make([]time.Time, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, day)
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// DayBounds returns the start of the local day containing t and the start
// of the next day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// MonthBounds returns the start of the month containing t and the start of
// the next month.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
