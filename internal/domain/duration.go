package domain

import (
	"fmt"
)

// FormatClock renders a millisecond duration as a clock string:
// "hh:mm:ss" when at least one hour, "mm:ss" otherwise. Negative
// durations render as zero.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Hours converts a millisecond duration to fractional hours.
func Hours(ms int64) float64 {
	return float64(ms) / (1000 * 60 * 60)
}

// FormatHours renders a millisecond duration as decimal hours, e.g. "1.50 h".
func FormatHours(ms int64) string {
	return fmt.Sprintf("%.2f h", Hours(ms))
}
