package planner

import (
	"fmt"
	"math"
)

// EndOfDay is the close-hour sentinel used for venues open past midnight.
const EndOfDay = 24.0

// FormatHour renders hours-since-midnight as a 12-hour clock ("1:30 PM").
// Exactly 24 is the end-of-day marker and renders as "Midnight"; later values
// wrap onto the next day's clock.
func FormatHour(hour float64) string {
	if hour == EndOfDay {
		return "Midnight"
	}
	totalMinutes := int(math.Round(hour * 60))
	totalMinutes = ((totalMinutes % (24 * 60)) + 24*60) % (24 * 60)
	h := totalMinutes / 60
	m := totalMinutes % 60

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}
