package planner

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var displayTimeRe = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{2})?\s*(am|pm)?`)

// Classify derives the scheduling view of a venue. It is pure: absent or
// unparseable data always resolves through the default tables.
func Classify(v Venue) ClassifiedVenue {
	openHour, closeHour := deriveHours(v)
	return ClassifiedVenue{
		Venue:            v,
		IsMeal:           isMealVenue(v.Categories),
		TypicalOpenHour:  openHour,
		TypicalCloseHour: closeHour,
	}
}

func ClassifyAll(venues []Venue) []ClassifiedVenue {
	out := make([]ClassifiedVenue, 0, len(venues))
	for _, v := range venues {
		out = append(out, Classify(v))
	}
	return out
}

// isMealVenue checks every label, not only the primary one.
func isMealVenue(categories []string) bool {
	for _, c := range categories {
		lower := strings.ToLower(c)
		for _, k := range mealKeywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
	}
	return false
}

func deriveHours(v Venue) (float64, float64) {
	primary := v.PrimaryCategory()

	var displayOpen, displayClose float64
	var hasDisplayOpen, hasDisplayClose bool
	if v.Hours != nil && strings.TrimSpace(v.Hours.Display) != "" {
		displayOpen, hasDisplayOpen, displayClose, hasDisplayClose = parseDisplayHours(v.Hours.Display)
	}

	openHour, ok := averageRegular(v.Hours, false)
	if !ok {
		if hasDisplayOpen {
			openHour = displayOpen
		} else {
			openHour = lookupHour(openHourRules, primary, defaultOpenHour)
		}
	}

	closeHour, ok := averageRegular(v.Hours, true)
	if !ok {
		if hasDisplayClose {
			closeHour = displayClose
		} else {
			closeHour = lookupHour(closeHourRules, primary, defaultCloseHour)
		}
	}
	return openHour, closeHour
}

// averageRegular averages the open (or close) time over all weekly entries
// and rounds to the nearest hour.
func averageRegular(h *Hours, closing bool) (float64, bool) {
	if h == nil || len(h.Regular) == 0 {
		return 0, false
	}
	var sum float64
	var n int
	for _, e := range h.Regular {
		raw := e.Open
		if closing {
			raw = e.Close
		}
		hour, ok := parseClock(raw, closing)
		if !ok {
			continue
		}
		sum += hour
		n++
	}
	if n == 0 {
		return 0, false
	}
	return math.Round(sum / float64(n)), true
}

// parseClock reads "HH:MM" or "HHMM". A leading "+" marks a next-day time.
// Closing times of midnight are reported as 24.
func parseClock(raw string, closing bool) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	nextDay := strings.HasPrefix(s, "+")
	s = strings.TrimPrefix(s, "+")
	s = strings.ReplaceAll(s, ":", "")
	if len(s) < 3 || len(s) > 4 {
		return 0, false
	}
	hh, err := strconv.Atoi(s[:len(s)-2])
	if err != nil {
		return 0, false
	}
	mm, err := strconv.Atoi(s[len(s)-2:])
	if err != nil || hh < 0 || hh > 24 || mm < 0 || mm > 59 {
		return 0, false
	}
	hour := float64(hh) + float64(mm)/60
	if closing && (nextDay || hour == 0) {
		hour += 24
	}
	return hour, true
}

func parseDisplayHours(display string) (openHour float64, hasOpen bool, closeHour float64, hasClose bool) {
	lower := strings.ToLower(display)
	if strings.Contains(lower, "24 hours") || strings.Contains(lower, "24/7") {
		return 0, true, 24, true
	}

	var hours []float64
	for _, m := range displayTimeRe.FindAllStringSubmatch(display, -1) {
		hour, ok := displayTokenHour(m[1], m[2], m[3])
		if !ok {
			continue
		}
		hours = append(hours, hour)
		if len(hours) == 2 {
			break
		}
	}
	if len(hours) > 0 {
		openHour, hasOpen = hours[0], true
	}
	if len(hours) > 1 {
		closeHour, hasClose = hours[1], true
		if closeHour == 0 {
			closeHour = 24
		}
	}
	return openHour, hasOpen, closeHour, hasClose
}

func displayTokenHour(hh, mm, meridiem string) (float64, bool) {
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m := 0
	if mm != "" {
		if m, err = strconv.Atoi(mm); err != nil {
			return 0, false
		}
	}
	switch strings.ToLower(meridiem) {
	case "pm":
		if h < 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}
	if h > 24 || m > 59 {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

// providerDay translates time.Weekday (0=Sunday) to the provider's
// 1=Monday..7=Sunday numbering.
func providerDay(w time.Weekday) int {
	if w == time.Sunday {
		return 7
	}
	return int(w)
}

// IsAvailable reports whether the venue can be visited on the given weekday.
func IsAvailable(v ClassifiedVenue, w time.Weekday) bool {
	if v.Hours != nil && len(v.Hours.Regular) > 0 {
		day := providerDay(w)
		found := false
		for _, e := range v.Hours.Regular {
			if e.Day != day {
				continue
			}
			found = true
			if strings.TrimSpace(e.Open) != "" || strings.TrimSpace(e.Close) != "" {
				return true
			}
		}
		if found {
			return false
		}
	}

	primary := strings.ToLower(v.PrimaryCategory())
	for _, r := range closedDaysRules {
		if !r.match(primary) {
			continue
		}
		for _, d := range r.closed {
			if int(w) == d {
				return false
			}
		}
		return true
	}
	return true
}

// OpeningHoursLabel renders the typical opening window for display.
func OpeningHoursLabel(v ClassifiedVenue) string {
	return FormatHour(v.TypicalOpenHour) + " - " + FormatHour(v.TypicalCloseHour)
}
