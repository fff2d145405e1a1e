package utils

import (
	"fmt"
	"log"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// LoadLocationOr resolves an IANA zone name, falling back to UTC.
func LoadLocationOr(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown time zone %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// ParseTripDate parses a YYYY-MM-DD date at midnight in loc. An empty string
// yields the zero time.
func ParseTripDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidStartDate, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
