package db_models

import (
	"time"

	"github.com/google/uuid"
)

type JourneyDay struct {
	BaseModel
	JourneyID uuid.UUID `gorm:"type:uuid;index"`
	DayNumber int
	Date      time.Time
	Weekday   string

	Activities []JourneyActivity `gorm:"constraint:OnDelete:CASCADE"`
}

// JourneyActivity is one scheduled stop. Position keeps the route order.
type JourneyActivity struct {
	BaseModel
	JourneyDayID    uuid.UUID `gorm:"type:uuid;index"`
	Position        int
	Slot            string
	VenueID         string
	Name            string
	Category        string
	StartTime       string
	EndTime         string
	StartHour       float64
	EndHour         float64
	DurationMinutes int
	OpeningHours    string
	Latitude        float64
	Longitude       float64
	Address         string
	Fallback        bool
}
