package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Journey is a saved itinerary together with the preferences it was built
// from.
type Journey struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	Title      string
	Prompt     string
	Location   string
	Categories pq.StringArray `gorm:"type:text[]"`
	Pace       string
	Budget     string
	StartDate  time.Time
	EndDate    time.Time

	Days []JourneyDay `gorm:"constraint:OnDelete:CASCADE"`
}
