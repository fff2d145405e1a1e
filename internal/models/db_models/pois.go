package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// POI is a venue in the local catalogue, used when the places provider is
// Postgres. Categories keep the provider's ordering; the first is primary.
type POI struct {
	BaseModel
	ExternalID   string         `gorm:"uniqueIndex"`
	Name         string         `gorm:"not null"`
	City         string         `gorm:"index"`
	Categories   pq.StringArray `gorm:"type:text[]"`
	Latitude     float64
	Longitude    float64
	Address      string
	Phone        string
	Website      string
	HoursDisplay string
	Price        *int
	Rating       *float64

	Hours []POIHours `gorm:"foreignKey:POIID"`
}

// POIHours is one weekly window, Day 1=Monday .. 7=Sunday. Empty Open and
// Close mark the venue closed that day.
type POIHours struct {
	ID    uint      `gorm:"primaryKey"`
	POIID uuid.UUID `gorm:"type:uuid;index"`
	Day   int
	Open  string
	Close string
}

func (POIHours) TableName() string { return "poi_hours" }
