package response_models

import (
	"github.com/google/uuid"
	"tripgen/internal/planner"
)

// Top-level payload returned for a stored journey
type JourneyDetailResponse struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Prompt       string              `json:"prompt"`
	Preferences  planner.Preferences `json:"preferences"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	DurationDays int                 `json:"duration_days"`

	// Quick stats
	TotalActivities int `json:"total_activities"`

	Days []planner.DayPlan `json:"itinerary"`
}
