package response_models

import "tripgen/internal/planner"

// Venue is a classified place as returned by GET /places/search.
type Venue struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Categories       []string `json:"categories"`
	IsMeal           bool     `json:"is_meal"`
	TypicalOpenHour  float64  `json:"typical_open_hour"`
	TypicalCloseHour float64  `json:"typical_close_hour"`
	OpeningHours     string   `json:"opening_hours"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Address          string   `json:"address,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	Price            *int     `json:"price,omitempty"`
}

func NewVenue(v planner.ClassifiedVenue) Venue {
	return Venue{
		ID:               v.ID,
		Name:             v.Name,
		Category:         v.PrimaryCategory(),
		Categories:       v.Categories,
		IsMeal:           v.IsMeal,
		TypicalOpenHour:  v.TypicalOpenHour,
		TypicalCloseHour: v.TypicalCloseHour,
		OpeningHours:     planner.OpeningHoursLabel(v),
		Latitude:         v.Latitude,
		Longitude:        v.Longitude,
		Address:          v.Address,
		Rating:           v.Rating,
		Price:            v.Price,
	}
}

// ItineraryResponse is the payload of a generated itinerary.
type ItineraryResponse struct {
	Preferences      planner.Preferences `json:"preferences"`
	StartDate        string              `json:"start_date"`
	Itinerary        []planner.DayPlan   `json:"itinerary"`
	VenuesConsidered int                 `json:"venues_considered"`
}
