package request_models

import "tripgen/internal/planner"

// GenerateItineraryRequest is the body of POST /itineraries/generate.
type GenerateItineraryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	// StartDate is YYYY-MM-DD; empty means today.
	StartDate string `json:"start_date"`
	// Start is where each day begins when no breakfast is scheduled, e.g. the hotel.
	Start *GeoPoint `json:"start"`
}

type GeoPoint struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// MatrixPoint converts g for routing; nil stays nil.
func (g *GeoPoint) MatrixPoint() *planner.MatrixPoint {
	if g == nil {
		return nil
	}
	return &planner.MatrixPoint{Lat: g.Lat, Lng: g.Lng}
}

type PlacesSearchQuery struct {
	Query string `form:"query" binding:"required"`
	Near  string `form:"near" binding:"required"`
	Limit int    `form:"limit"`
}
