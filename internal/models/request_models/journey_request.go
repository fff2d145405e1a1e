package request_models

type CreateJourneyRequest struct {
	Prompt    string    `json:"prompt" binding:"required"`
	StartDate string    `json:"start_date"`
	Title     string    `json:"title"`
	Start     *GeoPoint `json:"start"`
}
