package response_models

type JourneyResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Location     string `json:"location"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
}
