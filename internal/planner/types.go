package planner

// HoursEntry is one weekly opening window as reported by the places provider.
// Day follows the provider convention: 1=Monday .. 7=Sunday.
type HoursEntry struct {
	Day   int    `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Hours is the raw hours payload of a venue. Either part may be empty.
type Hours struct {
	Display string       `json:"display,omitempty"`
	Regular []HoursEntry `json:"regular,omitempty"`
}

// Venue is a place record returned by a places provider. The planner never
// mutates it.
type Venue struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Hours      *Hours   `json:"hours,omitempty"`
	Price      *int     `json:"price,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Address    string   `json:"address,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Website    string   `json:"website,omitempty"`
}

// PrimaryCategory returns the first category label or "".
func (v Venue) PrimaryCategory() string {
	if len(v.Categories) == 0 {
		return ""
	}
	return v.Categories[0]
}

// ClassifiedVenue wraps a Venue with the data the scheduler works from.
type ClassifiedVenue struct {
	Venue
	IsMeal           bool    `json:"is_meal"`
	TypicalOpenHour  float64 `json:"typical_open_hour"`
	TypicalCloseHour float64 `json:"typical_close_hour"`
}

type SlotType string

const (
	SlotBreakfast SlotType = "breakfast"
	SlotActivity  SlotType = "activity"
	SlotLunch     SlotType = "lunch"
	SlotDinner    SlotType = "dinner"
)

// ScheduledActivity is one stop of a day plan.
type ScheduledActivity struct {
	VenueID         string   `json:"venue_id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Slot            SlotType `json:"slot"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	StartHour       float64  `json:"start_hour"`
	EndHour         float64  `json:"end_hour"`
	DurationMinutes int      `json:"duration_minutes"`
	OpeningHours    string   `json:"opening_hours"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Address         string   `json:"address,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Price           *int     `json:"price,omitempty"`
	// Fallback is set when the venue was picked by a relaxed selection rule
	// and its start may not respect its typical opening hour.
	Fallback bool `json:"fallback,omitempty"`
}

type DayPlan struct {
	Day        int                 `json:"day"`
	Date       string              `json:"date"`
	Weekday    string              `json:"weekday"`
	Activities []ScheduledActivity `json:"activities"`
}

// Preferences is the structured form of a free-text travel request.
type Preferences struct {
	Categories []string `json:"categories"`
	Location   string   `json:"location"`
	Duration   int      `json:"duration"`
	Pace       string   `json:"pace"`
	Budget     string   `json:"budget"`
}

type Itinerary struct {
	Preferences Preferences `json:"preferences"`
	Days        []DayPlan   `json:"itinerary"`
}
