package planner

import (
	"math"
	"time"
)

const (
	dayStartHour   = 8.0
	travelBuffer   = 0.5
	breakfastEarly = 7.0
	breakfastLate  = 9.0
	lunchEarly     = 11.5
	lunchLate      = 15.0
	dinnerEarly    = 18.0
	dinnerLate     = 21.0

	// selection thresholds on a venue's typical open hour
	breakfastOpenBy = 8.0
	lunchOpenBy     = 14.0
	dinnerOpenBy    = dinnerLate

	DefaultActivitiesPerDay = 2
)

// DayInput carries one day's candidates, already filtered to venues open on
// that date.
type DayInput struct {
	Day         int
	Date        time.Time
	Restaurants []ClassifiedVenue
	Activities  []ClassifiedVenue
	// Start is an optional reference location for routing (e.g. the hotel).
	Start *MatrixPoint
}

type Scheduler struct {
	router           *RouteOptimizer
	activitiesPerDay int
}

func NewScheduler(router *RouteOptimizer, activitiesPerDay int) *Scheduler {
	if router == nil {
		router = NewRouteOptimizer(nil)
	}
	if activitiesPerDay <= 0 {
		activitiesPerDay = DefaultActivitiesPerDay
	}
	return &Scheduler{router: router, activitiesPerDay: activitiesPerDay}
}

// ScheduleDay picks breakfast, activities, lunch and dinner, claims each pick
// in used, orders the picks geographically and assigns clock times.
func (s *Scheduler) ScheduleDay(in DayInput, used *UsedVenueSet) DayPlan {
	plan := DayPlan{
		Day:        in.Day,
		Date:       in.Date.Format("2006-01-02"),
		Weekday:    in.Date.Weekday().String(),
		Activities: []ScheduledActivity{},
	}

	stops := s.selectStops(in, used)
	if len(stops) == 0 {
		return plan
	}

	ordered := s.router.Order(stops, in.Start)
	plan.Activities = assignTimes(ordered)
	return plan
}

func (s *Scheduler) selectStops(in DayInput, used *UsedVenueSet) []Stop {
	var stops []Stop

	if v, ok := firstUnused(in.Restaurants, used, func(v ClassifiedVenue) bool {
		return v.TypicalOpenHour <= breakfastOpenBy
	}); ok {
		used.Mark(v.ID)
		stops = append(stops, Stop{Venue: v, Slot: SlotBreakfast})
	} else if v, ok := firstUnused(in.Restaurants, used, nil); ok {
		used.Mark(v.ID)
		stops = append(stops, Stop{Venue: v, Slot: SlotBreakfast, Fallback: true})
	}

	for i := 0; i < s.activitiesPerDay; i++ {
		v, ok := firstUnused(in.Activities, used, nil)
		if !ok {
			break
		}
		used.Mark(v.ID)
		stops = append(stops, Stop{Venue: v, Slot: SlotActivity})
	}

	if v, ok := firstUnused(in.Restaurants, used, func(v ClassifiedVenue) bool {
		return v.TypicalOpenHour <= lunchOpenBy
	}); ok {
		used.Mark(v.ID)
		stops = append(stops, Stop{Venue: v, Slot: SlotLunch})
	}

	if v, ok := firstUnused(in.Restaurants, used, func(v ClassifiedVenue) bool {
		return v.TypicalOpenHour <= dinnerOpenBy
	}); ok {
		used.Mark(v.ID)
		stops = append(stops, Stop{Venue: v, Slot: SlotDinner})
	} else if v, ok := firstUnused(in.Restaurants, used, nil); ok {
		used.Mark(v.ID)
		stops = append(stops, Stop{Venue: v, Slot: SlotDinner, Fallback: true})
	}

	return stops
}

func firstUnused(candidates []ClassifiedVenue, used *UsedVenueSet, accept func(ClassifiedVenue) bool) (ClassifiedVenue, bool) {
	for _, v := range candidates {
		if used.Has(v.ID) {
			continue
		}
		if accept != nil && !accept(v) {
			continue
		}
		return v, true
	}
	return ClassifiedVenue{}, false
}

// assignTimes walks the route with a running cursor. Each slot's window is
// clamped to its cap, then never placed before the cursor, so stops stay in
// chronological order.
func assignTimes(route []Stop) []ScheduledActivity {
	out := make([]ScheduledActivity, 0, len(route))
	cursor := dayStartHour

	for _, st := range route {
		v := st.Venue
		open := v.TypicalOpenHour

		var start float64
		switch st.Slot {
		case SlotBreakfast:
			start = math.Max(breakfastEarly, open)
			if open <= breakfastLate {
				start = math.Min(start, breakfastLate)
			}
		case SlotLunch:
			start = math.Min(math.Max(lunchEarly, open), lunchLate)
		case SlotDinner:
			start = math.Min(math.Max(dinnerEarly, open), dinnerLate)
		default:
			start = open
		}
		start = math.Max(start, cursor)

		minutes := activityDuration(st.Slot, v.PrimaryCategory())
		end := start + float64(minutes)/60

		out = append(out, ScheduledActivity{
			VenueID:         v.ID,
			Name:            v.Name,
			Category:        v.PrimaryCategory(),
			Slot:            st.Slot,
			StartTime:       FormatHour(start),
			EndTime:         FormatHour(end),
			StartHour:       start,
			EndHour:         end,
			DurationMinutes: minutes,
			OpeningHours:    OpeningHoursLabel(v),
			Latitude:        v.Latitude,
			Longitude:       v.Longitude,
			Address:         v.Address,
			Rating:          v.Rating,
			Price:           v.Price,
			Fallback:        st.Fallback,
		})
		cursor = end + travelBuffer
	}
	return out
}
