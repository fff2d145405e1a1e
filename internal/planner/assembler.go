package planner

import (
	"log"
	"time"
)

const (
	minClusterRestaurants = 3
	minClusterActivities  = 2
)

// TripRequest is everything the assembler needs for one itinerary.
type TripRequest struct {
	Preferences Preferences
	Venues      []ClassifiedVenue
	// StartDate is the calendar date of day 1; zero means today.
	StartDate time.Time
	Start     *MatrixPoint
}

// Assembler drives partitioning and per-day scheduling for a whole trip.
type Assembler struct {
	partitioner *Partitioner
	scheduler   *Scheduler
	now         func() time.Time
}

func NewAssembler(partitioner *Partitioner, scheduler *Scheduler) *Assembler {
	if partitioner == nil {
		partitioner = NewPartitioner()
	}
	if scheduler == nil {
		scheduler = NewScheduler(nil, DefaultActivitiesPerDay)
	}
	return &Assembler{partitioner: partitioner, scheduler: scheduler, now: time.Now}
}

// Build returns an itinerary with exactly Preferences.Duration days. Days that
// cannot be filled are returned with no activities.
func (a *Assembler) Build(req TripRequest) Itinerary {
	days := req.Preferences.Duration
	if days < 1 {
		days = 1
	}

	start := req.StartDate
	if start.IsZero() {
		start = a.now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	var allRestaurants, allActivities []ClassifiedVenue
	for _, v := range req.Venues {
		if v.IsMeal {
			allRestaurants = append(allRestaurants, v)
		} else {
			allActivities = append(allActivities, v)
		}
	}

	clustersByDay := a.partitioner.Split(req.Venues, days)
	used := NewUsedVenueSet()

	plans := make([]DayPlan, 0, days)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d)
		weekday := date.Weekday()

		var restaurants, activities []ClassifiedVenue
		for _, v := range clustersByDay[d] {
			if !IsAvailable(v, weekday) {
				continue
			}
			if v.IsMeal {
				restaurants = append(restaurants, v)
			} else {
				activities = append(activities, v)
			}
		}

		if len(restaurants) < minClusterRestaurants || len(activities) < minClusterActivities {
			restaurants = availableOn(allRestaurants, weekday)
			activities = availableOn(allActivities, weekday)
		}

		plan := a.scheduler.ScheduleDay(DayInput{
			Day:         d + 1,
			Date:        date,
			Restaurants: restaurants,
			Activities:  activities,
			Start:       req.Start,
		}, used)
		if len(plan.Activities) == 0 {
			log.Printf("Day %d (%s) has no schedulable venues", plan.Day, plan.Weekday)
		}
		plans = append(plans, plan)
	}

	prefs := req.Preferences
	prefs.Duration = days
	return Itinerary{Preferences: prefs, Days: plans}
}

func availableOn(venues []ClassifiedVenue, w time.Weekday) []ClassifiedVenue {
	out := make([]ClassifiedVenue, 0, len(venues))
	for _, v := range venues {
		if IsAvailable(v, w) {
			out = append(out, v)
		}
	}
	return out
}
