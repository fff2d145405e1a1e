package planner

import "fmt"

// Stop is a venue already assigned to a slot for the day.
type Stop struct {
	Venue    ClassifiedVenue
	Slot     SlotType
	Fallback bool
}

// RouteOptimizer orders a day's stops so that activities between meals follow
// a greedy nearest-neighbour path. Meals stay anchored: breakfast first, lunch
// after the first half of the activities, dinner last.
type RouteOptimizer struct {
	matrix DistanceMatrixService
}

func NewRouteOptimizer(matrix DistanceMatrixService) *RouteOptimizer {
	if matrix == nil {
		matrix = NewHaversineMatrix()
	}
	return &RouteOptimizer{matrix: matrix}
}

// Order returns the stops in visiting order. start, when non-nil, is the
// reference location used when the day has no breakfast.
func (o *RouteOptimizer) Order(stops []Stop, start *MatrixPoint) []Stop {
	if len(stops) <= 1 {
		return append([]Stop(nil), stops...)
	}

	var breakfasts, lunches, dinners, activities []Stop
	for _, s := range stops {
		switch s.Slot {
		case SlotBreakfast:
			breakfasts = append(breakfasts, s)
		case SlotLunch:
			lunches = append(lunches, s)
		case SlotDinner:
			dinners = append(dinners, s)
		default:
			activities = append(activities, s)
		}
	}

	points := make([]MatrixPoint, 0, len(stops)+1)
	for _, s := range stops {
		points = append(points, stopPoint(s))
	}
	if start != nil {
		start = &MatrixPoint{ID: fmt.Sprintf("start:%.6f,%.6f", start.Lat, start.Lng), Lat: start.Lat, Lng: start.Lng}
		points = append(points, *start)
	}
	dist := o.matrix.ComputeDistances(points)

	var ref string
	switch {
	case len(breakfasts) > 0:
		ref = breakfasts[len(breakfasts)-1].Venue.ID
	case start != nil:
		ref = start.ID
	}

	ordered := make([]Stop, 0, len(stops))
	ordered = append(ordered, breakfasts...)

	if len(lunches) == 0 {
		route, _ := nearestNeighbor(activities, ref, len(activities), dist)
		ordered = append(ordered, route...)
		return append(ordered, dinners...)
	}

	firstHalf := (len(activities) + 1) / 2
	morning, rest := nearestNeighbor(activities, ref, firstHalf, dist)
	ordered = append(ordered, morning...)
	ordered = append(ordered, lunches...)

	afternoon, _ := nearestNeighbor(rest, lunches[len(lunches)-1].Venue.ID, len(rest), dist)
	ordered = append(ordered, afternoon...)
	return append(ordered, dinners...)
}

// nearestNeighbor repeatedly picks the unvisited stop closest to the current
// reference, count times. An empty ref starts from the first candidate.
func nearestNeighbor(candidates []Stop, ref string, count int, dist DistanceMatrix) (picked, remaining []Stop) {
	remaining = append([]Stop(nil), candidates...)
	for len(picked) < count && len(remaining) > 0 {
		best := 0
		if ref != "" {
			bestKm := dist.Between(ref, remaining[0].Venue.ID)
			for i := 1; i < len(remaining); i++ {
				if d := dist.Between(ref, remaining[i].Venue.ID); d < bestKm {
					best, bestKm = i, d
				}
			}
		}
		next := remaining[best]
		picked = append(picked, next)
		remaining = append(remaining[:best], remaining[best+1:]...)
		ref = next.Venue.ID
	}
	return picked, remaining
}

func stopPoint(s Stop) MatrixPoint {
	return MatrixPoint{ID: s.Venue.ID, Lat: s.Venue.Latitude, Lng: s.Venue.Longitude}
}
