package planner

// UsedVenueSet records every venue already placed in the trip. It is owned by
// the caller building one itinerary and is not safe for concurrent use; days
// must be scheduled one after another.
type UsedVenueSet struct {
	ids map[string]struct{}
}

func NewUsedVenueSet() *UsedVenueSet {
	return &UsedVenueSet{ids: make(map[string]struct{})}
}

func (s *UsedVenueSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *UsedVenueSet) Mark(id string) {
	s.ids[id] = struct{}{}
}

// Claim marks id as used and reports whether it was free before.
func (s *UsedVenueSet) Claim(id string) bool {
	if s.Has(id) {
		return false
	}
	s.Mark(id)
	return true
}

func (s *UsedVenueSet) Len() int {
	return len(s.ids)
}
