package services

import (
	"context"
	"log"
	"strings"

	"tripgen/internal/models/response_models"
	"tripgen/internal/planner"
	"tripgen/pkg/utils"
)

// PlaceQuery is one category search against a places provider.
type PlaceQuery struct {
	Query string
	Near  string
	Limit int
}

// PlacesSearcher is the places provider contract. An error means the whole
// query failed; an empty slice is a valid answer.
type PlacesSearcher interface {
	Search(ctx context.Context, q PlaceQuery) ([]planner.Venue, error)
}

type PlacesServiceInterface interface {
	SearchVenues(ctx context.Context, q PlaceQuery) ([]response_models.Venue, error)
}

type PlacesService struct {
	searcher     PlacesSearcher
	defaultLimit int
	maxLimit     int
}

func NewPlacesService(searcher PlacesSearcher, defaultLimit int) PlacesServiceInterface {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &PlacesService{searcher: searcher, defaultLimit: defaultLimit, maxLimit: 50}
}

// SearchVenues runs a single provider query and returns the classified
// results, so the classifier's view of each venue can be inspected.
func (p *PlacesService) SearchVenues(ctx context.Context, q PlaceQuery) ([]response_models.Venue, error) {
	q.Query = strings.TrimSpace(q.Query)
	q.Near = strings.TrimSpace(q.Near)
	if q.Query == "" || q.Near == "" {
		return nil, utils.ErrInvalidInput
	}
	if q.Limit <= 0 {
		q.Limit = p.defaultLimit
	}
	if q.Limit > p.maxLimit {
		q.Limit = p.maxLimit
	}

	venues, err := p.searcher.Search(ctx, q)
	if err != nil {
		log.Printf("Error searching places for %q near %q: %v", q.Query, q.Near, err)
		return nil, err
	}

	out := make([]response_models.Venue, 0, len(venues))
	for _, cv := range planner.ClassifyAll(venues) {
		out = append(out, response_models.NewVenue(cv))
	}
	return out, nil
}
