package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"tripgen/internal/models/db_models"
	"tripgen/internal/planner"
	"tripgen/internal/repositories"
	"tripgen/pkg/utils"
)

// Meal queries are phrased as occasions; the catalogue stores categories.
var mealSearchTerms = map[string][]string{
	"breakfast": {"breakfast", "brunch", "bakery", "cafe", "coffee"},
	"lunch":     {"restaurant", "bistro", "cafe", "deli", "diner"},
	"dinner":    {"restaurant", "bistro", "brasserie", "trattoria", "steakhouse"},
}

// POISearcher answers place queries from the local POI catalogue. When text
// matching finds nothing and an embedder is configured, it falls back to
// vector similarity on POI embeddings.
type POISearcher struct {
	poiRepo       repositories.POIRepository
	embeddingRepo repositories.PoiEmbeddingRepository
	embedder      Embedder
}

func NewPOISearcher(poiRepo repositories.POIRepository, embeddingRepo repositories.PoiEmbeddingRepository, embedder Embedder) *POISearcher {
	return &POISearcher{poiRepo: poiRepo, embeddingRepo: embeddingRepo, embedder: embedder}
}

func (s *POISearcher) Search(ctx context.Context, q PlaceQuery) ([]planner.Venue, error) {
	terms := searchTerms(q.Query)
	pois, err := s.poiRepo.SearchByTerms(ctx, q.Near, terms, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if len(pois) == 0 && s.embedder != nil && s.embeddingRepo != nil {
		pois, err = s.searchByEmbedding(ctx, q)
		if err != nil {
			log.Printf("Embedding search for %q failed: %v", q.Query, err)
			pois = nil
		}
	}

	venues := make([]planner.Venue, 0, len(pois))
	for _, p := range pois {
		venues = append(venues, poiToVenue(p))
	}
	return venues, nil
}

func (s *POISearcher) searchByEmbedding(ctx context.Context, q PlaceQuery) ([]db_models.POI, error) {
	vector, err := s.embedder.GetEmbedding(ctx, q.Query)
	if err != nil {
		return nil, err
	}
	ids, err := s.embeddingRepo.NearestByVector(ctx, vector, q.Near, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	pois, err := s.poiRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return pois, nil
}

func searchTerms(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if terms, ok := mealSearchTerms[query]; ok {
		return terms
	}
	// "historic sites" should match a "Historic Site" category
	if singular := strings.TrimSuffix(query, "s"); singular != query && len(singular) > 2 {
		return []string{singular}
	}
	return []string{query}
}

func poiToVenue(p db_models.POI) planner.Venue {
	id := p.ExternalID
	if id == "" {
		id = p.ID.String()
	}
	v := planner.Venue{
		ID:         id,
		Name:       p.Name,
		Categories: []string(p.Categories),
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Price:      p.Price,
		Rating:     p.Rating,
		Address:    p.Address,
		Phone:      p.Phone,
		Website:    p.Website,
	}
	if p.HoursDisplay != "" || len(p.Hours) > 0 {
		h := &planner.Hours{Display: p.HoursDisplay}
		for _, e := range p.Hours {
			h.Regular = append(h.Regular, planner.HoursEntry{Day: e.Day, Open: e.Open, Close: e.Close})
		}
		v.Hours = h
	}
	return v
}
