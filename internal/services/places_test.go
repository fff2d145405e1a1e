package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripgen/internal/models/db_models"
	"tripgen/internal/planner"
	mem "tripgen/pkg/memcache"
	"tripgen/pkg/utils"
)

const fsqBody = `{"results":[
 {"fsq_id":"4b1","name":"Du Pain et des Idées","categories":[{"name":"Bakery"},{"name":"Café"}],
  "geocodes":{"main":{"latitude":48.8718,"longitude":2.3631}},
  "location":{"formatted_address":"34 Rue Yves Toudic, Paris"},
  "hours":{"display":"Mon-Fri 7:00-20:00","regular":[{"day":1,"open":"0700","close":"2000"},{"day":2,"open":"0700","close":"2000"}]},
  "price":2,"rating":9.1,"tel":"+33 1 42 40 44 52"},
 {"name":"no id, dropped"}
]}`

func TestFoursquareSearcher(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/search", r.URL.Path)
		assert.Equal(t, "fsq-key", r.Header.Get("Authorization"))
		assert.Equal(t, "breakfast", r.URL.Query().Get("query"))
		assert.Equal(t, "Paris, France", r.URL.Query().Get("near"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Contains(t, r.URL.Query().Get("fields"), "hours")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fsqBody))
	}))
	defer srv.Close()

	s := NewFoursquareSearcher("fsq-key", srv.URL+"/")
	venues, err := s.Search(context.Background(), PlaceQuery{Query: "breakfast", Near: "Paris, France", Limit: 5})
	require.NoError(t, err)
	require.Len(t, venues, 1)

	v := venues[0]
	assert.Equal(t, "4b1", v.ID)
	assert.Equal(t, []string{"Bakery", "Café"}, v.Categories)
	assert.InDelta(t, 48.8718, v.Latitude, 1e-9)
	assert.Equal(t, "34 Rue Yves Toudic, Paris", v.Address)
	require.NotNil(t, v.Hours)
	assert.Len(t, v.Hours.Regular, 2)
	assert.Equal(t, "0700", v.Hours.Regular[0].Open)
	require.NotNil(t, v.Price)
	assert.Equal(t, 2, *v.Price)

	cv := planner.Classify(v)
	assert.True(t, cv.IsMeal)
	assert.InDelta(t, 7.0, cv.TypicalOpenHour, 1e-9)
}

func TestFoursquareSearcherBadStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewFoursquareSearcher("k", srv.URL).Search(context.Background(), PlaceQuery{Query: "museums", Near: "Rome"})
	assert.ErrorIs(t, err, utils.ErrPlacesProvider)
}

// countingSearcher answers every query from a fixed table.
type countingSearcher struct {
	mu      sync.Mutex
	results map[string][]planner.Venue
	errs    map[string]error
	calls   []string
}

func (c *countingSearcher) Search(_ context.Context, q PlaceQuery) ([]planner.Venue, error) {
	c.mu.Lock()
	c.calls = append(c.calls, q.Query)
	c.mu.Unlock()
	if err := c.errs[q.Query]; err != nil {
		return nil, err
	}
	return c.results[q.Query], nil
}

func (c *countingSearcher) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func TestCachedSearcher(t *testing.T) {
	t.Parallel()
	upstream := &countingSearcher{results: map[string][]planner.Venue{
		"museums": {{ID: "m1", Name: "Louvre", Categories: []string{"Art Museum"}}},
	}}
	s := NewCachedSearcher(upstream, NewMemorySearchCache(mem.NewStore()), time.Hour)

	first, err := s.Search(context.Background(), PlaceQuery{Query: "museums", Near: "Paris", Limit: 10})
	require.NoError(t, err)
	second, err := s.Search(context.Background(), PlaceQuery{Query: " Museums ", Near: "paris", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.callCount())

	_, err = s.Search(context.Background(), PlaceQuery{Query: "museums", Near: "Paris", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.callCount(), "limit is part of the key")
}

func TestCachedSearcherDoesNotCacheErrors(t *testing.T) {
	t.Parallel()
	upstream := &countingSearcher{errs: map[string]error{"parks": utils.ErrPlacesProvider}}
	s := NewCachedSearcher(upstream, NewMemorySearchCache(mem.NewStore()), time.Hour)

	for i := 0; i < 2; i++ {
		_, err := s.Search(context.Background(), PlaceQuery{Query: "parks", Near: "Rome"})
		assert.ErrorIs(t, err, utils.ErrPlacesProvider)
	}
	assert.Equal(t, 2, upstream.callCount())
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestCachedSearcherSurvivesBrokenCache(t *testing.T) {
	t.Parallel()
	upstream := &countingSearcher{results: map[string][]planner.Venue{"parks": {{ID: "p1"}}}}
	s := NewCachedSearcher(upstream, brokenCache{}, time.Hour)

	venues, err := s.Search(context.Background(), PlaceQuery{Query: "parks", Near: "Rome"})
	require.NoError(t, err)
	assert.Len(t, venues, 1)
}

func TestPlacesServiceSearchVenues(t *testing.T) {
	t.Parallel()
	upstream := &countingSearcher{results: map[string][]planner.Venue{
		"museums": {{ID: "m1", Name: "Uffizi", Categories: []string{"Museum"}}},
	}}
	svc := NewPlacesService(upstream, 20)

	out, err := svc.SearchVenues(context.Background(), PlaceQuery{Query: "museums", Near: "Florence", Limit: 500})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Museum", out[0].Category)
	assert.False(t, out[0].IsMeal)
	assert.InDelta(t, 10.0, out[0].TypicalOpenHour, 1e-9)
	assert.InDelta(t, 17.0, out[0].TypicalCloseHour, 1e-9)

	_, err = svc.SearchVenues(context.Background(), PlaceQuery{Query: " ", Near: "Florence"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestSearchTerms(t *testing.T) {
	t.Parallel()
	assert.Equal(t, mealSearchTerms["lunch"], searchTerms(" Lunch "))
	assert.Equal(t, []string{"historic site"}, searchTerms("historic sites"))
	assert.Equal(t, []string{"zoo"}, searchTerms("zoos"))
	assert.Equal(t, []string{"spa"}, searchTerms("spa"))
}

type fakePOIRepo struct {
	byTerms []db_models.POI
	byIDs   []db_models.POI
	gotIDs  []uuid.UUID
}

func (f *fakePOIRepo) SearchByTerms(_ context.Context, _ string, _ []string, _ int) ([]db_models.POI, error) {
	return f.byTerms, nil
}

func (f *fakePOIRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]db_models.POI, error) {
	f.gotIDs = ids
	return f.byIDs, nil
}

func TestPOISearcherMapsRows(t *testing.T) {
	t.Parallel()
	rating := 8.7
	id := uuid.New()
	repo := &fakePOIRepo{byTerms: []db_models.POI{
		{
			BaseModel:    db_models.BaseModel{ID: id},
			Name:         "Villa Borghese",
			Categories:   pq.StringArray{"Park"},
			Latitude:     41.91,
			Longitude:    12.49,
			HoursDisplay: "Open 24 hours",
			Rating:       &rating,
			Hours:        []db_models.POIHours{{Day: 1, Open: "0600", Close: "2100"}},
		},
		{ExternalID: "fsq-1", Name: "Bar del Fico", Categories: pq.StringArray{"Wine Bar"}},
	}}
	s := NewPOISearcher(repo, nil, nil)

	venues, err := s.Search(context.Background(), PlaceQuery{Query: "parks", Near: "Rome, Italy", Limit: 10})
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, id.String(), venues[0].ID)
	require.NotNil(t, venues[0].Hours)
	assert.Equal(t, "Open 24 hours", venues[0].Hours.Display)
	assert.Equal(t, []planner.HoursEntry{{Day: 1, Open: "0600", Close: "2100"}}, venues[0].Hours.Regular)
	assert.Equal(t, "fsq-1", venues[1].ID)
	assert.Nil(t, venues[1].Hours)
}
