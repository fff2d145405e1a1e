package services

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"tripgen/internal/models/response_models"
	"tripgen/internal/planner"
	"tripgen/pkg/metrics"
	"tripgen/pkg/utils"
)

// Meal searches always run, ahead of the interest categories.
var mealQueries = []string{"breakfast", "lunch", "dinner"}

type ItineraryServiceInterface interface {
	// Generate builds an itinerary for userInput. A zero startDate means today.
	// start, when set, anchors the route of any day without a breakfast stop.
	Generate(ctx context.Context, userInput string, startDate time.Time, start *planner.MatrixPoint) (*response_models.ItineraryResponse, error)
}

type ItineraryOptions struct {
	Defaults          PreferenceDefaults
	SearchLimit       int
	SearchConcurrency int
}

type ItineraryService struct {
	extractor PreferenceExtractor
	searcher  PlacesSearcher
	assembler *planner.Assembler
	opts      ItineraryOptions
}

func NewItineraryService(
	extractor PreferenceExtractor,
	searcher PlacesSearcher,
	assembler *planner.Assembler,
	opts ItineraryOptions,
) ItineraryServiceInterface {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 20
	}
	if opts.SearchConcurrency <= 0 {
		opts.SearchConcurrency = 4
	}
	return &ItineraryService{
		extractor: extractor,
		searcher:  searcher,
		assembler: assembler,
		opts:      opts,
	}
}

func (s *ItineraryService) Generate(ctx context.Context, userInput string, startDate time.Time, start *planner.MatrixPoint) (*response_models.ItineraryResponse, error) {
	started := time.Now()
	defer func() { metrics.GenerationSeconds.Observe(time.Since(started).Seconds()) }()

	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		metrics.Generations.WithLabelValues("invalid").Inc()
		return nil, utils.ErrInvalidInput
	}

	prefs, err := s.extractor.Extract(ctx, userInput)
	if err != nil {
		log.Printf("Preference extraction failed, using defaults: %v", err)
		prefs = s.opts.Defaults.DefaultPreferences()
	}
	prefs = NormalizePreferences(prefs, s.opts.Defaults)

	venues, err := s.searchAll(ctx, prefs)
	if err != nil {
		metrics.Generations.WithLabelValues("no_venues").Inc()
		return nil, err
	}

	classified := planner.ClassifyAll(venues)
	itinerary := s.assembler.Build(planner.TripRequest{
		Preferences: prefs,
		Venues:      classified,
		StartDate:   startDate,
		Start:       start,
	})

	metrics.Generations.WithLabelValues("ok").Inc()
	log.Printf("Generated %d-day itinerary for %q from %d venues", len(itinerary.Days), prefs.Location, len(classified))

	resp := &response_models.ItineraryResponse{
		Preferences:      itinerary.Preferences,
		Itinerary:        itinerary.Days,
		VenuesConsidered: len(classified),
	}
	if len(itinerary.Days) > 0 {
		resp.StartDate = itinerary.Days[0].Date
	}
	return resp, nil
}

// searchQueries lists the meal queries followed by each interest category
// that is not itself a meal.
func searchQueries(categories []string) []string {
	queries := append([]string(nil), mealQueries...)
	for _, c := range categories {
		isMeal := false
		for _, m := range mealQueries {
			if strings.EqualFold(c, m) {
				isMeal = true
				break
			}
		}
		if !isMeal {
			queries = append(queries, c)
		}
	}
	return queries
}

// searchAll runs every query concurrently and merges results in query order,
// dropping repeated venue ids. A failed query contributes nothing; only a
// failure of every query is an error.
func (s *ItineraryService) searchAll(ctx context.Context, prefs planner.Preferences) ([]planner.Venue, error) {
	queries := searchQueries(prefs.Categories)
	results := make([][]planner.Venue, len(queries))
	failed := make([]bool, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.SearchConcurrency)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			venues, err := s.searcher.Search(gctx, PlaceQuery{Query: q, Near: prefs.Location, Limit: s.opts.SearchLimit})
			if err != nil {
				log.Printf("Places search %q near %q failed: %v", q, prefs.Location, err)
				metrics.PlaceSearches.WithLabelValues("error").Inc()
				failed[i] = true
				return nil
			}
			metrics.PlaceSearches.WithLabelValues("ok").Inc()
			results[i] = venues
			return nil
		})
	}
	_ = g.Wait()

	allFailed := true
	for _, f := range failed {
		if !f {
			allFailed = false
			break
		}
	}
	if allFailed {
		return nil, utils.ErrNoVenuesAvailable
	}

	seen := make(map[string]bool)
	var merged []planner.Venue
	for _, venues := range results {
		for _, v := range venues {
			if v.ID == "" || seen[v.ID] {
				continue
			}
			seen[v.ID] = true
			merged = append(merged, v)
		}
	}
	return merged, nil
}
