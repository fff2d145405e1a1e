package itinerary_fx

import (
	"go.uber.org/fx"
	"tripgen/internal/infra"
	"tripgen/internal/planner"
	"tripgen/internal/services"
)

var Module = fx.Provide(provideItineraryService)

func provideItineraryService(
	extractor services.PreferenceExtractor,
	searcher services.PlacesSearcher,
	assembler *planner.Assembler,
	defaults services.PreferenceDefaults,
	cfg *infra.Config,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(extractor, searcher, assembler, services.ItineraryOptions{
		Defaults:          defaults,
		SearchLimit:       cfg.Planner.SearchLimit,
		SearchConcurrency: cfg.Planner.SearchConcurrency,
	})
}
