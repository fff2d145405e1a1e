package places_fx

import (
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripgen/internal/infra"
	"tripgen/internal/repositories"
	"tripgen/internal/services"
	mem "tripgen/pkg/memcache"
)

var Module = fx.Provide(
	providePoisRepo,
	provideEmbeddingRepo,
	provideEmbedder,
	provideSearchCache,
	providePlacesSearcher,
	providePlacesService,
)

func providePoisRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.PoiEmbeddingRepository {
	return repositories.NewPoiEmbeddingRepository(db)
}

// provideEmbedder returns nil without an OpenAI key; the catalogue search
// then skips the similarity fallback.
func provideEmbedder(cfg *infra.Config) services.Embedder {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}
	return services.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
}

func provideSearchCache(client *redis.Client, store mem.TTLStore) services.SearchCache {
	if client != nil {
		log.Println("Places search cache: redis")
		return services.NewRedisSearchCache(client)
	}
	log.Println("Places search cache: in-process")
	return services.NewMemorySearchCache(store)
}

func providePlacesSearcher(
	cfg *infra.Config,
	poiRepo repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	embedder services.Embedder,
	cache services.SearchCache,
) services.PlacesSearcher {
	var searcher services.PlacesSearcher
	switch cfg.PlacesProvider {
	case "postgres":
		searcher = services.NewPOISearcher(poiRepo, embeddingRepo, embedder)
	default:
		searcher = services.NewFoursquareSearcher(cfg.FoursquareAPIKey, cfg.FoursquareBaseURL)
	}
	log.Printf("Places provider: %s", cfg.PlacesProvider)
	return services.NewCachedSearcher(searcher, cache, cfg.Planner.SearchCacheTTL)
}

func providePlacesService(searcher services.PlacesSearcher, cfg *infra.Config) services.PlacesServiceInterface {
	return services.NewPlacesService(searcher, cfg.Planner.SearchLimit)
}
