package extractor_fx

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/fx"
	"tripgen/internal/infra"
	"tripgen/internal/services"
)

var Module = fx.Provide(ProvidePreferenceExtractor, ProvidePreferenceDefaults)

// ProvidePreferenceExtractor picks the extractor named by EXTRACTOR_PROVIDER.
func ProvidePreferenceExtractor(lc fx.Lifecycle, cfg *infra.Config) (services.PreferenceExtractor, error) {
	switch cfg.ExtractorProvider {
	case "openai":
		log.Printf("Initializing openai preference extractor with model: %s", cfg.OpenAIModel)
		return services.NewOpenAIExtractor(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case "gemini":
		log.Printf("Initializing gemini preference extractor with model: %s", cfg.GeminiModel)
		ex, err := services.NewGeminiExtractor(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return ex.Close() },
		})
		return ex, nil
	case "keyword":
		log.Println("Initializing keyword preference extractor")
		return services.NewKeywordExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported extractor provider: %s. Use 'openai', 'gemini' or 'keyword'", cfg.ExtractorProvider)
	}
}

func ProvidePreferenceDefaults(cfg *infra.Config) services.PreferenceDefaults {
	return services.PreferenceDefaults{
		Categories: cfg.Planner.DefaultCategories,
		Location:   cfg.Planner.DefaultLocation,
		Duration:   cfg.Planner.DefaultDuration,
		Pace:       "moderate",
		Budget:     "moderate",
		MaxDays:    cfg.Planner.MaxDays,
	}
}
