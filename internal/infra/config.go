package infra

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PlannerTuning holds the knobs that can be overridden from the YAML file
// named by PLANNER_CONFIG.
type PlannerTuning struct {
	SearchLimit       int           `yaml:"search_limit"`
	MaxDays           int           `yaml:"max_days"`
	ActivitiesPerDay  int           `yaml:"activities_per_day"`
	SearchConcurrency int           `yaml:"search_concurrency"`
	SearchCacheTTL    time.Duration `yaml:"search_cache_ttl"`
	RateLimitPerMin   int           `yaml:"rate_limit_per_minute"`
	DefaultLocation   string        `yaml:"default_location"`
	DefaultCategories []string      `yaml:"default_categories"`
	DefaultDuration   int           `yaml:"default_duration"`
	TimeZone          string        `yaml:"time_zone"`
	// PartitionSeed makes day clustering reproducible; zero keeps it random.
	PartitionSeed     int64         `yaml:"partition_seed"`
}

type Config struct {
	Port        string
	PostgresURL string
	RedisURL    string

	// PlacesProvider is "foursquare" or "postgres".
	PlacesProvider    string
	FoursquareAPIKey  string
	FoursquareBaseURL string

	// ExtractorProvider is "openai", "gemini" or "keyword".
	ExtractorProvider string
	OpenAIAPIKey      string
	OpenAIModel       string
	EmbeddingModel    string
	GeminiAPIKey      string
	GeminiModel       string

	Planner PlannerTuning
}

func defaultTuning() PlannerTuning {
	return PlannerTuning{
		SearchLimit:       20,
		MaxDays:           14,
		ActivitiesPerDay:  2,
		SearchConcurrency: 4,
		SearchCacheTTL:    6 * time.Hour,
		RateLimitPerMin:   10,
		DefaultLocation:   "New York, NY",
		DefaultCategories: []string{"museums", "parks", "historic sites"},
		DefaultDuration:   3,
		TimeZone:          "UTC",
	}
}

// LoadConfig reads .env (when present), the process environment and the
// optional YAML overlay, in that order of precedence from lowest to highest
// for tuning values.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		PlacesProvider:    strings.ToLower(getEnvWithDefault("PLACES_PROVIDER", "foursquare")),
		FoursquareAPIKey:  os.Getenv("FOURSQUARE_API_KEY"),
		FoursquareBaseURL: getEnvWithDefault("FOURSQUARE_BASE_URL", "https://api.foursquare.com/v3"),
		ExtractorProvider: strings.ToLower(getEnvWithDefault("EXTRACTOR_PROVIDER", "keyword")),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnvWithDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		Planner:           defaultTuning(),
	}

	cfg.Planner.SearchLimit = getEnvInt("PLACES_SEARCH_LIMIT", cfg.Planner.SearchLimit)
	cfg.Planner.MaxDays = getEnvInt("MAX_TRIP_DAYS", cfg.Planner.MaxDays)
	cfg.Planner.RateLimitPerMin = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.Planner.RateLimitPerMin)
	cfg.Planner.TimeZone = getEnvWithDefault("TRIP_TIME_ZONE", cfg.Planner.TimeZone)
	cfg.Planner.PartitionSeed = getEnvInt64("PARTITION_SEED", cfg.Planner.PartitionSeed)

	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		if err := applyTuningFile(&cfg.Planner, path); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyTuningFile overlays non-zero values from a YAML file.
func applyTuningFile(t *PlannerTuning, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read planner config: %w", err)
	}
	var overlay PlannerTuning
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return fmt.Errorf("parse planner config %s: %w", path, err)
	}

	if overlay.SearchLimit > 0 {
		t.SearchLimit = overlay.SearchLimit
	}
	if overlay.MaxDays > 0 {
		t.MaxDays = overlay.MaxDays
	}
	if overlay.ActivitiesPerDay > 0 {
		t.ActivitiesPerDay = overlay.ActivitiesPerDay
	}
	if overlay.SearchConcurrency > 0 {
		t.SearchConcurrency = overlay.SearchConcurrency
	}
	if overlay.SearchCacheTTL > 0 {
		t.SearchCacheTTL = overlay.SearchCacheTTL
	}
	if overlay.RateLimitPerMin > 0 {
		t.RateLimitPerMin = overlay.RateLimitPerMin
	}
	if overlay.DefaultLocation != "" {
		t.DefaultLocation = overlay.DefaultLocation
	}
	if len(overlay.DefaultCategories) > 0 {
		t.DefaultCategories = overlay.DefaultCategories
	}
	if overlay.DefaultDuration > 0 {
		t.DefaultDuration = overlay.DefaultDuration
	}
	if overlay.TimeZone != "" {
		t.TimeZone = overlay.TimeZone
	}
	if overlay.PartitionSeed != 0 {
		t.PartitionSeed = overlay.PartitionSeed
	}
	return nil
}

func (c *Config) validate() error {
	switch c.PlacesProvider {
	case "foursquare":
		if c.FoursquareAPIKey == "" {
			return fmt.Errorf("FOURSQUARE_API_KEY is required when PLACES_PROVIDER=foursquare")
		}
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when PLACES_PROVIDER=postgres")
		}
	default:
		return fmt.Errorf("unsupported places provider: %s. Use 'foursquare' or 'postgres'", c.PlacesProvider)
	}

	switch c.ExtractorProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when using OpenAI extractor")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when using Gemini extractor")
		}
	case "keyword":
	default:
		return fmt.Errorf("unsupported extractor provider: %s. Use 'openai', 'gemini' or 'keyword'", c.ExtractorProvider)
	}

	if c.Planner.DefaultDuration > c.Planner.MaxDays {
		c.Planner.DefaultDuration = c.Planner.MaxDays
	}
	return nil
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q", key, raw)
		return defaultValue
	}
	return n
}

func getEnvInt64(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q", key, raw)
		return defaultValue
	}
	return n
}
