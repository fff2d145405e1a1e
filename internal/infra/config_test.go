package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PLACES_PROVIDER", "foursquare")
	t.Setenv("FOURSQUARE_API_KEY", "fsq-key")
	t.Setenv("EXTRACTOR_PROVIDER", "keyword")
	t.Setenv("PLANNER_CONFIG", "")
	t.Setenv("PARTITION_SEED", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "foursquare", cfg.PlacesProvider)
	assert.Equal(t, "keyword", cfg.ExtractorProvider)
	assert.Equal(t, 20, cfg.Planner.SearchLimit)
	assert.Equal(t, 14, cfg.Planner.MaxDays)
	assert.Equal(t, "New York, NY", cfg.Planner.DefaultLocation)
	assert.Equal(t, []string{"museums", "parks", "historic sites"}, cfg.Planner.DefaultCategories)
	assert.Zero(t, cfg.Planner.PartitionSeed)
}

func TestLoadConfigPartitionSeedFromEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PARTITION_SEED", "-17")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(-17), cfg.Planner.PartitionSeed)

	t.Setenv("PARTITION_SEED", "seven")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.Planner.PartitionSeed)
}

func TestLoadConfigYAMLOverlay(t *testing.T) {
	setBaseEnv(t)
	path := filepath.Join(t.TempDir(), "planner.yaml")
	body := `
search_limit: 35
max_days: 7
search_cache_ttl: 30m
default_location: Lisbon
default_categories: [fado, tiles]
partition_seed: 1234
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("PLANNER_CONFIG", path)
	t.Setenv("PLACES_SEARCH_LIMIT", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 35, cfg.Planner.SearchLimit)
	assert.Equal(t, 7, cfg.Planner.MaxDays)
	assert.Equal(t, 30*time.Minute, cfg.Planner.SearchCacheTTL)
	assert.Equal(t, "Lisbon", cfg.Planner.DefaultLocation)
	assert.Equal(t, []string{"fado", "tiles"}, cfg.Planner.DefaultCategories)
	assert.Equal(t, int64(1234), cfg.Planner.PartitionSeed)
	// untouched keys keep their defaults
	assert.Equal(t, 2, cfg.Planner.ActivitiesPerDay)
}

func TestLoadConfigRejectsMissingKeys(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FOURSQUARE_API_KEY", "")
	_, err := LoadConfig()
	assert.Error(t, err)

	setBaseEnv(t)
	t.Setenv("EXTRACTOR_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	_, err = LoadConfig()
	assert.Error(t, err)

	setBaseEnv(t)
	t.Setenv("PLACES_PROVIDER", "yelp")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 5, getEnvInt("SOME_INT", 5))
	t.Setenv("SOME_INT", "12")
	assert.Equal(t, 12, getEnvInt("SOME_INT", 5))
}
