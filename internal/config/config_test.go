package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/types"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENWEATHER_API_KEY", "ow")
	t.Setenv("SERPAPI_KEY", "serp")
	t.Setenv("AMADEUS_API_KEY", "ak")
	t.Setenv("AMADEUS_API_SECRET", "as")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "g", cfg.AI.GeminiKey)
	assert.Equal(t, "serp", cfg.Providers.TripAdvisorKey, "tripadvisor key falls back to serpapi key")
	assert.Equal(t, "tripadvisor", cfg.Providers.Attractions)
	assert.Equal(t, 5*time.Minute, cfg.Planner.SearchCacheTTL)
	assert.True(t, cfg.DB.Migrate)
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("VOYAGE_HTTP_ADDR", ":9090")
	t.Setenv("VOYAGE_PLAN_QUOTA", "7")
	t.Setenv("VOYAGE_SEARCH_CACHE_TTL", "90s")
	t.Setenv("VOYAGE_DB_MIGRATE", "false")
	t.Setenv("TRIPADVISOR_API_KEY", "ta")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 7, cfg.Planner.MonthlyQuota)
	assert.Equal(t, 90*time.Second, cfg.Planner.SearchCacheTTL)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "ta", cfg.Providers.TripAdvisorKey)
}

func TestLoad_MissingCredentials(t *testing.T) {
	setCredentials(t)
	t.Setenv("SERPAPI_KEY", "")
	t.Setenv("AMADEUS_API_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfig))
	assert.Contains(t, err.Error(), "SERPAPI_KEY")
	assert.Contains(t, err.Error(), "AMADEUS_API_SECRET")
}

func TestLoad_OpenAIProvider(t *testing.T) {
	setCredentials(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("VOYAGE_LLM_PROVIDER", "openai")

	_, err := Load()
	require.ErrorIs(t, err, types.ErrConfig)

	t.Setenv("OPENAI_API_KEY", "sk")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk", cfg.AI.OpenAIKey)
}

func TestLoad_PlacesRequiresMapsKey(t *testing.T) {
	setCredentials(t)
	t.Setenv("VOYAGE_ATTRACTIONS", "places")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	_, err := Load()
	require.ErrorIs(t, err, types.ErrConfig)
	assert.Contains(t, err.Error(), "GOOGLE_MAPS_API_KEY")
}

func TestLoad_UnknownProvider(t *testing.T) {
	setCredentials(t)
	t.Setenv("VOYAGE_LLM_PROVIDER", "claude")

	_, err := Load()
	assert.ErrorIs(t, err, types.ErrConfig)
}
