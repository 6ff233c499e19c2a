package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// godotenv never overrides variables already present, so tests run from a dir without .env
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	for _, env := range []string{"ADZUNA_APP_ID", "ADZUNA_APP_KEY", "JOOBLE_API_KEY", "JOOBLE_KEY", "SERPAPI_KEY", "SERPAPI_API_KEY", "PORT"} {
		t.Setenv(env, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.Search.PerRequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Search.OverallTimeout)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.Equal(t, "India", cfg.Search.DefaultLocation)
	assert.Equal(t, "in", cfg.Adzuna.Country)
	assert.False(t, cfg.AdzunaConfigured())
	assert.False(t, cfg.JoobleConfigured())
	assert.False(t, cfg.SerpAPIConfigured())
}

func TestLoadEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ADZUNA_APP_ID", "id")
	t.Setenv("ADZUNA_APP_KEY", "key")
	t.Setenv("JOOBLE_KEY", "legacy")
	t.Setenv("SERPAPI_KEY", "serp")
	t.Setenv("SEARCH_OVERALL_TIMEOUT", "3s")
	t.Setenv("SEARCH_MIN_SCORE", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.AdzunaConfigured())
	assert.Equal(t, "legacy", cfg.Jooble.APIKey, "JOOBLE_KEY is accepted as an alias")
	assert.True(t, cfg.SerpAPIConfigured())
	assert.Equal(t, 3*time.Second, cfg.Search.OverallTimeout)
	assert.Equal(t, 3, cfg.Search.Job().MinScore)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "jobmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
search:
  max_results: 20
  default_location: Bharat
jooble:
  api_key: from-file
`), 0o600))
	t.Setenv("JOOBLE_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, "Bharat", cfg.Search.DefaultLocation)
	assert.Equal(t, "from-env", cfg.Jooble.APIKey)
}

func TestLoadRejectsInvalidBounds(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SEARCH_MIN_SCORE", "31")
	t.Setenv("SEARCH_MAX_RESULTS", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_score")
	assert.Contains(t, err.Error(), "max_results")
}

func TestLoadMissingFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
