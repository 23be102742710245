package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SOURCE_PATH", "")
	t.Setenv("CRAWLER_JSON_PATH", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "radar-service", cfg.App.Name)
	assert.Equal(t, 8000, cfg.API.Port)
	assert.Equal(t, "data/*.json", cfg.Source.DataGlob)
	assert.Equal(t, "../market-risk-analysis/src/crawler/articles_*.json", cfg.Source.CrawlerGlob)
	assert.Equal(t, 10*time.Minute, cfg.Source.CacheTTL)
	assert.Equal(t, "000000", cfg.Brief.PortfolioCode)
	assert.Equal(t, "Market Portfolio", cfg.Brief.PortfolioName)
	assert.Equal(t, 30, cfg.RateLimit.BriefPerMinute)
	assert.Empty(t, cfg.Source.Path)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.yaml")
	body := `
app:
  name: radar-test
api:
  port: 9100
source:
  data_glob: feeds/*.json
  cache_ttl: 30s
rate_limit:
  brief_per_minute: 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("SOURCE_PATH", "")
	t.Setenv("CRAWLER_JSON_PATH", "/tmp/articles_latest.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "radar-test", cfg.App.Name)
	assert.Equal(t, 9100, cfg.API.Port)
	assert.Equal(t, "feeds/*.json", cfg.Source.DataGlob)
	assert.Equal(t, 30*time.Second, cfg.Source.CacheTTL)
	assert.Equal(t, 5, cfg.RateLimit.BriefPerMinute)
	assert.Equal(t, "/tmp/articles_latest.json", cfg.Source.Path)
}
