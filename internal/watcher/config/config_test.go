package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watcher:\n  cron: \"*/5 * * * *\"\nredis:\n  enabled: true\n"), 0o644))
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "*/5 * * * *", cfg.Watcher.Cron)
	assert.True(t, cfg.Watcher.RunOnStart)
	assert.Equal(t, "radar.alerts", cfg.Watcher.Stream)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, int64(10000), cfg.Redis.StreamMaxLen)
	assert.Equal(t, "data/*.json", cfg.Source.DataGlob)
	assert.Equal(t, "Market Portfolio", cfg.Brief.PortfolioName)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
}
