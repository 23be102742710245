package config

import (
	"time"

	radarconfig "market-risk-radar/internal/radar/config"
	"market-risk-radar/pkg/common"
	"market-risk-radar/pkg/config"

	"github.com/spf13/viper"
)

// Watcher holds the scheduling and sink settings.
type Watcher struct {
	Cron        string `mapstructure:"cron"`
	RunOnStart  bool   `mapstructure:"run_on_start"`
	Stream      string `mapstructure:"stream"`
	NotifyEmpty bool   `mapstructure:"notify_empty"`
}

// Config holds the full configuration for the watcher service.
type Config struct {
	App      config.App         `mapstructure:"app"`
	Logger   config.Logger      `mapstructure:"logger"`
	API      config.API         `mapstructure:"api"`
	Redis    config.Redis       `mapstructure:"redis"`
	Telegram config.Telegram    `mapstructure:"telegram"`
	Source   radarconfig.Source `mapstructure:"source"`
	Brief    radarconfig.Brief  `mapstructure:"brief"`
	Watcher  Watcher            `mapstructure:"watcher"`
}

func setDefaults(v *viper.Viper) {
	config.Defaults(v)
	v.SetDefault("app.name", "watcher-service")
	v.SetDefault("api.port", 9090)
	v.SetDefault("source.base_dir", ".")
	v.SetDefault("source.data_glob", "data/*.json")
	v.SetDefault("source.crawler_glob", "../market-risk-analysis/src/crawler/articles_*.json")
	v.SetDefault("source.feed_glob", "data/*.xml")
	v.SetDefault("source.cache_ttl", 10*time.Minute)
	v.SetDefault("brief.portfolio_code", "000000")
	v.SetDefault("brief.portfolio_name", "Market Portfolio")
	v.SetDefault("watcher.cron", "@every 15m")
	v.SetDefault("watcher.run_on_start", true)
	v.SetDefault("watcher.stream", common.RedisStreamRiskAlerts)
	v.SetDefault("watcher.notify_empty", false)
}

// Load loads the watcher configuration from the given path.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	_ = v.BindEnv("source.path", "SOURCE_PATH", "CRAWLER_JSON_PATH")
	_ = v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	var cfg Config
	if err := config.Load(v, path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
