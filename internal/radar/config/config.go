package config

import (
	"time"

	"market-risk-radar/pkg/config"

	"github.com/spf13/viper"
)

// Source holds the corpus discovery settings.
type Source struct {
	BaseDir     string        `mapstructure:"base_dir"`
	Path        string        `mapstructure:"path"`
	DataGlob    string        `mapstructure:"data_glob"`
	CrawlerGlob string        `mapstructure:"crawler_glob"`
	FeedGlob    string        `mapstructure:"feed_glob"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// Brief holds the portfolio subject used for the pipeline risk briefing.
type Brief struct {
	PortfolioCode string `mapstructure:"portfolio_code"`
	PortfolioName string `mapstructure:"portfolio_name"`
}

// RateLimit holds request limits for the generation endpoint.
type RateLimit struct {
	BriefPerMinute int `mapstructure:"brief_per_minute"`
}

// Config holds the full configuration for the radar service.
type Config struct {
	App       config.App    `mapstructure:"app"`
	Logger    config.Logger `mapstructure:"logger"`
	API       config.API    `mapstructure:"api"`
	Source    Source        `mapstructure:"source"`
	Brief     Brief         `mapstructure:"brief"`
	RateLimit RateLimit     `mapstructure:"rate_limit"`
}

func setDefaults(v *viper.Viper) {
	config.Defaults(v)
	v.SetDefault("app.name", "radar-service")
	v.SetDefault("source.base_dir", ".")
	v.SetDefault("source.path", "")
	v.SetDefault("source.data_glob", "data/*.json")
	v.SetDefault("source.crawler_glob", "../market-risk-analysis/src/crawler/articles_*.json")
	v.SetDefault("source.feed_glob", "data/*.xml")
	v.SetDefault("source.cache_ttl", 10*time.Minute)
	v.SetDefault("brief.portfolio_code", "000000")
	v.SetDefault("brief.portfolio_name", "Market Portfolio")
	v.SetDefault("rate_limit.brief_per_minute", 30)
}

// Load loads the radar configuration from the given path.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	// The crawler has always exported its output location under this name.
	_ = v.BindEnv("source.path", "SOURCE_PATH", "CRAWLER_JSON_PATH")

	var cfg Config
	if err := config.Load(v, path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
