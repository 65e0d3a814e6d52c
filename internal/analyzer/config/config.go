package config

import (
	"time"

	"golang-news-insight/pkg/config"
)

// Analyzer holds settings of the core NLP pipeline.
type Analyzer struct {
	SummaryTopN              int      `mapstructure:"summary_top_n"`
	ExtraBoilerplatePatterns []string `mapstructure:"extra_boilerplate_patterns"`
}

// Dictionary holds the entity dictionary refresh settings.
type Dictionary struct {
	SourceURL           string        `mapstructure:"source_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	FallbackPath        string        `mapstructure:"fallback_path"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	RefreshCron         string        `mapstructure:"refresh_cron"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Annotator holds the NER / dependency parser service settings.
type Annotator struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Classifier holds the sentiment classifier settings.
type Classifier struct {
	Provider            string        `mapstructure:"provider"`
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	MaxLength           int           `mapstructure:"max_length"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Scraper holds the article ingestion settings.
type Scraper struct {
	FeedURLs           []string      `mapstructure:"feed_urls"`
	Cron               string        `mapstructure:"cron"`
	MaxNews            int           `mapstructure:"max_news"`
	MaxNewsAgeInDays   int           `mapstructure:"max_news_age_in_days"`
	MaxConcurrent      int           `mapstructure:"max_concurrent"`
	BlacklistedDomains []string      `mapstructure:"blacklisted_domains"`
	DelayInterval      time.Duration `mapstructure:"delay_interval"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
}

// Consumer holds the article stream consumer settings.
type Consumer struct {
	Workers int           `mapstructure:"workers"`
	Timeout time.Duration `mapstructure:"timeout"`
	Block   time.Duration `mapstructure:"block"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled     bool    `mapstructure:"enabled"`
	BotToken    string  `mapstructure:"bot_token"`
	ChatID      int64   `mapstructure:"chat_id"`
	MinAbsScore float64 `mapstructure:"min_abs_score"`
}

// Config holds the full configuration shared by the analysis and API services.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Analyzer   Analyzer        `mapstructure:"analyzer"`
	Dictionary Dictionary      `mapstructure:"dictionary"`
	Annotator  Annotator       `mapstructure:"annotator"`
	Classifier Classifier      `mapstructure:"classifier"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Scraper    Scraper         `mapstructure:"scraper"`
	Consumer   Consumer        `mapstructure:"consumer"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

var defaults = map[string]interface{}{
	"logger.level":                      "info",
	"logger.encoding":                   "json",
	"api.port":                          8080,
	"analyzer.summary_top_n":            5,
	"dictionary.source_url":             "https://stockanalysis.com/api/screener/s/f?m=s&s=desc&c=s,n&sc=industry&cn=6000&p=1&i=stocks",
	"dictionary.timeout":                "30s",
	"dictionary.cache_ttl":              "168h",
	"dictionary.refresh_cron":           "0 6 * * *",
	"dictionary.max_request_per_minute": 10,
	"annotator.timeout":                 "30s",
	"annotator.max_request_per_minute":  600,
	"classifier.provider":               "huggingface",
	"classifier.max_length":             512,
	"classifier.timeout":                "30s",
	"classifier.max_request_per_minute": 600,
	"classifier.cache_ttl":              "1h",
	"gemini.model":                      "gemini-2.0-flash",
	"gemini.max_request_per_minute":     15,
	"scraper.cron":                      "@every 15m",
	"scraper.max_news":                  20,
	"scraper.max_news_age_in_days":      2,
	"scraper.max_concurrent":            4,
	"scraper.request_timeout":           "20s",
	"consumer.workers":                  2,
	"consumer.timeout":                  "5m",
	"consumer.block":                    "2s",
	"telegram.min_abs_score":            0.6,
}

// Load loads the configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
