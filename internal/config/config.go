package config

import (
	"fmt"
	"os"
	"time"

	"TickerScope/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. TICKERSCOPE_MARKET_API_KEY.
const EnvPrefix = "TICKERSCOPE"

// Config holds all application configuration.
type Config struct {
	Market       MarketConfig       `yaml:"market" envconfig:"MARKET"`
	Headlines    HeadlinesConfig    `yaml:"headlines" envconfig:"HEADLINES"`
	SymbolSearch SymbolSearchConfig `yaml:"symbol_search" envconfig:"SYMBOL_SEARCH"`
	Analysis     AnalysisConfig     `yaml:"analysis" envconfig:"ANALYSIS"`
	Telegram     TelegramConfig     `yaml:"telegram" envconfig:"TELEGRAM"`
	Schedule     ScheduleConfig     `yaml:"schedule" envconfig:"SCHEDULE"`
	Logging      LoggingConfig      `yaml:"logging" envconfig:"LOGGING"`
	Proxy        string             `yaml:"proxy" envconfig:"PROXY" validate:"omitempty,url"`
}

// MarketConfig selects the daily bar source. Yahoo is used when BaseURL is empty.
type MarketConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL" validate:"omitempty,url"`
	APIKey  string        `yaml:"api_key" envconfig:"API_KEY"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
}

// HeadlinesConfig configures the finviz scraper.
type HeadlinesConfig struct {
	BaseURL   string        `yaml:"base_url" envconfig:"BASE_URL" validate:"omitempty,url"`
	UserAgent string        `yaml:"user_agent" envconfig:"USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
}

// SymbolSearchConfig configures the Alpha Vantage symbol search.
type SymbolSearchConfig struct {
	BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL" validate:"omitempty,url"`
	APIKey            string        `yaml:"api_key" envconfig:"API_KEY"`
	RequestsPerMinute int           `yaml:"requests_per_minute" envconfig:"REQUESTS_PER_MINUTE" validate:"gt=0"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	Debounce          time.Duration `yaml:"debounce" envconfig:"DEBOUNCE" validate:"gte=0"`
}

// AnalysisConfig holds the statistical parameters of a run.
type AnalysisConfig struct {
	WindowDays              int           `yaml:"window_days" envconfig:"WINDOW_DAYS" validate:"gte=2,lte=3650"`
	Alpha                   float64       `yaml:"alpha" envconfig:"ALPHA" validate:"gt=0,lt=1"`
	NegativeThreshold       float64       `yaml:"negative_threshold" envconfig:"NEGATIVE_THRESHOLD" validate:"gte=-1,ltfield=PositiveThreshold"`
	PositiveThreshold       float64       `yaml:"positive_threshold" envconfig:"POSITIVE_THRESHOLD" validate:"lte=1"`
	IncludeTodayInReference bool          `yaml:"include_today_in_reference" envconfig:"INCLUDE_TODAY_IN_REFERENCE"`
	RecentHeadlines         int           `yaml:"recent_headlines" envconfig:"RECENT_HEADLINES" validate:"gte=1"`
	RunTimeout              time.Duration `yaml:"run_timeout" envconfig:"RUN_TIMEOUT" validate:"gt=0"`
}

// TelegramConfig configures the chat adapter.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" envconfig:"BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" envconfig:"CHAT_ID"`
}

// ScheduleConfig configures scheduled digests.
type ScheduleConfig struct {
	Cron    string   `yaml:"cron" envconfig:"CRON"`
	Tickers []string `yaml:"tickers" envconfig:"TICKERS"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=console json"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := presets()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, apperr.Config("read config", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperr.Config("parse config", err)
		}
	}

	// Environment variable overrides
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperr.Config("read environment", err)
	}
	if cfg.Proxy == "" {
		cfg.Proxy = os.Getenv("HTTPS_PROXY")
	}

	cfg.applyDefaults()
	return cfg, nil
}

// presets holds defaults for fields where zero is a valid setting. They are
// set before the file and environment are read, so only absent keys keep them.
func presets() *Config {
	return &Config{
		SymbolSearch: SymbolSearchConfig{Debounce: 250 * time.Millisecond},
		Analysis: AnalysisConfig{
			NegativeThreshold: -0.5,
			PositiveThreshold: 0.5,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 30 * time.Second
	}
	if c.Headlines.Timeout == 0 {
		c.Headlines.Timeout = 15 * time.Second
	}
	if c.SymbolSearch.RequestsPerMinute == 0 {
		c.SymbolSearch.RequestsPerMinute = 5
	}
	if c.SymbolSearch.Timeout == 0 {
		c.SymbolSearch.Timeout = 10 * time.Second
	}
	if c.Analysis.WindowDays == 0 {
		c.Analysis.WindowDays = 30
	}
	if c.Analysis.Alpha == 0 {
		c.Analysis.Alpha = 0.05
	}
	if c.Analysis.RecentHeadlines == 0 {
		c.Analysis.RecentHeadlines = 3
	}
	if c.Analysis.RunTimeout == 0 {
		c.Analysis.RunTimeout = 2 * time.Minute
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 16 * * 1-5"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperr.Config("config validation", err)
	}
	return nil
}

// ValidateTelegram checks the chat adapter can be started.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return apperr.Config("telegram.bot_token is required", nil)
	}
	if c.Telegram.ChatID == "" {
		return apperr.Config("telegram.chat_id is required", nil)
	}
	return nil
}

// ValidateSymbolSearch checks the symbol-search provider is usable.
func (c *Config) ValidateSymbolSearch() error {
	if c.SymbolSearch.APIKey == "" {
		return apperr.Config(fmt.Sprintf("symbol_search.api_key is required (or set %s_SYMBOL_SEARCH_API_KEY)", EnvPrefix), nil)
	}
	return nil
}

// TelegramEnabled reports whether both bot token and chat id are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
