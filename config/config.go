package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger         `mapstructure:"logger"`
	DB           Database       `mapstructure:"database"`
	API          API            `mapstructure:"api"`
	Cache        Cache          `mapstructure:"cache"`
	YahooFinance YahooFinance   `mapstructure:"yahoo_finance"`
	AI           AI             `mapstructure:"ai"`
	OpenAI       OpenAI         `mapstructure:"openai"`
	Gemini       Gemini         `mapstructure:"gemini"`
	Sentiment    Sentiment      `mapstructure:"sentiment"`
	Scheduler    Scheduler      `mapstructure:"scheduler"`
	Telegram     TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Enabled         bool   `mapstructure:"enabled"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port               int           `mapstructure:"port"`
	RateLimitPerSecond float64       `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int           `mapstructure:"rate_limit_burst"`
	RateLimitExpiresIn time.Duration `mapstructure:"rate_limit_expires_in"`
}

type Cache struct {
	DefaultExpiration  time.Duration `mapstructure:"default_expiration"`
	CleanupInterval    time.Duration `mapstructure:"cleanup_interval"`
	SentimentTTL       time.Duration `mapstructure:"sentiment_ttl"`
	StockTTL           time.Duration `mapstructure:"stock_ttl"`
	MarketAnalysisTTL  time.Duration `mapstructure:"market_analysis_ttl"`
	AssetComparisonTTL time.Duration `mapstructure:"asset_comparison_ttl"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	UserAgent           string        `mapstructure:"user_agent"`
}

// AI selects the language model provider used for ratio enrichment and
// market analysis. Provider is one of "openai", "gemini" or "none".
type AI struct {
	Provider string `mapstructure:"provider"`
}

type OpenAI struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	Model               string        `mapstructure:"model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

type Sentiment struct {
	BroadSymbol      string `mapstructure:"broad_symbol"`
	SecondarySymbol  string `mapstructure:"secondary_symbol"`
	VolatilitySymbol string `mapstructure:"volatility_symbol"`
	DefaultVariant   string `mapstructure:"default_variant"`
	DefaultTimeframe string `mapstructure:"default_timeframe"`
	// JitterSeed, when non-zero, makes the cyclical jitter reproducible.
	JitterSeed int64 `mapstructure:"jitter_seed"`
}

type Scheduler struct {
	Enabled          bool          `mapstructure:"enabled"`
	SentimentRefresh string        `mapstructure:"sentiment_refresh"`
	HistoryCleanup   string        `mapstructure:"history_cleanup"`
	HistoryRetention time.Duration `mapstructure:"history_retention"`
	TimeoutDuration  time.Duration `mapstructure:"timeout_duration"`
}

type TelegramConfig struct {
	BotToken                  string        `mapstructure:"bot_token"`
	WebhookURL                string        `mapstructure:"webhook_url"`
	TimeoutDuration           time.Duration `mapstructure:"timeout_duration"`
	MaxGlobalRequestPerSecond int           `mapstructure:"max_global_request_per_second"`
	MaxUserRequestPerSecond   int           `mapstructure:"max_user_request_per_second"`
	RateLimitExpiresIn        time.Duration `mapstructure:"rate_limit_expires_in"`
	// AlertChatID receives scheduler failure alerts when non-zero.
	AlertChatID int64 `mapstructure:"alert_chat_id"`
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != ""
}

// SetDefaults registers the values used when neither config.yaml nor the
// environment provide one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.log_level", "Warn")

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.rate_limit_per_second", 10)
	v.SetDefault("api.rate_limit_burst", 30)
	v.SetDefault("api.rate_limit_expires_in", 3*time.Minute)

	v.SetDefault("cache.default_expiration", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.sentiment_ttl", 5*time.Minute)
	v.SetDefault("cache.stock_ttl", 10*time.Minute)
	v.SetDefault("cache.market_analysis_ttl", 5*time.Minute)
	v.SetDefault("cache.asset_comparison_ttl", 15*time.Minute)

	v.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo_finance.timeout", 15*time.Second)
	v.SetDefault("yahoo_finance.max_request_per_minute", 60)
	v.SetDefault("yahoo_finance.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36")

	v.SetDefault("ai.provider", "openai")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.timeout", 60*time.Second)
	v.SetDefault("openai.max_request_per_minute", 20)
	v.SetDefault("gemini.base_model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout", 60*time.Second)
	v.SetDefault("gemini.max_request_per_minute", 15)
	v.SetDefault("gemini.max_token_per_minute", 1000000)

	v.SetDefault("sentiment.broad_symbol", "SPY")
	v.SetDefault("sentiment.secondary_symbol", "QQQ")
	v.SetDefault("sentiment.volatility_symbol", "^VIX")
	v.SetDefault("sentiment.default_variant", "statistical")
	v.SetDefault("sentiment.default_timeframe", "30d")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.sentiment_refresh", "*/15 * * * *")
	v.SetDefault("scheduler.history_cleanup", "0 3 * * *")
	v.SetDefault("scheduler.history_retention", 90*24*time.Hour)
	v.SetDefault("scheduler.timeout_duration", 2*time.Minute)

	v.SetDefault("telegram.timeout_duration", 10*time.Second)
	v.SetDefault("telegram.max_global_request_per_second", 30)
	v.SetDefault("telegram.max_user_request_per_second", 1)
	v.SetDefault("telegram.rate_limit_expires_in", 10*time.Minute)
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath(".")
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.YahooFinance.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("yahoo_finance.max_request_per_minute must be positive")
	}
	return &cfg, nil
}
