package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string `validate:"required,numeric"`
	Env  string `validate:"required,oneof=development staging production test"` // development, staging, production

	// Data collection
	Fetch     FetchConfig
	Yahoo     YahooConfig
	Ownership OwnershipConfig
	Universe  UniverseConfig

	// Scoring
	RulesFile string // optional YAML rule table override

	// Scheduling
	ScheduleCron string

	// Logging
	LogLevel  string
	LogFormat string `validate:"omitempty,oneof=json console pretty"`

	// Monitoring
	MetricsEnabled bool
}

// FetchConfig controls per-symbol extraction concurrency and retry policy
type FetchConfig struct {
	Workers       int           `validate:"min=1,max=64"`
	Timeout       time.Duration `validate:"min=1s"`
	MaxRetries    int           `validate:"min=0,max=5"`
	RetryDelay    time.Duration
	RatePerSec    float64 `validate:"gt=0"`
	HistoryPeriod string  `validate:"required"`
}

// YahooConfig holds the price/fundamentals provider endpoints
type YahooConfig struct {
	BaseURL   string `validate:"required,url"` // cookie/crumb host
	QueryURL  string `validate:"required,url"` // quoteSummary host
	UserAgent string
}

// OwnershipConfig holds the ownership-disclosure scraper settings
type OwnershipConfig struct {
	BaseURL string `validate:"required,url"`
	Enabled bool
}

// UniverseConfig controls identifier normalization
type UniverseConfig struct {
	ExchangeSuffix string `validate:"required,startswith=."`
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Fetch: FetchConfig{
			Workers:       getEnvAsInt("FETCH_WORKERS", 8),
			Timeout:       getEnvAsDuration("FETCH_TIMEOUT", "20s"),
			MaxRetries:    getEnvAsInt("FETCH_MAX_RETRIES", 2),
			RetryDelay:    getEnvAsDuration("FETCH_RETRY_DELAY", "1s"),
			RatePerSec:    getEnvAsFloat("FETCH_RATE_PER_SEC", 5),
			HistoryPeriod: getEnv("HISTORY_PERIOD", "1y"),
		},

		Yahoo: YahooConfig{
			BaseURL:   getEnv("YAHOO_BASE_URL", "https://finance.yahoo.com"),
			QueryURL:  getEnv("YAHOO_QUERY_URL", "https://query2.finance.yahoo.com"),
			UserAgent: getEnv("YAHOO_USER_AGENT", DefaultUserAgent),
		},

		Ownership: OwnershipConfig{
			BaseURL: getEnv("OWNERSHIP_BASE_URL", "https://www.screener.in"),
			Enabled: getEnvAsBool("OWNERSHIP_ENABLED", true),
		},

		Universe: UniverseConfig{
			ExchangeSuffix: getEnv("EXCHANGE_SUFFIX", ".NS"),
		},

		RulesFile:    getEnv("RULES_FILE", ""),
		ScheduleCron: getEnv("SCHEDULE_CRON", "0 30 16 * * 1-5"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with built-in defaults, ignoring the environment.
// Tests and examples use it to avoid depending on the caller's shell.
func Default() *Config {
	return &Config{
		Port: "8089",
		Env:  "test",
		Fetch: FetchConfig{
			Workers:       4,
			Timeout:       10 * time.Second,
			MaxRetries:    2,
			RetryDelay:    10 * time.Millisecond,
			RatePerSec:    100,
			HistoryPeriod: "1y",
		},
		Yahoo: YahooConfig{
			BaseURL:   "https://finance.yahoo.com",
			QueryURL:  "https://query2.finance.yahoo.com",
			UserAgent: DefaultUserAgent,
		},
		Ownership: OwnershipConfig{
			BaseURL: "https://www.screener.in",
			Enabled: true,
		},
		Universe:     UniverseConfig{ExchangeSuffix: ".NS"},
		ScheduleCron: "0 30 16 * * 1-5",
		LogLevel:     "error",
		LogFormat:    "json",
	}
}

// DefaultUserAgent is sent by every outbound request unless overridden
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Validate checks struct constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
