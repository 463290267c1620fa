package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate acquisition
	CanonicalBase    string
	PrimaryProvider  string
	FallbackProvider string

	ExchangeRateHostBaseURL string
	FrankfurterBaseURL      string

	RequestTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration

	RefreshThrottle  time.Duration
	RefreshCron      string
	SchedulerEnabled bool

	// API surface
	CORSAllowedOrigins []string
	RateLimit          string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("FX_CANONICAL_BASE", "USD")
	viper.SetDefault("FX_RATE_PROVIDER", "exchange")
	viper.SetDefault("FX_FALLBACK_PROVIDER", "ecb")
	viper.SetDefault("RATES_API_BASE_URL", "https://api.exchangerate.host")
	viper.SetDefault("FRANKFURTER_API_BASE_URL", "https://api.frankfurter.app")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 5)
	viper.SetDefault("RATES_API_MAX_RETRIES", 2)
	viper.SetDefault("RATES_API_BACKOFF_SECONDS", 0.5)
	viper.SetDefault("REFRESH_THROTTLE_SECONDS", 60)
	viper.SetDefault("RATES_REFRESH_CRON", "0 * * * *")
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.CanonicalBase = strings.ToUpper(viper.GetString("FX_CANONICAL_BASE"))
	cfg.PrimaryProvider = viper.GetString("FX_RATE_PROVIDER")
	cfg.FallbackProvider = viper.GetString("FX_FALLBACK_PROVIDER")

	cfg.ExchangeRateHostBaseURL = viper.GetString("RATES_API_BASE_URL")
	cfg.FrankfurterBaseURL = viper.GetString("FRANKFURTER_API_BASE_URL")

	cfg.RequestTimeout = time.Duration(viper.GetFloat64("REQUEST_TIMEOUT_SECONDS") * float64(time.Second))
	cfg.MaxRetries = viper.GetInt("RATES_API_MAX_RETRIES")
	cfg.RetryBackoff = time.Duration(viper.GetFloat64("RATES_API_BACKOFF_SECONDS") * float64(time.Second))

	cfg.RefreshThrottle = time.Duration(viper.GetInt("REFRESH_THROTTLE_SECONDS")) * time.Second
	cfg.RefreshCron = viper.GetString("RATES_REFRESH_CRON")
	cfg.SchedulerEnabled = viper.GetBool("SCHEDULER_ENABLED")

	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
