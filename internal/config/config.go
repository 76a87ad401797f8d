package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Upstream tracker API configuration
	Tracker TrackerConfig

	// Analysis pipeline configuration
	Analysis AnalysisConfig

	// Redis configuration (optional shared response cache)
	Redis RedisConfig

	// API server configuration
	API APIConfig

	// Scanner configuration
	Scanner ScannerConfig

	// Logging configuration
	Log LogConfig
}

// TrackerConfig holds upstream data API settings
type TrackerConfig struct {
	APIURL           string        `envconfig:"TRACKER_API_URL" default:"https://data.solanatracker.io"`
	APIKey           string        `envconfig:"TRACKER_API_KEY" default:""`
	MinInterval      time.Duration `envconfig:"TRACKER_MIN_INTERVAL" default:"2s"`
	MaxRetries       int           `envconfig:"TRACKER_MAX_RETRIES" default:"3"`
	BackoffStep      time.Duration `envconfig:"TRACKER_BACKOFF_STEP" default:"5s"`
	TransportRetries int           `envconfig:"TRACKER_TRANSPORT_RETRIES" default:"2"`
	TransportDelay   time.Duration `envconfig:"TRACKER_TRANSPORT_DELAY" default:"2s"`
	RequestTimeout   time.Duration `envconfig:"TRACKER_REQUEST_TIMEOUT" default:"30s"`
}

// AnalysisConfig holds analysis pipeline settings
type AnalysisConfig struct {
	DeepLimit        int           `envconfig:"ANALYSIS_DEEP_LIMIT" default:"50"`
	HolderRetryDelay time.Duration `envconfig:"ANALYSIS_HOLDER_RETRY_DELAY" default:"2s"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:""`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8081"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"15m"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"100"`
	MaxTokens       int           `envconfig:"API_MAX_TOKENS" default:"20"`
}

// ScannerConfig holds settings for the one-shot scanner
type ScannerConfig struct {
	// Tokens to analyze (comma-separated addresses)
	Tokens []string `envconfig:"SCANNER_TOKENS" default:""`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RedisEnabled reports whether a shared Redis cache was configured
func (c *RedisConfig) RedisEnabled() bool {
	return c.Host != ""
}
