// Package config provides configuration loading from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Tool output defaults
const (
	DefaultResultLimitValue = 50
	MaxResultLimitValue     = 1000
	MaxBatchQueriesValue    = 20
)

// Config holds all configuration for the MCP server and CLI.
type Config struct {
	APIRoot           string        // WORDSEER_API_ROOT, default "http://localhost:8000/api/"
	Instance          string        // WORDSEER_INSTANCE, default "" (must be supplied per call)
	User              string        // WORDSEER_USER, default ""
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 10000ms (10s)
	SearchWorkers     int           // SEARCH_WORKERS, default 4
	RateLimitRPS      float64       // RATE_LIMIT_RPS, default 0 (unlimited)
	RateLimitBurst    int           // RATE_LIMIT_BURST, default 1
	CacheBusting      bool          // CACHE_BUSTING, default false
	RecordSchemaFile  string        // RECORD_SCHEMA_FILE, default "" (no validation)
	MetricsAddr       string        // METRICS_ADDR, default "" (no metrics endpoint)

	// Tool output limits
	DefaultResultLimit int // DEFAULT_RESULT_LIMIT, default 50
	MaxResultLimit     int // MAX_RESULT_LIMIT, default 1000
	MaxBatchQueries    int // MAX_BATCH_QUERIES, default 20

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text" (or "json")
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		APIRoot:           getEnvString("WORDSEER_API_ROOT", "http://localhost:8000/api/"),
		Instance:          getEnvString("WORDSEER_INSTANCE", ""),
		User:              getEnvString("WORDSEER_USER", ""),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 10000),
		SearchWorkers:     getEnvInt("SEARCH_WORKERS", 4),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 1),
		CacheBusting:      getEnvBool("CACHE_BUSTING", false),
		RecordSchemaFile:  getEnvString("RECORD_SCHEMA_FILE", ""),
		MetricsAddr:       getEnvString("METRICS_ADDR", ""),

		DefaultResultLimit: getEnvInt("DEFAULT_RESULT_LIMIT", DefaultResultLimitValue),
		MaxResultLimit:     getEnvInt("MAX_RESULT_LIMIT", MaxResultLimitValue),
		MaxBatchQueries:    getEnvInt("MAX_BATCH_QUERIES", MaxBatchQueriesValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.APIRoot == "" {
		return fmt.Errorf("WORDSEER_API_ROOT must not be empty")
	}
	if c.SearchWorkers < 1 {
		return fmt.Errorf("SEARCH_WORKERS must be at least 1, got %d", c.SearchWorkers)
	}
	if c.DefaultResultLimit < 1 || c.DefaultResultLimit > c.MaxResultLimit {
		return fmt.Errorf("DEFAULT_RESULT_LIMIT must be between 1 and MAX_RESULT_LIMIT (%d), got %d",
			c.MaxResultLimit, c.DefaultResultLimit)
	}
	return nil
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
