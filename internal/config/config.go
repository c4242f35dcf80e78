package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache backends accepted by CHANNEL_LANG_CACHE_BACKEND.
const (
	CacheBackendMemory = "memory"
	CacheBackendFile   = "file"
	CacheBackendSQLite = "sqlite"
)

// Config holds enrichment settings.
// Load from env; call LoadEnvFile(".env") before Load() to use a .env file.
type Config struct {
	// Paths
	DatasetPath string // channel dataset JSON, e.g. ./channels.json
	CachePath   string // domain cache file (JSON or sqlite depending on backend)
	IPTVOrgDB   string // optional harvested iptv-org DB; "" disables the fallback

	// Cache backend: memory | file | sqlite
	CacheBackend string

	// Site fetching
	FetchTimeout time.Duration // per-attempt timeout
	FetchRetries int           // extra attempts per URL variant
	UserAgent    string        // "" = built-in default

	// Batch enrichment
	Workers       int
	BatchSize     int
	BatchDelay    time.Duration
	RatePerSecond float64

	// Observability
	MetricsAddr string // "" = no /metrics listener
}

// Load reads config from environment.
func Load() *Config {
	c := &Config{
		DatasetPath:   getEnv("CHANNEL_LANG_DATASET", "./channels.json"),
		CachePath:     getEnv("CHANNEL_LANG_CACHE", "./langcache.json"),
		IPTVOrgDB:     os.Getenv("CHANNEL_LANG_IPTVORG_DB"),
		CacheBackend:  getEnvCacheBackend("CHANNEL_LANG_CACHE_BACKEND", CacheBackendFile),
		FetchTimeout:  getEnvDuration("CHANNEL_LANG_FETCH_TIMEOUT", 8*time.Second),
		FetchRetries:  getEnvInt("CHANNEL_LANG_FETCH_RETRIES", 1),
		UserAgent:     os.Getenv("CHANNEL_LANG_USER_AGENT"),
		Workers:       getEnvInt("CHANNEL_LANG_WORKERS", 4),
		BatchSize:     getEnvInt("CHANNEL_LANG_BATCH_SIZE", 10),
		BatchDelay:    getEnvDuration("CHANNEL_LANG_BATCH_DELAY", 2*time.Second),
		RatePerSecond: getEnvFloat("CHANNEL_LANG_RATE", 2),
		MetricsAddr:   os.Getenv("CHANNEL_LANG_METRICS_ADDR"),
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 8 * time.Second
	}
	if c.RatePerSecond <= 0 {
		c.RatePerSecond = 2
	}
	return c
}

// getEnvCacheBackend normalises the backend name, falling back to defaultVal
// for anything unrecognised.
func getEnvCacheBackend(key, defaultVal string) string {
	switch v := strings.TrimSpace(strings.ToLower(os.Getenv(key))); v {
	case CacheBackendMemory, CacheBackendFile, CacheBackendSQLite:
		return v
	default:
		return defaultVal
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, _ := strconv.Atoi(v)
		return n
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

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
