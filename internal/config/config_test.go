package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CHANNEL_LANG_DATASET", "CHANNEL_LANG_CACHE", "CHANNEL_LANG_CACHE_BACKEND",
		"CHANNEL_LANG_FETCH_TIMEOUT", "CHANNEL_LANG_FETCH_RETRIES",
		"CHANNEL_LANG_WORKERS", "CHANNEL_LANG_BATCH_SIZE", "CHANNEL_LANG_BATCH_DELAY",
		"CHANNEL_LANG_RATE", "CHANNEL_LANG_IPTVORG_DB", "CHANNEL_LANG_METRICS_ADDR",
		"CHANNEL_LANG_USER_AGENT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	c := Load()
	if c.DatasetPath != "./channels.json" {
		t.Errorf("DatasetPath = %q", c.DatasetPath)
	}
	if c.CacheBackend != CacheBackendFile {
		t.Errorf("CacheBackend = %q, want file", c.CacheBackend)
	}
	if c.FetchTimeout != 8*time.Second {
		t.Errorf("FetchTimeout = %v", c.FetchTimeout)
	}
	if c.FetchRetries != 1 {
		t.Errorf("FetchRetries = %d", c.FetchRetries)
	}
	if c.Workers != 4 || c.BatchSize != 10 || c.BatchDelay != 2*time.Second {
		t.Errorf("batch defaults = %d/%d/%v", c.Workers, c.BatchSize, c.BatchDelay)
	}
	if c.RatePerSecond != 2 {
		t.Errorf("RatePerSecond = %v", c.RatePerSecond)
	}
	if c.IPTVOrgDB != "" || c.MetricsAddr != "" || c.UserAgent != "" {
		t.Errorf("optional fields not empty: %+v", c)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHANNEL_LANG_DATASET", "/data/channels.json")
	t.Setenv("CHANNEL_LANG_CACHE_BACKEND", "SQLite")
	t.Setenv("CHANNEL_LANG_FETCH_TIMEOUT", "3s")
	t.Setenv("CHANNEL_LANG_FETCH_RETRIES", "0")
	t.Setenv("CHANNEL_LANG_WORKERS", "8")
	t.Setenv("CHANNEL_LANG_RATE", "0.5")
	t.Setenv("CHANNEL_LANG_METRICS_ADDR", ":9109")

	c := Load()
	if c.DatasetPath != "/data/channels.json" {
		t.Errorf("DatasetPath = %q", c.DatasetPath)
	}
	if c.CacheBackend != CacheBackendSQLite {
		t.Errorf("CacheBackend = %q, want sqlite", c.CacheBackend)
	}
	if c.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v", c.FetchTimeout)
	}
	if c.FetchRetries != 0 {
		t.Errorf("FetchRetries = %d, want explicit 0", c.FetchRetries)
	}
	if c.Workers != 8 {
		t.Errorf("Workers = %d", c.Workers)
	}
	if c.RatePerSecond != 0.5 {
		t.Errorf("RatePerSecond = %v", c.RatePerSecond)
	}
	if c.MetricsAddr != ":9109" {
		t.Errorf("MetricsAddr = %q", c.MetricsAddr)
	}
}

func TestLoadBadValues(t *testing.T) {
	t.Setenv("CHANNEL_LANG_CACHE_BACKEND", "redis")
	t.Setenv("CHANNEL_LANG_FETCH_TIMEOUT", "soon")
	t.Setenv("CHANNEL_LANG_WORKERS", "-3")
	t.Setenv("CHANNEL_LANG_RATE", "fast")

	c := Load()
	if c.CacheBackend != CacheBackendFile {
		t.Errorf("CacheBackend = %q, want file fallback", c.CacheBackend)
	}
	if c.FetchTimeout != 8*time.Second {
		t.Errorf("FetchTimeout = %v, want default", c.FetchTimeout)
	}
	if c.Workers != 4 {
		t.Errorf("Workers = %d, want clamped default", c.Workers)
	}
	if c.RatePerSecond != 2 {
		t.Errorf("RatePerSecond = %v, want default", c.RatePerSecond)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nCHANNEL_LANG_DATASET=/env/channels.json\nCHANNEL_LANG_USER_AGENT=\"Custom Agent/1.0\"\n\nBADLINE\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHANNEL_LANG_DATASET", "")
	t.Setenv("CHANNEL_LANG_USER_AGENT", "")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("CHANNEL_LANG_DATASET"); got != "/env/channels.json" {
		t.Errorf("CHANNEL_LANG_DATASET = %q", got)
	}
	if got := os.Getenv("CHANNEL_LANG_USER_AGENT"); got != "Custom Agent/1.0" {
		t.Errorf("CHANNEL_LANG_USER_AGENT = %q (quotes should be stripped)", got)
	}
}

func TestLoadEnvFile_missingIsNil(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("LoadEnvFile(absent) = %v, want nil", err)
	}
}
