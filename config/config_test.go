package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("empty env keeps defaults", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides(mapLookup(nil)))
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Fatalf("config changed (-want +got):\n%s", diff)
		}
	})

	t.Run("PORT builds listen addr", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides(mapLookup(map[string]string{"PORT": "9090"})))
		assert.Equal(t, ":9090", cfg.ListenAddr)
	})

	t.Run("LISTEN_ADDR wins over PORT", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides(mapLookup(map[string]string{
			"PORT":        "9090",
			"LISTEN_ADDR": "127.0.0.1:7000",
		})))
		assert.Equal(t, "127.0.0.1:7000", cfg.ListenAddr)
	})

	t.Run("all sections", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides(mapLookup(map[string]string{
			"APP_ENV":               "production",
			"CORS_ORIGIN":           "https://roman.example",
			"LOG_LEVEL":             "warn",
			"STRICT_PARSING":        "true",
			"SHUTDOWN_TIMEOUT":      "3s",
			"RATE_ENABLED":          "true",
			"RATE_RPS":              "2.5",
			"RATE_BURST":            "4",
			"RATE_KEY_HEADER":       "X-Api-Key",
			"TRUST_XFF":             "1",
			"RETRY_AFTER":           "2s",
			"ADD_RATELIMIT_HEADERS": "true",
			"CONCURRENCY_MAX":       "5",
			"CONCURRENCY_TIMEOUT":   "50ms",
			"STATS_REDIS_ADDR":      "redis:6379",
			"STATS_REDIS_DB":        "2",
			"STATS_PREFIX":          "rn",
			"STATS_TTL":             "1h",
			"STATS_BUCKET":          "none",
			"STATS_TRACK_NUMBERS":   "true",
		})))

		want := Default()
		want.Env = "production"
		want.CORSOrigin = "https://roman.example"
		want.LogLevel = "warn"
		want.StrictParsing = true
		want.ShutdownTimeout = 3 * time.Second
		want.Rate = RateConfig{
			Enabled: true, RPS: 2.5, Burst: 4, KeyHeader: "X-Api-Key", TrustXFF: true,
			RetryAfter: 2 * time.Second, AddHeaders: true, IdleTTL: 15 * time.Minute,
		}
		want.Concurrency = ConcurrencyConfig{Max: 5, Timeout: 50 * time.Millisecond}
		want.Stats.Redis = RedisConfig{
			Addr: "redis:6379", DB: 2, Prefix: "rn", TTL: time.Hour, Bucket: "none", TrackNumbers: true,
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Fatalf("unexpected config (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed values are reported", func(t *testing.T) {
		cfg := Default()
		err := cfg.applyEnvOverrides(mapLookup(map[string]string{
			"RATE_RPS":        "fast",
			"CONCURRENCY_MAX": "lots",
			"RETRY_AFTER":     "soon",
			"TRUST_XFF":       "maybe",
		}))
		require.Error(t, err)
		for _, key := range []string{"RATE_RPS", "CONCURRENCY_MAX", "RETRY_AFTER", "TRUST_XFF"} {
			assert.ErrorContains(t, err, key)
		}
	})
}

func TestResolve_BurstDefaults(t *testing.T) {
	cfg := Default()
	cfg.resolve()
	assert.Equal(t, 20, cfg.Rate.Burst)

	cfg = Default()
	cfg.Rate.RPS = 0.02
	cfg.resolve()
	assert.Equal(t, 1, cfg.Rate.Burst)

	cfg = Default()
	cfg.Rate.RPS = 0.02
	cfg.Rate.Burst = 5
	cfg.resolve()
	assert.Equal(t, 5, cfg.Rate.Burst)
}

func TestValidate(t *testing.T) {
	base := Default()
	base.resolve()
	require.NoError(t, base.Validate())

	cases := map[string]func(*Config){
		"APP_ENV":             func(c *Config) { c.Env = "staging" },
		"LISTEN_ADDR":         func(c *Config) { c.ListenAddr = " " },
		"RATE_RPS":            func(c *Config) { c.Rate.Enabled = true; c.Rate.RPS = 0 },
		"RATE_BURST":          func(c *Config) { c.Rate.Enabled = true; c.Rate.Burst = -1 },
		"CONCURRENCY_MAX":     func(c *Config) { c.Concurrency.Max = -1 },
		"CONCURRENCY_TIMEOUT": func(c *Config) { c.Concurrency.Timeout = -time.Second },
		"SHUTDOWN_TIMEOUT":    func(c *Config) { c.ShutdownTimeout = 0 },
		"STATS_BUCKET":        func(c *Config) { c.Stats.Redis.Addr = "redis:6379"; c.Stats.Redis.Bucket = "hour" },
		"STATS_REDIS_DB":      func(c *Config) { c.Stats.Redis.Addr = "redis:6379"; c.Stats.Redis.DB = -1 },
	}
	for key, mutate := range cases {
		t.Run(key, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), key)
		})
	}
}

func TestValidate_RateChecksOnlyWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.Rate.RPS = 0
	cfg.resolve()
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: Production
listen_addr: ":9000"
strict_parsing: true
rate:
  enabled: true
  rps: 0.5
stats:
  redis:
    addr: "localhost:6379"
    bucket: MINUTE
    ttl: 2h
`), 0o600))

	// neutraliza variáveis que possam existir no ambiente de CI
	for _, k := range []string{"CONFIG_FILE", "APP_ENV", "PORT", "LISTEN_ADDR", "RATE_ENABLED", "RATE_RPS", "RATE_BURST", "STATS_REDIS_ADDR", "STATS_BUCKET", "STATS_TTL", "STRICT_PARSING"} {
		t.Setenv(k, "")
	}
	t.Setenv("LISTEN_ADDR", ":9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9100", cfg.ListenAddr, "env overrides file")
	assert.True(t, cfg.StrictParsing)
	assert.True(t, cfg.Rate.Enabled)
	assert.Equal(t, 1, cfg.Rate.Burst, "burst auto-resolves to 1 for rps < 1")
	assert.True(t, cfg.Stats.Redis.Enabled())
	assert.Equal(t, "minute", cfg.Stats.Redis.Bucket)
	assert.Equal(t, 2*time.Hour, cfg.Stats.Redis.TTL)
}

func TestLoad_UsesConfigFileEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cors_origin: https://ui.example\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://ui.example", cfg.CORSOrigin)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_adr: \":1\"\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "listen_adr")
}

func TestLoad_EmptyFileIsFine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	t.Setenv("APP_ENV", "")

	_, err := Load(path)
	assert.NoError(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config file")
}
