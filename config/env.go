package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LookupFunc tem a assinatura de os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envReader aplica variáveis definidas e não vazias sobre os campos,
// acumulando erros de parse em vez de cair silenciosamente no default.
type envReader struct {
	lookup LookupFunc
	errs   []error
}

func (e *envReader) get(k string) (string, bool) {
	v, ok := e.lookup(k)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) str(k string, dst *string) {
	if v, ok := e.get(k); ok {
		*dst = v
	}
}

func (e *envReader) boolean(k string, dst *bool) {
	if v, ok := e.get(k); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("%s: %w", k, err))
			return
		}
		*dst = b
	}
}

func (e *envReader) integer(k string, dst *int) {
	if v, ok := e.get(k); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("%s: %w", k, err))
			return
		}
		*dst = i
	}
}

func (e *envReader) float(k string, dst *float64) {
	if v, ok := e.get(k); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("%s: %w", k, err))
			return
		}
		*dst = f
	}
}

func (e *envReader) duration(k string, dst *time.Duration) {
	if v, ok := e.get(k); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("%s: %w", k, err))
			return
		}
		*dst = d
	}
}

func (c *Config) applyEnvOverrides(lookup LookupFunc) error {
	e := &envReader{lookup: lookup}

	e.str("APP_ENV", &c.Env)
	e.str("HOST", &c.Host)
	var port string
	e.str("PORT", &port)
	if port != "" {
		c.ListenAddr = ":" + port
	}
	// LISTEN_ADDR vence PORT quando ambos estão definidos
	e.str("LISTEN_ADDR", &c.ListenAddr)
	e.str("CORS_ORIGIN", &c.CORSOrigin)
	e.str("LOG_LEVEL", &c.LogLevel)
	e.boolean("STRICT_PARSING", &c.StrictParsing)
	e.duration("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)

	e.boolean("RATE_ENABLED", &c.Rate.Enabled)
	e.float("RATE_RPS", &c.Rate.RPS)
	e.integer("RATE_BURST", &c.Rate.Burst)
	e.str("RATE_KEY_HEADER", &c.Rate.KeyHeader)
	e.boolean("TRUST_XFF", &c.Rate.TrustXFF)
	e.duration("RETRY_AFTER", &c.Rate.RetryAfter)
	e.boolean("ADD_RATELIMIT_HEADERS", &c.Rate.AddHeaders)
	e.duration("RATE_IDLE_TTL", &c.Rate.IdleTTL)

	e.integer("CONCURRENCY_MAX", &c.Concurrency.Max)
	e.duration("CONCURRENCY_TIMEOUT", &c.Concurrency.Timeout)

	e.duration("STATS_TIMEOUT", &c.Stats.Timeout)
	e.str("STATS_REDIS_ADDR", &c.Stats.Redis.Addr)
	e.str("STATS_REDIS_PASSWORD", &c.Stats.Redis.Password)
	e.integer("STATS_REDIS_DB", &c.Stats.Redis.DB)
	e.str("STATS_PREFIX", &c.Stats.Redis.Prefix)
	e.duration("STATS_TTL", &c.Stats.Redis.TTL)
	e.str("STATS_BUCKET", &c.Stats.Redis.Bucket)
	e.boolean("STATS_TRACK_NUMBERS", &c.Stats.Redis.TrackNumbers)

	return errors.Join(e.errs...)
}
