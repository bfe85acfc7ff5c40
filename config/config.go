// Package config carrega a configuração do serviço.
//
// Ordem de precedência (a última vence):
//
//  1. Default()
//  2. arquivo YAML (--config ou CONFIG_FILE)
//  3. variáveis de ambiente (LISTEN_ADDR, RATE_RPS, STATS_REDIS_ADDR, ...)
//  4. flags da linha de comando (aplicadas pelo cmd)
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env        string `yaml:"env"`
	ListenAddr string `yaml:"listen_addr"`
	// Host só é usado para montar a URL exibida no log de inicialização.
	Host            string        `yaml:"host"`
	CORSOrigin      string        `yaml:"cors_origin"`
	LogLevel        string        `yaml:"log_level"`
	StrictParsing   bool          `yaml:"strict_parsing"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	Rate        RateConfig        `yaml:"rate"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Stats       StatsConfig       `yaml:"stats"`
}

type RateConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	// Burst 0 = automático: 20, ou 1 quando RPS < 1.
	// Com RPS muito baixo (ex: 0.02) um burst de 20 dá a impressão de que o limiter não funciona.
	Burst      int           `yaml:"burst"`
	KeyHeader  string        `yaml:"key_header"`
	TrustXFF   bool          `yaml:"trust_xff"`
	RetryAfter time.Duration `yaml:"retry_after"`
	AddHeaders bool          `yaml:"add_headers"`
	IdleTTL    time.Duration `yaml:"idle_ttl"`
}

type ConcurrencyConfig struct {
	Max     int           `yaml:"max"`
	Timeout time.Duration `yaml:"timeout"`
}

type StatsConfig struct {
	// Timeout limita quanto a gravação de estatísticas atrasa cada resposta.
	Timeout time.Duration `yaml:"timeout"`
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig liga o RedisStatsStore quando Addr não é vazio.
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	Prefix       string        `yaml:"prefix"`
	TTL          time.Duration `yaml:"ttl"`
	Bucket       string        `yaml:"bucket"`
	TrackNumbers bool          `yaml:"track_numbers"`
}

func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.Addr) != "" }

func Default() Config {
	return Config{
		Env:             "development",
		ListenAddr:      ":8080",
		Host:            "localhost",
		CORSOrigin:      "http://localhost",
		ShutdownTimeout: 10 * time.Second,
		Rate: RateConfig{
			RPS:        10,
			RetryAfter: 1 * time.Second,
			IdleTTL:    15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{Max: 100},
		Stats: StatsConfig{
			Timeout: 500 * time.Millisecond,
			Redis: RedisConfig{
				Prefix: "romannumeral:stats",
				TTL:    24 * time.Hour,
				Bucket: "minute",
			},
		},
	}
}

// Load aplica default, arquivo (se path ou CONFIG_FILE) e ambiente, e valida.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.resolve()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	return c.decodeYAML(data)
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file: %w", err)
	}
	return nil
}

// resolve preenche valores derivados depois de todas as fontes.
func (c *Config) resolve() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Stats.Redis.Bucket = strings.ToLower(strings.TrimSpace(c.Stats.Redis.Bucket))
	if c.Rate.Burst == 0 {
		c.Rate.Burst = 20
		if c.Rate.RPS > 0 && c.Rate.RPS < 1 {
			c.Rate.Burst = 1
		}
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Env != "development" && c.Env != "production" {
		errs = append(errs, fmt.Errorf("APP_ENV must be development or production, got %q", c.Env))
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, errors.New("LISTEN_ADDR is required"))
	}
	if c.Rate.Enabled {
		if c.Rate.RPS <= 0 {
			errs = append(errs, errors.New("RATE_RPS must be > 0"))
		}
		if c.Rate.Burst <= 0 {
			errs = append(errs, errors.New("RATE_BURST must be > 0"))
		}
	}
	if c.Concurrency.Max < 0 {
		errs = append(errs, errors.New("CONCURRENCY_MAX must be >= 0"))
	}
	if c.Concurrency.Timeout < 0 {
		errs = append(errs, errors.New("CONCURRENCY_TIMEOUT must be >= 0"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be > 0"))
	}
	if c.Stats.Redis.Enabled() {
		switch c.Stats.Redis.Bucket {
		case "minute", "none":
		default:
			errs = append(errs, fmt.Errorf("STATS_BUCKET must be minute or none, got %q", c.Stats.Redis.Bucket))
		}
		if c.Stats.Redis.DB < 0 {
			errs = append(errs, errors.New("STATS_REDIS_DB must be >= 0"))
		}
	}
	return errors.Join(errs...)
}
