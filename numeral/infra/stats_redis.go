package infra

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"roman-numeral-service/numeral/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores em hashes do Redis, permitindo agregar
// estatísticas de várias réplicas do serviço.
//
// Chaves (com prefixo padrão "romannumeral:stats"):
//
//	<prefix>:total                 HASH  outcome -> count
//	<prefix>:minute:200601021504   HASH  outcome -> count (expira após ttl)
//	<prefix>:route                 HASH  "GET /romannumeral 200" -> count
//	<prefix>:numbers               ZSET  número convertido -> count (opcional)
type RedisStatsStore struct {
	rdb redis.UniversalClient

	prefix string
	// ttl aplica apenas nas chaves de série temporal.
	// total/route são cumulativos e não expiram.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	// trackNumbers mantém um ranking dos números convertidos com sucesso.
	// A cardinalidade é limitada a 3999 membros.
	trackNumbers bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackNumbers(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackNumbers = track }
}

func NewRedisStatsStore(rdb redis.UniversalClient, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "romannumeral:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) Prefix() string { return s.prefix }

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.ConversionEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := strings.TrimSpace(ev.Outcome)
	if field == "" {
		field = "unknown"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	routeField := strings.TrimSpace(strings.TrimSpace(ev.Method) + " " + strings.TrimSpace(ev.Route))
	if routeField != "" {
		if ev.Status > 0 {
			routeField += " " + strconv.Itoa(ev.Status)
		}
		pipe.HIncrBy(ctx, s.prefix+":route", routeField, 1)
	}

	if s.trackNumbers && ev.Outcome == domain.OutcomeConverted && ev.Input != "" {
		pipe.ZIncrBy(ctx, s.prefix+":numbers", 1, ev.Input)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis stats record: %w", err)
	}
	return nil
}

// Totals lê o hash cumulativo <prefix>:total.
func (s *RedisStatsStore) Totals(ctx context.Context) (map[string]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, s.prefix+":total").Result()
	if err != nil {
		return nil, fmt.Errorf("redis stats totals: %w", err)
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis stats totals: field %q: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// NumberCount é uma entrada do ranking de números convertidos.
type NumberCount struct {
	Number string `json:"number"`
	Count  int64  `json:"count"`
}

// TopNumbers devolve os n números mais convertidos (requer WithStatsTrackNumbers).
func (s *RedisStatsStore) TopNumbers(ctx context.Context, n int64) ([]NumberCount, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := s.rdb.ZRevRangeWithScores(ctx, s.prefix+":numbers", 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis stats top numbers: %w", err)
	}
	out := make([]NumberCount, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		out = append(out, NumberCount{Number: member, Count: int64(z.Score)})
	}
	return out, nil
}
