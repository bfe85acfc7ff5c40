package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"roman-numeral-service/buildinfo"
	"roman-numeral-service/config"
	"roman-numeral-service/middleware/ratelimit"
	"roman-numeral-service/numeral"
	"roman-numeral-service/numeral/application"
	"roman-numeral-service/numeral/infra"
	"roman-numeral-service/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type server struct {
	cfg     config.Config
	logger  *zap.Logger
	handler http.Handler

	limiter *ratelimit.Store
	memory  *infra.MemoryStatsStore
	closers []func() error
}

func newServer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*server, error) {
	s := &server{cfg: cfg, logger: logger, memory: infra.NewMemoryStatsStore()}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom, err := infra.NewPromStatsStore(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	stats := infra.Fanout{prom, s.memory}
	var shared numeral.SharedStats

	if cfg.Stats.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Stats.Redis.Addr,
			Password: cfg.Stats.Redis.Password,
			DB:       cfg.Stats.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis stats ping error: %w", err)
		}
		s.closers = append(s.closers, rdb.Close)

		redisStats := infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.Stats.Redis.Prefix),
			infra.WithStatsTTL(cfg.Stats.Redis.TTL),
			infra.WithStatsBucket(cfg.Stats.Redis.Bucket),
			infra.WithStatsTrackNumbers(cfg.Stats.Redis.TrackNumbers),
		)
		stats = append(stats, redisStats)
		shared = redisStats
	}

	convert := numeral.NewHandler(numeral.HandlerOptions{
		Service: application.Service{
			Validator: application.Validator{Strict: cfg.StrictParsing},
		},
		Stats:        stats,
		StatsTimeout: cfg.Stats.Timeout,
		Logger:       logger,
	})

	h := numeral.NewRouter(numeral.RouterOptions{
		Convert: convert,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Stats:   s.memory,
		Shared:  shared,
		UI:      web.Handler(),
		Version: buildinfo.Version,
		Logger:  logger,
	})
	h = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.Concurrency.Max,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.Concurrency.Timeout,
		Reject:         numeral.AdmissionReject,
		Logger:         logger,
	})(h)
	if cfg.Rate.Enabled {
		s.limiter = ratelimit.NewStore(cfg.Rate.RPS, cfg.Rate.Burst, ratelimit.WithIdleTTL(cfg.Rate.IdleTTL))
		h = ratelimit.Middleware(ratelimit.Options{
			Store:               s.limiter,
			KeyHeader:           cfg.Rate.KeyHeader,
			TrustXForwardedFor:  cfg.Rate.TrustXFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.Rate.RetryAfter,
			AddRateLimitHeaders: cfg.Rate.AddHeaders,
			Reject:              numeral.AdmissionReject,
			Logger:              logger,
		})(h)
	}
	// CORS por fora do rate limit para que 429 também chegue legível ao navegador.
	h = cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{numeral.RequestIDHeader},
		ExposedHeaders: []string{numeral.RequestIDHeader, "Retry-After"},
	}).Handler(h)
	s.handler = numeral.RequestID(h)

	return s, nil
}

func (s *server) run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		s.close()
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	return s.serve(ctx, ln)
}

// serve atende em ln até ctx encerrar, então faz shutdown gracioso.
func (s *server) serve(ctx context.Context, ln net.Listener) error {
	defer s.close()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
		ErrorLog:          zap.NewStdLog(s.logger.Named("http")),
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.limiter != nil {
		s.limiter.StartJanitor(gctx)
	}

	g.Go(func() error {
		s.logger.Info("server running", zap.String("url", s.publicURL(ln.Addr())))
		s.logger.Info("rate limit",
			zap.Bool("enabled", s.cfg.Rate.Enabled),
			zap.Float64("rps", s.cfg.Rate.RPS),
			zap.Int("burst", s.cfg.Rate.Burst),
			zap.String("keyHeader", s.cfg.Rate.KeyHeader),
			zap.Bool("trustXFF", s.cfg.Rate.TrustXFF))
		s.logger.Info("concurrency",
			zap.Int("max", s.cfg.Concurrency.Max),
			zap.Duration("acquireTimeout", s.cfg.Concurrency.Timeout))
		s.logger.Info("stats",
			zap.Bool("redis", s.cfg.Stats.Redis.Enabled()),
			zap.String("bucket", s.cfg.Stats.Redis.Bucket))

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down", zap.Duration("timeout", s.cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *server) publicURL(addr net.Addr) string {
	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	return "http://" + net.JoinHostPort(s.cfg.Host, port) + "/"
}

func (s *server) close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn("close failed", zap.Error(err))
		}
	}
	s.closers = nil
}
