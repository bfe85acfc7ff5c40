package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// RejectFunc escreve a resposta de uma requisição recusada.
// retryAfter é zero quando não há recomendação.
type RejectFunc func(w http.ResponseWriter, r *http.Request, status int, retryAfter time.Duration)

// PlainReject responde com o texto padrão do status.
func PlainReject(w http.ResponseWriter, _ *http.Request, status int, _ time.Duration) {
	http.Error(w, http.StatusText(status), status)
}

type Options struct {
	Store               *Store
	KeyFn               KeyFunc
	KeyHeader           string
	TrustXForwardedFor  bool
	RejectStatus        int
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
	Reject              RejectFunc
	Logger              *zap.Logger
}

// Middleware aplica rate limit por cliente. Sem Store, é um no-op.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.Store == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}
	if opts.Reject == nil {
		opts.Reject = PlainReject
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddRateLimitHeaders {
				w.Header().Set("X-RateLimit-Key", key)
				w.Header().Set("X-RateLimit-RPS", strconv.FormatFloat(opts.Store.RPS(), 'f', -1, 64))
				w.Header().Set("X-RateLimit-Burst", strconv.Itoa(opts.Store.Burst()))
			}

			if !opts.Store.Allow(key) {
				opts.Logger.Debug("rate limited",
					zap.String("key", key),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", retryAfterSeconds(opts.RetryAfter))
				opts.Reject(w, r, opts.RejectStatus, opts.RetryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds arredonda para cima: "0" faria o cliente repetir na hora.
func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
