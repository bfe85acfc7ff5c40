package ratelimit

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ConcurrencyOptions struct {
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
	Reject         RejectFunc
	Logger         *zap.Logger
}

// ConcurrencyMiddleware limita quantas requisições executam ao mesmo tempo.
// Max <= 0 desliga o limite.
func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.Reject == nil {
		opts.Reject = PlainReject
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	p := newPool(opts.Max)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, ok := p.acquire(r.Context(), opts.AcquireTimeout)
			if !ok {
				opts.Logger.Warn("concurrency limit reached",
					zap.Int("max", opts.Max),
					zap.Duration("acquireTimeout", opts.AcquireTimeout))
				opts.Reject(w, r, opts.RejectStatus, 0)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
