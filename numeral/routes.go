package numeral

import (
	"context"
	"net/http"
	"time"

	"roman-numeral-service/numeral/infra"

	"go.uber.org/zap"
)

// Endpoint descreve uma rota na resposta de GET /.
type Endpoint struct {
	Path        string            `json:"path"`
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

type APIInfo struct {
	Name      string     `json:"name"`
	Version   string     `json:"version"`
	Endpoints []Endpoint `json:"endpoints"`
}

// SharedStats lê os contadores agregados entre réplicas (RedisStatsStore).
type SharedStats interface {
	Totals(ctx context.Context) (map[string]int64, error)
	TopNumbers(ctx context.Context, n int64) ([]infra.NumberCount, error)
}

// StatsResponse é o corpo de GET /stats. Shared só aparece quando há um
// backend compartilhado e ele respondeu.
type StatsResponse struct {
	infra.StatsSnapshot
	Shared *SharedSnapshot `json:"shared,omitempty"`
}

type SharedSnapshot struct {
	ByOutcome  map[string]int64    `json:"byOutcome"`
	TopNumbers []infra.NumberCount `json:"topNumbers"`
}

const (
	sharedStatsTimeout = time.Second
	topNumbersLimit    = 10
)

type RouterOptions struct {
	// Convert atende /romannumeral (normalmente um *Handler).
	Convert http.Handler
	// Metrics atende /metrics (promhttp). Nil omite a rota.
	Metrics http.Handler
	// Stats alimenta /stats. Nil omite a rota.
	Stats *infra.MemoryStatsStore
	// Shared acrescenta a /stats os contadores do Redis. Opcional.
	Shared SharedStats
	// UI atende /converter (formulário web). Nil omite a rota.
	UI      http.Handler
	Version string
	Logger  *zap.Logger
}

// NewRouter monta as rotas públicas. Toda resposta de erro usa o envelope JSON,
// inclusive 404 e 405.
func NewRouter(opts RouterOptions) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}

	info := APIInfo{Name: "Roman Numeral Converter API", Version: opts.Version}
	mux := http.NewServeMux()

	add := func(path, description string, params map[string]string, h http.Handler) {
		if h == nil {
			return
		}
		info.Endpoints = append(info.Endpoints, Endpoint{
			Path:        path,
			Method:      http.MethodGet,
			Description: description,
			Parameters:  params,
		})
		mux.Handle(path, getOnly(h))
	}

	add("/romannumeral", "Converts a number to Roman numeral",
		map[string]string{QueryParam: "The number to convert (1-3999)"}, opts.Convert)
	add("/metrics", "Get Prometheus metrics", nil, opts.Metrics)
	if opts.Stats != nil {
		add("/stats", "Get conversion counters", nil, statsHandler(opts.Stats, opts.Shared, opts.Logger))
	}
	add("/healthz", "Liveness probe", nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	add("/converter", "Browser form for the converter", nil, opts.UI)

	available := []string{"/"}
	for _, ep := range info.Endpoints {
		available = append(available, ep.Path)
	}

	mux.Handle("/{$}", getOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	})))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts.Logger.Debug("route not found", zap.String("path", r.URL.Path))
		resp := newErrorResponse(http.StatusNotFound, "Not Found", "The requested resource was not found", RequestIDFrom(r.Context()))
		resp.AvailableEndpoints = available
		writeJSON(w, http.StatusNotFound, resp)
	}))

	return mux
}

// getOnly aceita GET/HEAD e responde 405 em JSON para o resto.
func getOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeJSON(w, http.StatusMethodNotAllowed, newErrorResponse(
				http.StatusMethodNotAllowed,
				"MethodNotAllowed",
				"Only GET requests are supported.",
				RequestIDFrom(r.Context()),
			))
			return
		}
		h.ServeHTTP(w, r)
	})
}

func statsHandler(s *infra.MemoryStatsStore, shared SharedStats, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := StatsResponse{StatsSnapshot: s.Snapshot()}
		if shared != nil {
			snap, err := readShared(r.Context(), shared)
			if err != nil {
				// /stats continua útil só com a instância local
				log.Warn("shared stats unavailable", zap.Error(err))
			} else {
				resp.Shared = snap
			}
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func readShared(ctx context.Context, shared SharedStats) (*SharedSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, sharedStatsTimeout)
	defer cancel()

	totals, err := shared.Totals(ctx)
	if err != nil {
		return nil, err
	}
	top, err := shared.TopNumbers(ctx, topNumbersLimit)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []infra.NumberCount{}
	}
	return &SharedSnapshot{ByOutcome: totals, TopNumbers: top}, nil
}
