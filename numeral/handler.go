package numeral

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"roman-numeral-service/numeral/application"
	"roman-numeral-service/numeral/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QueryParam é o nome do parâmetro com o número a converter.
const QueryParam = "query"

type HandlerOptions struct {
	Service application.Service
	// Stats recebe um evento por requisição. Nil desliga o registro.
	Stats domain.StatsStore
	// StatsTimeout limita quanto a gravação de estatísticas pode atrasar a resposta.
	StatsTimeout time.Duration
	Logger       *zap.Logger
	// Route é o rótulo de rota usado nas estatísticas.
	Route string
	Now   func() time.Time
}

// Handler atende GET /romannumeral.
type Handler struct {
	opts HandlerOptions
}

func NewHandler(opts HandlerOptions) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.StatsTimeout <= 0 {
		opts.StatsTimeout = 500 * time.Millisecond
	}
	if opts.Route == "" {
		opts.Route = "/romannumeral"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{opts: opts}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := h.opts.Now()
	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := h.opts.Logger.With(zap.String("requestId", requestID))

	log.Info("starting roman numeral conversion request")
	log.Debug("request query", zap.String("rawQuery", r.URL.RawQuery))

	// a resposta é escrita uma única vez e o evento gravado uma única vez,
	// mesmo quando a conversão entra em pânico
	res := h.convert(r, log, requestID, start)
	writeJSON(w, res.status, res.body)
	h.record(r, log, res.status, res.outcome, start)
}

type result struct {
	status  int
	body    any
	outcome application.Outcome
}

// convert decide status e corpo; pânicos viram o envelope 500.
func (h *Handler) convert(r *http.Request, log *zap.Logger, requestID string, start time.Time) (res result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = h.failure(log, requestID, start, fmt.Errorf("panic: %v", rec))
		}
	}()

	outcome := h.opts.Service.Convert(r.URL.Query()[QueryParam])

	switch {
	case outcome.Err != nil:
		return h.failure(log, requestID, start, outcome.Err)

	case !outcome.Validation.OK():
		kind := outcome.Validation.Rejection
		if !kind.Valid() {
			return h.failure(log, requestID, start, fmt.Errorf("unknown rejection kind %q", kind))
		}
		input := outcome.Input()
		log.Warn("conversion rejected",
			zap.String("reason", kind.String()),
			zap.String("input", input))

		resp := newErrorResponse(http.StatusBadRequest, kind.String(), kind.Message(), requestID)
		resp.Input = &input
		return result{status: http.StatusBadRequest, body: resp, outcome: outcome}

	default:
		duration := h.opts.Now().Sub(start)
		log.Info("conversion successful",
			zap.Int("number", outcome.Validation.Value),
			zap.String("numeral", outcome.Output))
		log.Debug("request duration", zap.Duration("duration", duration))

		return result{status: http.StatusOK, outcome: outcome, body: SuccessResponse{
			Input:      outcome.Input(),
			Output:     outcome.Output,
			StatusCode: http.StatusOK,
			StatusText: http.StatusText(http.StatusOK),
			RequestID:  requestID,
			Duration:   formatDuration(duration),
		}}
	}
}

// failure monta o 500 sem vazar detalhes internos; o erro só vai para o log.
func (h *Handler) failure(log *zap.Logger, requestID string, start time.Time, err error) result {
	duration := h.opts.Now().Sub(start)
	log.Error("conversion failed", zap.Error(err), zap.Duration("duration", duration))

	resp := newErrorResponse(http.StatusInternalServerError, internalErrorName, internalErrorMessage, requestID)
	resp.Duration = formatDuration(duration)
	return result{status: http.StatusInternalServerError, body: resp, outcome: application.Outcome{Err: err}}
}

// record grava o evento da requisição. Falhas e pânicos do StatsStore só
// vão para o log; a resposta já foi enviada.
func (h *Handler) record(r *http.Request, log *zap.Logger, status int, outcome application.Outcome, start time.Time) {
	if h.opts.Stats == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("stats record panicked", zap.Any("panic", rec), zap.Int("status", status))
		}
	}()
	now := h.opts.Now()
	ev := domain.ConversionEvent{
		Method:   r.Method,
		Route:    h.opts.Route,
		Status:   status,
		Outcome:  outcome.Label(),
		Output:   outcome.Output,
		Duration: now.Sub(start),
		At:       now,
	}
	if outcome.Err == nil {
		ev.Input = outcome.Input()
	}

	// o cliente pode ter desconectado; a estatística ainda vale
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.opts.StatsTimeout)
	defer cancel()
	if err := h.opts.Stats.Record(ctx, ev); err != nil {
		log.Warn("stats record failed", zap.Error(err), zap.String("outcome", ev.Outcome))
	}
}
