package infra

import (
	"context"
	"strconv"

	"roman-numeral-service/numeral/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PromStatsStore traduz eventos de conversão em métricas Prometheus.
//
// Os nomes seguem o contrato histórico do serviço:
//   - roman_numeral_requests_total{outcome}
//   - http_request_duration_ms{method,route,code}
type PromStatsStore struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Buckets em milissegundos; a conversão em si é sub-milissegundo, o resto é rede.
var durationBucketsMS = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

// NewPromStatsStore registra as métricas em reg. Um registro privado por processo
// (ou por teste) evita colisão com o registro global.
func NewPromStatsStore(reg prometheus.Registerer) (*PromStatsStore, error) {
	s := &PromStatsStore{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roman_numeral_requests_total",
			Help: "Total number of Roman numeral conversion requests",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: durationBucketsMS,
		}, []string{"method", "route", "code"}),
	}
	for _, c := range []prometheus.Collector{s.requests, s.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *PromStatsStore) Record(_ context.Context, ev domain.ConversionEvent) error {
	s.requests.WithLabelValues(ev.Outcome).Inc()
	ms := float64(ev.Duration.Microseconds()) / 1000
	s.duration.WithLabelValues(ev.Method, ev.Route, strconv.Itoa(ev.Status)).Observe(ms)
	return nil
}
