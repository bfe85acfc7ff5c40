package domain

import (
	"context"
	"time"
)

// Rótulo de resultado usado quando a conversão termina com sucesso.
// Rejeições usam o próprio RejectionKind e falhas internas usam OutcomeInternalError.
const (
	OutcomeConverted     = "Converted"
	OutcomeInternalError = "InternalServerError"
)

// ConversionEvent representa uma requisição de conversão já respondida.
//
// Method/Route/Status são strings/ints genéricos para não acoplar a net/http.
// Cuidado com cardinalidade: Input/Output não devem virar rótulo de métrica.
type ConversionEvent struct {
	Method string
	Route  string
	Status int

	Outcome string
	Input   string
	Output  string

	Duration time.Duration
	At       time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de conversão.
//
// Implementações podem armazenar em memória, Redis, Prometheus, etc.
// O handler trata erro como best-effort (não derruba a requisição).
type StatsStore interface {
	Record(ctx context.Context, ev ConversionEvent) error
}
