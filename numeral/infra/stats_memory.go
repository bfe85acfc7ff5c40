package infra

import (
	"context"
	"sync"

	"roman-numeral-service/numeral/domain"
)

type Counters struct {
	Converted int64 `json:"converted"`
	Rejected  int64 `json:"rejected"`
	Failed    int64 `json:"failed"`
}

func (c *Counters) add(outcome string) {
	switch outcome {
	case domain.OutcomeConverted:
		c.Converted++
	case domain.OutcomeInternalError:
		c.Failed++
	default:
		c.Rejected++
	}
}

// StatsSnapshot é a cópia consistente devolvida por MemoryStatsStore.Snapshot.
type StatsSnapshot struct {
	Total     Counters            `json:"total"`
	ByOutcome map[string]int64    `json:"byOutcome"`
	ByRoute   map[string]Counters `json:"byRoute"`
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes, desenvolvimento e para o endpoint /stats de uma única instância.
//
// Não faz expiração; a cardinalidade é limitada pelo número de rotas e resultados.
type MemoryStatsStore struct {
	mu        sync.Mutex
	total     Counters
	byOutcome map[string]int64
	byRoute   map[string]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		byOutcome: make(map[string]int64),
		byRoute:   make(map[string]Counters),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.ConversionEvent) error {
	route := ev.Method + " " + ev.Route

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Outcome)
	s.byOutcome[ev.Outcome]++
	c := s.byRoute[route]
	c.add(ev.Outcome)
	s.byRoute[route] = c
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := StatsSnapshot{
		Total:     s.total,
		ByOutcome: make(map[string]int64, len(s.byOutcome)),
		ByRoute:   make(map[string]Counters, len(s.byRoute)),
	}
	for k, v := range s.byOutcome {
		out.ByOutcome[k] = v
	}
	for k, v := range s.byRoute {
		out.ByRoute[k] = v
	}
	return out
}
