package ratelimit

import (
	"context"
	"time"
)

// pool é um semáforo simples baseado em channel com capacidade fixa.
type pool struct {
	sem chan struct{}
}

func newPool(max int) *pool {
	return &pool{sem: make(chan struct{}, max)}
}

// acquire bloqueia até conseguir uma vaga, o ctx encerrar ou o timeout expirar.
//   - timeout <= 0: espera indefinidamente (até ctx cancelar)
//   - timeout > 0: espera no máximo timeout
//
// Retorna (release, ok). Se ok=false, nenhuma vaga foi adquirida.
// release deve ser chamado exatamente uma vez.
func (p *pool) acquire(ctx context.Context, timeout time.Duration) (func(), bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	select {
	case p.sem <- struct{}{}:
		return func() { <-p.sem }, true
	case <-ctx.Done():
		return nil, false
	}
}

func (p *pool) inUse() int { return len(p.sem) }
