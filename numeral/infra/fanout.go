package infra

import (
	"context"
	"errors"

	"roman-numeral-service/numeral/domain"
)

// Fanout replica cada evento para todos os stores.
// Um store com erro não impede os demais; os erros são agregados.
type Fanout []domain.StatsStore

func (f Fanout) Record(ctx context.Context, ev domain.ConversionEvent) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
