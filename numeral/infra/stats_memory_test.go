package infra

import (
	"context"
	"sync"
	"testing"

	"roman-numeral-service/numeral/domain"
)

func TestMemoryStatsStore_CountsByOutcomeAndRoute(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()

	events := []domain.ConversionEvent{
		{Method: "GET", Route: "/romannumeral", Status: 200, Outcome: domain.OutcomeConverted},
		{Method: "GET", Route: "/romannumeral", Status: 200, Outcome: domain.OutcomeConverted},
		{Method: "GET", Route: "/romannumeral", Status: 400, Outcome: string(domain.OutOfRange)},
		{Method: "GET", Route: "/romannumeral", Status: 500, Outcome: domain.OutcomeInternalError},
	}
	for _, ev := range events {
		if err := s.Record(ctx, ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	total := s.Total()
	if total.Converted != 2 || total.Rejected != 1 || total.Failed != 1 {
		t.Fatalf("unexpected totals: %+v", total)
	}

	snap := s.Snapshot()
	if snap.ByOutcome["OutOfRange"] != 1 {
		t.Fatalf("expected one OutOfRange, got %d", snap.ByOutcome["OutOfRange"])
	}
	route := snap.ByRoute["GET /romannumeral"]
	if route.Converted != 2 || route.Rejected != 1 || route.Failed != 1 {
		t.Fatalf("unexpected route counters: %+v", route)
	}
}

func TestMemoryStatsStore_SnapshotIsACopy(t *testing.T) {
	s := NewMemoryStatsStore()
	_ = s.Record(context.Background(), domain.ConversionEvent{Method: "GET", Route: "/romannumeral", Outcome: domain.OutcomeConverted})

	snap := s.Snapshot()
	snap.ByOutcome[domain.OutcomeConverted] = 99

	if got := s.Snapshot().ByOutcome[domain.OutcomeConverted]; got != 1 {
		t.Fatalf("expected store to be unaffected by snapshot mutation, got %d", got)
	}
}

func TestMemoryStatsStore_ConcurrentRecord(t *testing.T) {
	s := NewMemoryStatsStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Record(context.Background(), domain.ConversionEvent{Outcome: domain.OutcomeConverted})
		}()
	}
	wg.Wait()

	if got := s.Total().Converted; got != 50 {
		t.Fatalf("expected 50 conversions, got %d", got)
	}
}
