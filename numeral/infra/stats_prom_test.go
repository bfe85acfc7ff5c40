package infra

import (
	"context"
	"strings"
	"testing"
	"time"

	"roman-numeral-service/numeral/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromStatsStore_RecordsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewPromStatsStore(reg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Record(ctx, domain.ConversionEvent{
		Method: "GET", Route: "/romannumeral", Status: 200,
		Outcome: domain.OutcomeConverted, Duration: 3 * time.Millisecond,
	}))
	require.NoError(t, s.Record(ctx, domain.ConversionEvent{
		Method: "GET", Route: "/romannumeral", Status: 400,
		Outcome: string(domain.DecimalNumber), Duration: time.Millisecond,
	}))

	assert.Equal(t, float64(1), testutil.ToFloat64(s.requests.WithLabelValues(domain.OutcomeConverted)))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.requests.WithLabelValues("DecimalNumber")))
	assert.Equal(t, 2, testutil.CollectAndCount(s.duration, "http_request_duration_ms"))

	names := []string{"roman_numeral_requests_total", "http_request_duration_ms"}
	count, err := testutil.GatherAndCount(reg, names...)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestPromStatsStore_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromStatsStore(reg)
	require.NoError(t, err)

	_, err = NewPromStatsStore(reg)
	assert.Error(t, err)
}

func TestPromStatsStore_ExpositionContainsMetricNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewPromStatsStore(reg)
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), domain.ConversionEvent{Method: "GET", Route: "/romannumeral", Status: 200, Outcome: domain.OutcomeConverted}))

	expected := `
# HELP roman_numeral_requests_total Total number of Roman numeral conversion requests
# TYPE roman_numeral_requests_total counter
roman_numeral_requests_total{outcome="Converted"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "roman_numeral_requests_total"))
}
