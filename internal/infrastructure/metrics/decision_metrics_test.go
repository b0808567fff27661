package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Sum[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				out[m.Name] = sum
			}
		}
	}
	return out
}

func valueFor(sum metricdata.Sum[int64], attrs ...attribute.KeyValue) int64 {
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestDecisionMetrics_RecordEvaluation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewDecisionMetrics(provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordEvaluation(ctx, "existing_client", "ACCEPTED", nil)
	m.RecordEvaluation(ctx, "existing_client", "ACCEPTED", nil)
	m.RecordEvaluation(ctx, "existing_client", "NOT_APPLICABLE", []string{"DATA_INCONSISTENCY"})
	m.RecordEvaluation(ctx, "new_applicant", "REJECTED", nil)

	sums := collect(t, reader)

	evaluations, ok := sums["decision_evaluations_total"]
	require.True(t, ok)
	assert.True(t, evaluations.IsMonotonic)
	assert.Equal(t, int64(2), valueFor(evaluations,
		attribute.String("pipeline", "existing_client"), attribute.String("decision", "ACCEPTED")))
	assert.Equal(t, int64(1), valueFor(evaluations,
		attribute.String("pipeline", "existing_client"), attribute.String("decision", "NOT_APPLICABLE")))
	assert.Equal(t, int64(1), valueFor(evaluations,
		attribute.String("pipeline", "new_applicant"), attribute.String("decision", "REJECTED")))

	conditions, ok := sums["decision_conditions_total"]
	require.True(t, ok)
	assert.Equal(t, int64(1), valueFor(conditions,
		attribute.String("pipeline", "existing_client"), attribute.String("condition", "DATA_INCONSISTENCY")))
}
