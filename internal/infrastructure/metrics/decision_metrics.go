package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
)

const meterName = "github.com/sergiomillane/motor-decisiones/decision"

// DecisionMetrics counts evaluations by pipeline and decision, and the
// conditions they raised.
type DecisionMetrics struct {
	evaluations metric.Int64Counter
	conditions  metric.Int64Counter
}

var _ port.DecisionRecorder = (*DecisionMetrics)(nil)

// NewDecisionMetrics registers the decision counters on provider.
func NewDecisionMetrics(provider metric.MeterProvider) (*DecisionMetrics, error) {
	meter := provider.Meter(meterName)

	evaluations, err := meter.Int64Counter("decision_evaluations_total",
		metric.WithDescription("Evaluations scored, by pipeline and decision."),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: evaluations counter: %w", err)
	}

	conditions, err := meter.Int64Counter("decision_conditions_total",
		metric.WithDescription("Conditions raised while scoring."),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: conditions counter: %w", err)
	}

	return &DecisionMetrics{evaluations: evaluations, conditions: conditions}, nil
}

// RecordEvaluation implements port.DecisionRecorder.
func (m *DecisionMetrics) RecordEvaluation(ctx context.Context, pipeline, decision string, conditions []string) {
	m.evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("decision", decision),
	))
	for _, c := range conditions {
		m.conditions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("pipeline", pipeline),
			attribute.String("condition", c),
		))
	}
}
