package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sergiomillane/motor-decisiones/internal/domain/event"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
	"github.com/sergiomillane/motor-decisiones/pkg/events"
)

// Pipeline names.
const (
	PipelineExistingClient = "existing_client"
	PipelineNewApplicant   = "new_applicant"
)

// Evaluation is the aggregate root for a single scoring request. It is built
// once from a completed breakdown and is not persisted.
type Evaluation struct {
	evaluatedAt time.Time
	collector   events.EventCollector
	pipeline    string
	breakdown   ScoreBreakdown
	id          uuid.UUID
}

// NewEvaluation wraps a breakdown and records the resulting domain events.
func NewEvaluation(pipeline string, breakdown ScoreBreakdown, evaluatedAt time.Time) (*Evaluation, error) {
	if pipeline != PipelineExistingClient && pipeline != PipelineNewApplicant {
		return nil, fmt.Errorf("unknown pipeline %q", pipeline)
	}
	if breakdown.Decision.IsZero() {
		return nil, fmt.Errorf("breakdown has no decision")
	}

	e := &Evaluation{
		id:          uuid.New(),
		pipeline:    pipeline,
		breakdown:   breakdown,
		evaluatedAt: evaluatedAt.UTC(),
	}

	e.collector.Record(event.NewEvaluationCompleted(
		e.id.String(), breakdown.ClientID.String(), pipeline,
		breakdown.Total, breakdown.TotalDefined,
		breakdown.Decision.String(),
		breakdown.PointsByRule(),
		breakdown.ConditionNames(),
		e.evaluatedAt,
	))

	if breakdown.HasCondition(valueobject.ConditionDataInconsistency) {
		e.collector.Record(event.NewDataInconsistencyDetected(
			e.id.String(), breakdown.ClientID.String(), pipeline, e.evaluatedAt,
		))
	}

	return e, nil
}

func (e *Evaluation) ID() uuid.UUID                  { return e.id }
func (e *Evaluation) Pipeline() string               { return e.pipeline }
func (e *Evaluation) Breakdown() ScoreBreakdown      { return e.breakdown }
func (e *Evaluation) EvaluatedAt() time.Time         { return e.evaluatedAt }
func (e *Evaluation) Decision() valueobject.Decision { return e.breakdown.Decision }

// DomainEvents returns and clears the recorded events.
func (e *Evaluation) DomainEvents() []events.DomainEvent {
	return e.collector.Drain()
}
