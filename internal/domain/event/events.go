package event

import (
	"time"

	"github.com/sergiomillane/motor-decisiones/pkg/events"
)

const (
	// EventTypeEvaluationCompleted is emitted for every scored evaluation.
	EventTypeEvaluationCompleted = "decision.evaluation.completed"

	// EventTypeDataInconsistency is emitted when bureau and no-hit scores are both set.
	EventTypeDataInconsistency = "decision.evaluation.data_inconsistency"

	// AggregateTypeEvaluation names the aggregate that emits these events.
	AggregateTypeEvaluation = "Evaluation"
)

// EvaluationCompleted is published when a pipeline has produced a decision.
type EvaluationCompleted struct {
	events.BaseEvent
	EvaluatedAt  time.Time      `json:"evaluated_at"`
	Partials     map[string]int `json:"partials"`
	ClientID     string         `json:"client_id"`
	Pipeline     string         `json:"pipeline"`
	Decision     string         `json:"decision"`
	Conditions   []string       `json:"conditions"`
	Total        int            `json:"total"`
	TotalDefined bool           `json:"total_defined"`
}

// NewEvaluationCompleted creates an EvaluationCompleted event.
func NewEvaluationCompleted(
	evaluationID, clientID, pipeline string,
	total int, totalDefined bool,
	decision string,
	partials map[string]int,
	conditions []string,
	evaluatedAt time.Time,
) EvaluationCompleted {
	return EvaluationCompleted{
		BaseEvent:    events.NewBaseEvent(EventTypeEvaluationCompleted, evaluationID, AggregateTypeEvaluation),
		ClientID:     clientID,
		Pipeline:     pipeline,
		Total:        total,
		TotalDefined: totalDefined,
		Decision:     decision,
		Partials:     partials,
		Conditions:   conditions,
		EvaluatedAt:  evaluatedAt,
	}
}

// DataInconsistencyDetected is published when an existing client was entered
// with both a bureau score and a no-hit score.
type DataInconsistencyDetected struct {
	events.BaseEvent
	DetectedAt time.Time `json:"detected_at"`
	ClientID   string    `json:"client_id"`
	Pipeline   string    `json:"pipeline"`
}

// NewDataInconsistencyDetected creates a DataInconsistencyDetected event.
func NewDataInconsistencyDetected(evaluationID, clientID, pipeline string, detectedAt time.Time) DataInconsistencyDetected {
	return DataInconsistencyDetected{
		BaseEvent:  events.NewBaseEvent(EventTypeDataInconsistency, evaluationID, AggregateTypeEvaluation),
		ClientID:   clientID,
		Pipeline:   pipeline,
		DetectedAt: detectedAt,
	}
}
