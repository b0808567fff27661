package port

import (
	"context"
	"errors"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/pkg/events"
)

// ErrReferenceDataNotReady is returned by a provider that has not loaded a snapshot yet.
var ErrReferenceDataNotReady = errors.New("reference data not loaded")

// ReferenceDataProvider supplies the collaborator tables consumed by the
// existing-client pipeline.
type ReferenceDataProvider interface {
	// Initialize loads the first snapshot, preferring a cached copy.
	Initialize(ctx context.Context) error

	// Refresh reloads every table from its source and replaces the snapshot.
	Refresh(ctx context.Context) error

	// Snapshot returns the current immutable snapshot.
	Snapshot(ctx context.Context) (*model.ReferenceSnapshot, error)

	// Ready reports whether a snapshot is available.
	Ready() bool
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// DecisionRecorder records evaluation outcomes for monitoring.
type DecisionRecorder interface {
	RecordEvaluation(ctx context.Context, pipeline, decision string, conditions []string)
}
