package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sergiomillane/motor-decisiones/internal/application/dto"
	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

// EvaluateExistingClient scores a portfolio client against the current reference data.
type EvaluateExistingClient struct {
	provider  port.ReferenceDataProvider
	publisher port.EventPublisher
	recorder  port.DecisionRecorder
	pipeline  *service.ExistingClientPipeline
	logger    *slog.Logger
	now       func() time.Time
}

// NewEvaluateExistingClient creates a new EvaluateExistingClient use case.
func NewEvaluateExistingClient(
	provider port.ReferenceDataProvider,
	publisher port.EventPublisher,
	recorder port.DecisionRecorder,
	pipeline *service.ExistingClientPipeline,
	logger *slog.Logger,
) *EvaluateExistingClient {
	return &EvaluateExistingClient{
		provider:  provider,
		publisher: publisher,
		recorder:  recorder,
		pipeline:  pipeline,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute runs the existing-client pipeline. On ErrDataInconsistency the
// response still carries the breakdown.
func (uc *EvaluateExistingClient) Execute(ctx context.Context, req dto.EvaluateExistingClientRequest) (dto.EvaluationResponse, error) {
	if req.ProposedInstallment.IsNegative() {
		return dto.EvaluationResponse{}, fmt.Errorf("%w: proposed installment must be non-negative", service.ErrInvalidInput)
	}

	// 1. Take the current reference snapshot.
	snapshot, err := uc.provider.Snapshot(ctx)
	if err != nil {
		return dto.EvaluationResponse{}, fmt.Errorf("failed to load reference data: %w", err)
	}

	// 2. Score the target client.
	input := service.ExistingClientInput{
		TargetID:            valueobject.ParseClientID(req.ClientID),
		BureauScore:         valueobject.ScoreFromPtr(req.BureauScore),
		NoHitScore:          valueobject.ScoreFromPtr(req.NoHitScore),
		ProposedInstallment: req.ProposedInstallment,
	}
	breakdown, scoreErr := uc.pipeline.Evaluate(input, snapshot)
	if scoreErr != nil && !errors.Is(scoreErr, service.ErrDataInconsistency) {
		return dto.EvaluationResponse{}, fmt.Errorf("failed to evaluate client %s: %w", req.ClientID, scoreErr)
	}

	// 3. Wrap the breakdown in an evaluation aggregate.
	evaluation, err := model.NewEvaluation(model.PipelineExistingClient, breakdown, uc.now())
	if err != nil {
		return dto.EvaluationResponse{}, fmt.Errorf("failed to create evaluation: %w", err)
	}

	// 4. Record metrics and publish events.
	finish(ctx, uc.recorder, uc.publisher, uc.logger, evaluation)

	resp := dto.FromEvaluation(evaluation)
	if scoreErr != nil {
		return resp, fmt.Errorf("failed to evaluate client %s: %w", req.ClientID, scoreErr)
	}
	return resp, nil
}

// finish records the outcome and publishes the evaluation's events. A broker
// outage is logged and does not fail the decision.
func finish(
	ctx context.Context,
	recorder port.DecisionRecorder,
	publisher port.EventPublisher,
	logger *slog.Logger,
	evaluation *model.Evaluation,
) {
	breakdown := evaluation.Breakdown()
	if recorder != nil {
		recorder.RecordEvaluation(ctx, evaluation.Pipeline(), breakdown.Decision.String(), breakdown.ConditionNames())
	}

	evts := evaluation.DomainEvents()
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Warn("failed to publish evaluation events",
			slog.String("evaluation_id", evaluation.ID().String()),
			slog.String("error", err.Error()),
		)
	}
}
