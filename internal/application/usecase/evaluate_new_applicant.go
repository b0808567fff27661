package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sergiomillane/motor-decisiones/internal/application/dto"
	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

// EvaluateNewApplicant scores an applicant with no portfolio history.
type EvaluateNewApplicant struct {
	publisher port.EventPublisher
	recorder  port.DecisionRecorder
	pipeline  *service.NewClientPipeline
	logger    *slog.Logger
	now       func() time.Time
}

// NewEvaluateNewApplicant creates a new EvaluateNewApplicant use case.
func NewEvaluateNewApplicant(
	publisher port.EventPublisher,
	recorder port.DecisionRecorder,
	pipeline *service.NewClientPipeline,
	logger *slog.Logger,
) *EvaluateNewApplicant {
	return &EvaluateNewApplicant{
		publisher: publisher,
		recorder:  recorder,
		pipeline:  pipeline,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute runs the new-client pipeline.
func (uc *EvaluateNewApplicant) Execute(ctx context.Context, req dto.EvaluateNewApplicantRequest) (dto.EvaluationResponse, error) {
	record := model.NewApplicantRecord{
		ClientID:            valueobject.ParseClientID(req.ClientID),
		BureauScore:         req.BureauScore,
		NoHitScore:          req.NoHitScore,
		Age:                 req.Age,
		Housing:             valueobject.ParseHousingStatus(req.Housing),
		Dependents:          req.Dependents,
		EstimatedIncome:     req.EstimatedIncome,
		ProposedInstallment: req.ProposedInstallment,
	}

	breakdown, err := uc.pipeline.Evaluate(record)
	if err != nil {
		return dto.EvaluationResponse{}, fmt.Errorf("failed to evaluate applicant: %w", err)
	}

	evaluation, err := model.NewEvaluation(model.PipelineNewApplicant, breakdown, uc.now())
	if err != nil {
		return dto.EvaluationResponse{}, fmt.Errorf("failed to create evaluation: %w", err)
	}

	finish(ctx, uc.recorder, uc.publisher, uc.logger, evaluation)

	return dto.FromEvaluation(evaluation), nil
}
