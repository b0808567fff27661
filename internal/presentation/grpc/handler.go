package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sergiomillane/motor-decisiones/internal/application/dto"
	"github.com/sergiomillane/motor-decisiones/internal/application/usecase"
	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
)

const tracerName = "github.com/sergiomillane/motor-decisiones/grpc"

// Compile-time assertion that CreditDecisionHandler implements CreditDecisionServiceServer.
var _ CreditDecisionServiceServer = (*CreditDecisionHandler)(nil)

// CreditDecisionHandler implements the gRPC CreditDecisionServiceServer interface.
type CreditDecisionHandler struct {
	UnimplementedCreditDecisionServiceServer
	evaluateExisting *usecase.EvaluateExistingClient
	evaluateNew      *usecase.EvaluateNewApplicant
	refresh          *usecase.RefreshReferenceData
	logger           *slog.Logger
}

// NewCreditDecisionHandler creates a new gRPC handler.
func NewCreditDecisionHandler(
	evaluateExisting *usecase.EvaluateExistingClient,
	evaluateNew *usecase.EvaluateNewApplicant,
	refresh *usecase.RefreshReferenceData,
	logger *slog.Logger,
) *CreditDecisionHandler {
	return &CreditDecisionHandler{
		evaluateExisting: evaluateExisting,
		evaluateNew:      evaluateNew,
		refresh:          refresh,
		logger:           logger,
	}
}

// Proto-aligned request/response message types.

// EvaluateExistingClientRequest represents the proto EvaluateExistingClientRequest message.
// Unset scores are absent.
type EvaluateExistingClientRequest struct {
	BureauScore         *int32 `json:"bureau_score,omitempty"`
	NoHitScore          *int32 `json:"no_hit_score,omitempty"`
	ClientID            string `json:"client_id"`
	ProposedInstallment string `json:"proposed_installment"`
}

// EvaluateNewApplicantRequest represents the proto EvaluateNewApplicantRequest message.
type EvaluateNewApplicantRequest struct {
	ClientID            string `json:"client_id"`
	Housing             string `json:"housing"`
	EstimatedIncome     string `json:"estimated_income"`
	ProposedInstallment string `json:"proposed_installment"`
	BureauScore         int32  `json:"bureau_score"`
	NoHitScore          int32  `json:"no_hit_score"`
	Age                 int32  `json:"age"`
	Dependents          int32  `json:"dependents"`
}

// PartialScoreMsg represents the proto PartialScore message.
type PartialScoreMsg struct {
	Rule    string `json:"rule"`
	Kind    string `json:"kind"`
	Display string `json:"display"`
	Points  int32  `json:"points"`
	Numeric bool   `json:"numeric"`
}

// EvaluationMsg represents the proto Evaluation message.
type EvaluationMsg struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"client_id"`
	Pipeline      string            `json:"pipeline"`
	Decision      string            `json:"decision"`
	DecisionLabel string            `json:"decision_label"`
	BureauBranch  string            `json:"bureau_branch,omitempty"`
	EvaluatedAt   string            `json:"evaluated_at"`
	Partials      []PartialScoreMsg `json:"partials"`
	Conditions    []string          `json:"conditions"`
	Total         int32             `json:"total"`
	TotalDefined  bool              `json:"total_defined"`
}

// EvaluationReply wraps an evaluation.
type EvaluationReply struct {
	Evaluation *EvaluationMsg `json:"evaluation"`
}

// RefreshReferenceDataRequest represents the proto RefreshReferenceDataRequest message.
type RefreshReferenceDataRequest struct{}

// RefreshReferenceDataReply represents the proto RefreshReferenceDataResponse message.
type RefreshReferenceDataReply struct {
	LoadedAt     string `json:"loaded_at"`
	HistoryRows  int32  `json:"history_rows"`
	Installments int32  `json:"installments"`
	Collections  int32  `json:"collections"`
	LateBehavior int32  `json:"late_behavior"`
}

// EvaluateExistingClient scores a portfolio client.
func (h *CreditDecisionHandler) EvaluateExistingClient(ctx context.Context, req *EvaluateExistingClientRequest) (*EvaluationReply, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CreditDecisionService/EvaluateExistingClient")
	defer span.End()

	if req == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "request is required")
	}
	span.SetAttributes(attribute.String("decision.client_id", req.ClientID))

	installment, err := parseAmount(req.ProposedInstallment)
	if err != nil {
		return nil, status.Errorf(grpccodes.InvalidArgument, "invalid proposed_installment: %v", err)
	}

	result, err := h.evaluateExisting.Execute(ctx, dto.EvaluateExistingClientRequest{
		ClientID:            req.ClientID,
		BureauScore:         intFromPtr(req.BureauScore),
		NoHitScore:          intFromPtr(req.NoHitScore),
		ProposedInstallment: installment,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, h.toStatus(ctx, "failed to evaluate existing client", err)
	}

	span.SetAttributes(attribute.String("decision.result", result.Decision))
	return &EvaluationReply{Evaluation: toEvaluationMsg(result)}, nil
}

// EvaluateNewApplicant scores an applicant from the application form.
func (h *CreditDecisionHandler) EvaluateNewApplicant(ctx context.Context, req *EvaluateNewApplicantRequest) (*EvaluationReply, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CreditDecisionService/EvaluateNewApplicant")
	defer span.End()

	if req == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "request is required")
	}

	income, err := parseAmount(req.EstimatedIncome)
	if err != nil {
		return nil, status.Errorf(grpccodes.InvalidArgument, "invalid estimated_income: %v", err)
	}
	installment, err := parseAmount(req.ProposedInstallment)
	if err != nil {
		return nil, status.Errorf(grpccodes.InvalidArgument, "invalid proposed_installment: %v", err)
	}

	result, err := h.evaluateNew.Execute(ctx, dto.EvaluateNewApplicantRequest{
		ClientID:            req.ClientID,
		BureauScore:         int(req.BureauScore),
		NoHitScore:          int(req.NoHitScore),
		Age:                 int(req.Age),
		Housing:             req.Housing,
		Dependents:          int(req.Dependents),
		EstimatedIncome:     income,
		ProposedInstallment: installment,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, h.toStatus(ctx, "failed to evaluate new applicant", err)
	}

	span.SetAttributes(attribute.String("decision.result", result.Decision))
	return &EvaluationReply{Evaluation: toEvaluationMsg(result)}, nil
}

// RefreshReferenceData reloads the reference tables.
func (h *CreditDecisionHandler) RefreshReferenceData(ctx context.Context, _ *RefreshReferenceDataRequest) (*RefreshReferenceDataReply, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CreditDecisionService/RefreshReferenceData")
	defer span.End()

	result, err := h.refresh.Execute(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, h.toStatus(ctx, "failed to refresh reference data", err)
	}

	h.logger.InfoContext(ctx, "reference data refreshed",
		slog.Int("history_rows", result.HistoryRows),
	)

	return &RefreshReferenceDataReply{
		LoadedAt:     result.LoadedAt.Format(time.RFC3339),
		HistoryRows:  int32(result.HistoryRows),
		Installments: int32(result.Installments),
		Collections:  int32(result.Collections),
		LateBehavior: int32(result.LateBehavior),
	}, nil
}

// toStatus maps use-case errors onto gRPC status codes.
func (h *CreditDecisionHandler) toStatus(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		return status.Error(grpccodes.NotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrDataInconsistency):
		return status.Error(grpccodes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrReferenceDataNotReady):
		return status.Error(grpccodes.Unavailable, "reference data is not loaded yet")
	default:
		h.logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))
		return status.Error(grpccodes.Internal, "internal error")
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func intFromPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func toEvaluationMsg(r dto.EvaluationResponse) *EvaluationMsg {
	partials := make([]PartialScoreMsg, 0, len(r.Partials))
	for _, p := range r.Partials {
		partials = append(partials, PartialScoreMsg{
			Rule:    p.Rule,
			Kind:    p.Kind,
			Display: p.Display,
			Points:  int32(p.Points),
			Numeric: p.Numeric,
		})
	}
	return &EvaluationMsg{
		ID:            r.ID.String(),
		ClientID:      r.ClientID,
		Pipeline:      r.Pipeline,
		Decision:      r.Decision,
		DecisionLabel: r.DecisionLabel,
		BureauBranch:  r.BureauBranch,
		EvaluatedAt:   r.EvaluatedAt.Format(time.RFC3339),
		Partials:      partials,
		Conditions:    r.Conditions,
		Total:         int32(r.Total),
		TotalDefined:  r.TotalDefined,
	}
}
