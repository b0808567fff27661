package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
)

// EvaluateExistingClientRequest is the input DTO for the EvaluateExistingClient use case.
// Nil scores are treated as absent.
type EvaluateExistingClientRequest struct {
	ProposedInstallment decimal.Decimal `json:"proposed_installment"`
	BureauScore         *int            `json:"bureau_score,omitempty"`
	NoHitScore          *int            `json:"no_hit_score,omitempty"`
	ClientID            string          `json:"client_id"`
}

// EvaluateNewApplicantRequest is the input DTO for the EvaluateNewApplicant use case.
type EvaluateNewApplicantRequest struct {
	EstimatedIncome     decimal.Decimal `json:"estimated_income"`
	ProposedInstallment decimal.Decimal `json:"proposed_installment"`
	ClientID            string          `json:"client_id"`
	Housing             string          `json:"housing"`
	BureauScore         int             `json:"bureau_score"`
	NoHitScore          int             `json:"no_hit_score"`
	Age                 int             `json:"age"`
	Dependents          int             `json:"dependents"`
}

// PartialScoreResponse is one rule's contribution.
type PartialScoreResponse struct {
	Rule    string `json:"rule" yaml:"rule"`
	Kind    string `json:"kind" yaml:"kind"`
	Display string `json:"display" yaml:"display"`
	Points  int    `json:"points" yaml:"points"`
	Numeric bool   `json:"numeric" yaml:"numeric"`
}

// EvaluationResponse is the output DTO returned after an evaluation.
type EvaluationResponse struct {
	EvaluatedAt   time.Time              `json:"evaluated_at" yaml:"evaluated_at"`
	Partials      []PartialScoreResponse `json:"partials" yaml:"partials"`
	Conditions    []string               `json:"conditions" yaml:"conditions"`
	Pipeline      string                 `json:"pipeline" yaml:"pipeline"`
	ClientID      string                 `json:"client_id" yaml:"client_id"`
	Decision      string                 `json:"decision" yaml:"decision"`
	DecisionLabel string                 `json:"decision_label" yaml:"decision_label"`
	BureauBranch  string                 `json:"bureau_branch,omitempty" yaml:"bureau_branch,omitempty"`
	Total         int                    `json:"total" yaml:"total"`
	TotalDefined  bool                   `json:"total_defined" yaml:"total_defined"`
	ID            uuid.UUID              `json:"id" yaml:"id"`
}

// RefreshReferenceDataResponse reports the size of the reloaded tables.
type RefreshReferenceDataResponse struct {
	LoadedAt     time.Time `json:"loaded_at"`
	HistoryRows  int       `json:"history_rows"`
	Installments int       `json:"installments"`
	Collections  int       `json:"collections"`
	LateBehavior int       `json:"late_behavior"`
}

// FromBreakdown maps a breakdown to the response DTO without an evaluation envelope.
func FromBreakdown(pipeline string, b model.ScoreBreakdown) EvaluationResponse {
	partials := make([]PartialScoreResponse, 0, len(b.Partials))
	for _, p := range b.Partials {
		partials = append(partials, PartialScoreResponse{
			Rule:    string(p.Rule),
			Kind:    p.Score.Kind().String(),
			Points:  p.Score.Points(),
			Numeric: p.Score.IsNumeric(),
			Display: p.Score.Display(),
		})
	}

	return EvaluationResponse{
		Pipeline:      pipeline,
		ClientID:      b.ClientID.String(),
		Partials:      partials,
		Total:         b.Total,
		TotalDefined:  b.TotalDefined,
		Decision:      b.Decision.String(),
		DecisionLabel: b.Decision.Label(),
		BureauBranch:  b.BureauBranch.String(),
		Conditions:    b.ConditionNames(),
	}
}

// FromEvaluation maps an evaluation aggregate to the response DTO.
func FromEvaluation(e *model.Evaluation) EvaluationResponse {
	resp := FromBreakdown(e.Pipeline(), e.Breakdown())
	resp.ID = e.ID()
	resp.EvaluatedAt = e.EvaluatedAt()
	return resp
}

// FromStats maps snapshot statistics to the refresh response.
func FromStats(s model.SnapshotStats) RefreshReferenceDataResponse {
	return RefreshReferenceDataResponse{
		HistoryRows:  s.HistoryRows,
		Installments: s.Installments,
		Collections:  s.Collections,
		LateBehavior: s.LateBehavior,
		LoadedAt:     s.LoadedAt,
	}
}
