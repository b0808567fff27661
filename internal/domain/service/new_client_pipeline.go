package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

const (
	NewClientBureauCutoff    = 580
	NewClientBureauPenalty   = 20
	YoungApplicantAge        = 30
	YoungApplicantPenalty    = 10
	AffordabilityPenalty     = 20
	RentedHousingPenalty     = 20
	TransferHousingPenalty   = 10
	NewClientAcceptThreshold = 50
)

var affordabilityMultiplier = decimal.RequireFromString("1.5")

// NewClientPipeline scores applicants with no portfolio history.
type NewClientPipeline struct{}

// NewNewClientPipeline creates a new-client pipeline.
func NewNewClientPipeline() *NewClientPipeline {
	return &NewClientPipeline{}
}

// Evaluate applies the four new-applicant rules. Totals strictly below
// NewClientAcceptThreshold are accepted.
func (p *NewClientPipeline) Evaluate(r model.NewApplicantRecord) (model.ScoreBreakdown, error) {
	if r.Dependents <= 0 {
		return model.ScoreBreakdown{}, fmt.Errorf("%w: economic dependents must be positive, got %d", ErrInvalidInput, r.Dependents)
	}
	if r.Age < 0 {
		return model.ScoreBreakdown{}, fmt.Errorf("%w: age must be non-negative, got %d", ErrInvalidInput, r.Age)
	}
	if r.EstimatedIncome.IsNegative() || r.ProposedInstallment.IsNegative() {
		return model.ScoreBreakdown{}, fmt.Errorf("%w: income and installment must be non-negative", ErrInvalidInput)
	}

	// 1. Bureau score.
	bureau := 0
	if r.BureauScore < NewClientBureauCutoff {
		bureau = NewClientBureauPenalty
	}

	// 2. Age.
	age := 0
	if r.Age < YoungApplicantAge {
		age = YoungApplicantPenalty
	}

	// 3. Affordability against income per dependent pair:
	// installment > income / (dependents*2) * 1.5, cross-multiplied so the
	// comparison stays exact.
	affordability := 0
	if affordabilityExceeded(r.EstimatedIncome, r.Dependents, r.ProposedInstallment) {
		affordability = AffordabilityPenalty
	}

	// 4. Housing.
	housing := 0
	switch r.Housing {
	case valueobject.HousingRented:
		housing = RentedHousingPenalty
	case valueobject.HousingTransfer:
		housing = TransferHousingPenalty
	}

	b := model.ScoreBreakdown{
		ClientID: r.ClientID,
		Partials: []model.RuleScore{
			{Rule: model.RuleBureau, Score: valueobject.PointsOf(bureau)},
			{Rule: model.RuleAge, Score: valueobject.PointsOf(age)},
			{Rule: model.RuleInstallment, Score: valueobject.PointsOf(affordability)},
			{Rule: model.RuleHousing, Score: valueobject.PointsOf(housing)},
		},
		Total:        bureau + age + affordability + housing,
		TotalDefined: true,
	}

	if b.Total < NewClientAcceptThreshold {
		b.Decision = valueobject.DecisionAccepted
	} else {
		b.Decision = valueobject.DecisionRejected
	}

	return b, nil
}

// affordabilityExceeded reports whether installment is above 1.5 times the
// income available per dependent pair. dependents must be positive.
func affordabilityExceeded(income decimal.Decimal, dependents int, installment decimal.Decimal) bool {
	pairs := decimal.NewFromInt(int64(dependents) * 2)
	return installment.Mul(pairs).GreaterThan(income.Mul(affordabilityMultiplier))
}
