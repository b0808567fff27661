package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

func formDefaults() model.NewApplicantRecord {
	return model.NewApplicantRecord{
		ClientID:            valueobject.NewClientID(53535),
		BureauScore:         530,
		NoHitScore:          0,
		Age:                 26,
		Housing:             valueobject.HousingRented,
		Dependents:          4,
		EstimatedIncome:     decimal.NewFromInt(9000),
		ProposedInstallment: decimal.NewFromInt(1000),
	}
}

func TestNewClient_FormDefaultsAreRejected(t *testing.T) {
	p := service.NewNewClientPipeline()

	b, err := p.Evaluate(formDefaults())
	require.NoError(t, err)

	assert.Equal(t, 20, partialPoints(t, b, model.RuleBureau))
	assert.Equal(t, 10, partialPoints(t, b, model.RuleAge))
	assert.Equal(t, 0, partialPoints(t, b, model.RuleInstallment))
	assert.Equal(t, 20, partialPoints(t, b, model.RuleHousing))
	assert.Equal(t, 50, b.Total)
	assert.Equal(t, "Rechazado", b.Decision.Label())
}

func TestNewClient_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.NewApplicantRecord)
		rule   model.RuleName
		want   int
	}{
		{"bureau at cutoff", func(r *model.NewApplicantRecord) { r.BureauScore = 580 }, model.RuleBureau, 0},
		{"bureau below cutoff", func(r *model.NewApplicantRecord) { r.BureauScore = 579 }, model.RuleBureau, 20},
		{"age 30", func(r *model.NewApplicantRecord) { r.Age = 30 }, model.RuleAge, 0},
		{"age 29", func(r *model.NewApplicantRecord) { r.Age = 29 }, model.RuleAge, 10},
		{"owned", func(r *model.NewApplicantRecord) { r.Housing = valueobject.HousingOwned }, model.RuleHousing, 0},
		{"transfer", func(r *model.NewApplicantRecord) { r.Housing = valueobject.HousingTransfer }, model.RuleHousing, 10},
		{"other housing", func(r *model.NewApplicantRecord) { r.Housing = valueobject.HousingOther }, model.RuleHousing, 0},
		// 9000 / 8 * 1.5 = 1687.5
		{"installment at limit", func(r *model.NewApplicantRecord) {
			r.ProposedInstallment = decimal.RequireFromString("1687.5")
		}, model.RuleInstallment, 0},
		{"installment over limit", func(r *model.NewApplicantRecord) {
			r.ProposedInstallment = decimal.RequireFromString("1687.51")
		}, model.RuleInstallment, 20},
	}

	p := service.NewNewClientPipeline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := formDefaults()
			tt.mutate(&r)
			b, err := p.Evaluate(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, partialPoints(t, b, tt.rule))
		})
	}
}

func TestNewClient_ThresholdIsExclusive(t *testing.T) {
	p := service.NewNewClientPipeline()

	r := formDefaults()
	r.Housing = valueobject.HousingTransfer // 20 + 10 + 0 + 10 = 40

	b, err := p.Evaluate(r)
	require.NoError(t, err)
	assert.Equal(t, 40, b.Total)
	assert.Equal(t, valueobject.DecisionAccepted, b.Decision)
}

func TestNewClient_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.NewApplicantRecord)
	}{
		{"zero dependents", func(r *model.NewApplicantRecord) { r.Dependents = 0 }},
		{"negative dependents", func(r *model.NewApplicantRecord) { r.Dependents = -2 }},
		{"negative age", func(r *model.NewApplicantRecord) { r.Age = -1 }},
		{"negative income", func(r *model.NewApplicantRecord) { r.EstimatedIncome = decimal.NewFromInt(-1) }},
	}

	p := service.NewNewClientPipeline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := formDefaults()
			tt.mutate(&r)
			_, err := p.Evaluate(r)
			require.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestNewClient_AffordabilityLimitWithInexactDivision(t *testing.T) {
	tests := []struct {
		name        string
		income      int64
		dependents  int
		installment string
		want        int
	}{
		// 2000 / 6 * 1.5 = 500
		{"2000 over 3 at limit", 2000, 3, "500", 0},
		{"2000 over 3 just over", 2000, 3, "500.01", 20},
		// 5000 / 6 * 1.5 = 1250
		{"5000 over 3 at limit", 5000, 3, "1250", 0},
		{"5000 over 3 just over", 5000, 3, "1250.01", 20},
		// 10000 / 12 * 1.5 = 1250
		{"10000 over 6 at limit", 10000, 6, "1250", 0},
		{"10000 over 6 just over", 10000, 6, "1250.01", 20},
		{"1000 over 3 at limit", 1000, 3, "250", 0},
		{"7000 over 3 at limit", 7000, 3, "1750", 0},
		{"700 over 7 at limit", 700, 7, "75", 0},
	}

	p := service.NewNewClientPipeline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := model.NewApplicantRecord{
				ClientID:            valueobject.NewClientID(1),
				BureauScore:         700,
				Age:                 40,
				Housing:             valueobject.HousingOwned,
				Dependents:          tt.dependents,
				EstimatedIncome:     decimal.NewFromInt(tt.income),
				ProposedInstallment: decimal.RequireFromString(tt.installment),
			}
			b, err := p.Evaluate(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, partialPoints(t, b, model.RuleInstallment))
			if tt.want == 0 {
				assert.Equal(t, 0, b.Total)
				assert.Equal(t, valueobject.DecisionAccepted, b.Decision)
			}
		})
	}
}
