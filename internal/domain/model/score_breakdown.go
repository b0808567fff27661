package model

import "github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"

// RuleName identifies a scoring rule in a breakdown.
type RuleName string

const (
	RulePaymentBehavior RuleName = "payment_behavior"
	RuleInstallment     RuleName = "installment_affordability"
	RuleBureau          RuleName = "bureau_score"
	RuleCollections     RuleName = "collections_status"
	RuleAge             RuleName = "age"
	RuleHousing         RuleName = "housing_status"
)

// RuleScore is one rule's contribution.
type RuleScore struct {
	Rule  RuleName
	Score valueobject.PartialScore
}

// ScoreBreakdown is the per-rule result of a pipeline plus its decision.
// Partials keep rule order so renderings are stable.
type ScoreBreakdown struct {
	Decision     valueobject.Decision
	Partials     []RuleScore
	Conditions   []valueobject.Condition
	ClientID     valueobject.ClientID
	Total        int
	BureauBranch valueobject.BureauBranch
	TotalDefined bool
}

// Partial returns the contribution of a rule.
func (b ScoreBreakdown) Partial(rule RuleName) (valueobject.PartialScore, bool) {
	for _, p := range b.Partials {
		if p.Rule == rule {
			return p.Score, true
		}
	}
	return valueobject.PartialScore{}, false
}

// HasCondition reports whether a condition was raised.
func (b ScoreBreakdown) HasCondition(c valueobject.Condition) bool {
	for _, got := range b.Conditions {
		if got == c {
			return true
		}
	}
	return false
}

// PointsByRule returns the numeric contributions keyed by rule name.
// Sentinel partials are omitted.
func (b ScoreBreakdown) PointsByRule() map[string]int {
	out := make(map[string]int, len(b.Partials))
	for _, p := range b.Partials {
		if p.Score.IsNumeric() {
			out[string(p.Rule)] = p.Score.Points()
		}
	}
	return out
}

// ConditionNames returns the raised conditions as strings.
func (b ScoreBreakdown) ConditionNames() []string {
	out := make([]string, 0, len(b.Conditions))
	for _, c := range b.Conditions {
		out = append(out, c.String())
	}
	return out
}
