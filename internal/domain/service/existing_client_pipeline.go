package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

const (
	// LateBehaviorPenalty is charged when the behavior vector carries AP3 or AP4.
	LateBehaviorPenalty = 30
	// InstallmentPenalty is charged when the new installment more than doubles the current one.
	InstallmentPenalty = 40
	// ExistingClientAcceptThreshold is the highest total that is still accepted.
	ExistingClientAcceptThreshold = 50
)

var installmentMultiplier = decimal.NewFromInt(2)

// NullPolicy controls how non-numeric partials affect the decision.
type NullPolicy string

const (
	// NullPolicyCoerce counts non-numeric partials as 0 and decides on the remaining total.
	NullPolicyCoerce NullPolicy = "coerce"
	// NullPolicyNotApplicable answers "No aplica" when the bureau or collections partial is non-numeric.
	NullPolicyNotApplicable NullPolicy = "not-applicable"
)

// ParseNullPolicy converts a configuration value.
func ParseNullPolicy(s string) (NullPolicy, error) {
	switch NullPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case NullPolicyCoerce, "":
		return NullPolicyCoerce, nil
	case NullPolicyNotApplicable:
		return NullPolicyNotApplicable, nil
	default:
		return "", fmt.Errorf("%w: unknown null policy %q", ErrInvalidInput, s)
	}
}

// ExistingClientInput is what the evaluator enters for a portfolio client.
type ExistingClientInput struct {
	ProposedInstallment decimal.Decimal
	TargetID            valueobject.ClientID
	BureauScore         valueobject.Score
	NoHitScore          valueobject.Score
}

// ScoredRecord pairs a joined record with its breakdown.
type ScoredRecord struct {
	Record    model.ClientRecord
	Breakdown model.ScoreBreakdown
}

// ExistingClientPipeline scores portfolio clients against their history.
type ExistingClientPipeline struct {
	table  BureauTable
	policy NullPolicy
}

// NewExistingClientPipeline creates a pipeline for the given bureau table.
func NewExistingClientPipeline(table BureauTable, policy NullPolicy) *ExistingClientPipeline {
	if policy == "" {
		policy = NullPolicyCoerce
	}
	return &ExistingClientPipeline{table: table, policy: policy}
}

// Table returns the bureau table in use.
func (p *ExistingClientPipeline) Table() BureauTable {
	return p.table
}

// Join left-joins every historical record with the reference tables.
// The evaluator's scores apply to every row.
func (p *ExistingClientPipeline) Join(in ExistingClientInput, snapshot *model.ReferenceSnapshot) []model.ClientRecord {
	records := make([]model.ClientRecord, 0, len(snapshot.History))
	for _, h := range snapshot.History {
		records = append(records, model.ClientRecord{
			ClientID:              h.ClientID,
			History:               h,
			BureauScore:           in.BureauScore,
			NoHitScore:            in.NoHitScore,
			HistoricalInstallment: snapshot.InstallmentFor(h.ClientID),
			Collections:           snapshot.CollectionsFor(h.ClientID),
			RecentLateBehavior:    snapshot.LateBehaviorFor(h.ClientID),
		})
	}
	return records
}

// ScoreAll scores every historical record. A problem with one record never
// aborts the batch; it is reported through the record's conditions.
func (p *ExistingClientPipeline) ScoreAll(in ExistingClientInput, snapshot *model.ReferenceSnapshot) []ScoredRecord {
	records := p.Join(in, snapshot)
	out := make([]ScoredRecord, 0, len(records))
	for _, r := range records {
		out = append(out, ScoredRecord{Record: r, Breakdown: p.ScoreRecord(r, in.ProposedInstallment)})
	}
	return out
}

// Evaluate scores the target client. It returns ErrClientNotFound when no
// record matches and ErrDataInconsistency, together with the breakdown,
// when both bureau scores are set.
func (p *ExistingClientPipeline) Evaluate(in ExistingClientInput, snapshot *model.ReferenceSnapshot) (model.ScoreBreakdown, error) {
	if in.TargetID.IsNull() {
		return model.ScoreBreakdown{}, ErrClientNotFound
	}

	for _, scored := range p.ScoreAll(in, snapshot) {
		if !scored.Record.ClientID.Matches(in.TargetID) {
			continue
		}
		b := scored.Breakdown
		if b.BureauBranch == valueobject.BranchInconsistent {
			return b, fmt.Errorf("%w: bureau score %d, no-hit score %d",
				ErrDataInconsistency, in.BureauScore.Value(), in.NoHitScore.Value())
		}
		return b, nil
	}

	return model.ScoreBreakdown{}, ErrClientNotFound
}

// ScoreRecord applies the four rules to a joined record.
func (p *ExistingClientPipeline) ScoreRecord(r model.ClientRecord, proposed decimal.Decimal) model.ScoreBreakdown {
	branch, bureau := p.table.Score(r.BureauScore, r.NoHitScore)
	collections := CollectionsScore(r.Collections)

	b := model.ScoreBreakdown{
		ClientID:     r.ClientID,
		BureauBranch: branch,
		Partials: []model.RuleScore{
			{Rule: model.RulePaymentBehavior, Score: BehaviorScore(r.RecentLateBehavior)},
			{Rule: model.RuleInstallment, Score: InstallmentScore(r.HistoricalInstallment, proposed)},
			{Rule: model.RuleBureau, Score: bureau},
			{Rule: model.RuleCollections, Score: collections},
		},
	}

	switch bureau.Kind() {
	case valueobject.PartialNoHistory:
		b.Conditions = append(b.Conditions, valueobject.ConditionNoCreditHistory)
	case valueobject.PartialInconsistent:
		b.Conditions = append(b.Conditions, valueobject.ConditionDataInconsistency)
	}
	if !collections.IsNumeric() {
		b.Conditions = append(b.Conditions, valueobject.ConditionUnknownCategory)
	}

	numeric := 0
	for _, part := range b.Partials {
		if part.Score.IsNumeric() {
			b.Total += part.Score.Points()
			numeric++
		}
	}
	b.TotalDefined = numeric > 0

	switch {
	case !b.TotalDefined, bureau.Kind() == valueobject.PartialInconsistent:
		b.Decision = valueobject.DecisionNotApplicable
	case p.policy == NullPolicyNotApplicable && (!bureau.IsNumeric() || !collections.IsNumeric()):
		b.Decision = valueobject.DecisionNotApplicable
	case b.Total <= ExistingClientAcceptThreshold:
		b.Decision = valueobject.DecisionAccepted
	default:
		b.Decision = valueobject.DecisionRejected
	}

	return b
}

// BehaviorScore charges the late-payment penalty.
func BehaviorScore(late bool) valueobject.PartialScore {
	if late {
		return valueobject.PointsOf(LateBehaviorPenalty)
	}
	return valueobject.PointsOf(0)
}

// InstallmentScore charges the affordability penalty when the combined
// installment exceeds twice the historical one. Without a historical
// installment there is nothing to compare against.
func InstallmentScore(historical decimal.NullDecimal, proposed decimal.Decimal) valueobject.PartialScore {
	if !historical.Valid || historical.Decimal.IsZero() {
		return valueobject.PointsOf(0)
	}
	total := historical.Decimal.Add(proposed)
	if total.GreaterThan(historical.Decimal.Mul(installmentMultiplier)) {
		return valueobject.PointsOf(InstallmentPenalty)
	}
	return valueobject.PointsOf(0)
}

// CollectionsScore maps a collections tag to points. Unknown tags are null.
func CollectionsScore(s valueobject.CollectionsStatus) valueobject.PartialScore {
	if s.IsAbsent() {
		s = valueobject.CollectionsNoRecord
	}
	if !s.IsKnown() {
		return valueobject.NullScore
	}
	switch s {
	case valueobject.CollectionsExcellent:
		return valueobject.PointsOf(0)
	case valueobject.CollectionsGood, valueobject.CollectionsNoRecord:
		return valueobject.PointsOf(10)
	default:
		return valueobject.PointsOf(20)
	}
}
