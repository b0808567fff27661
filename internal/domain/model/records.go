package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

// Source sheets of the consolidated credit history.
const (
	SourceCredit      = "CREDITO"
	SourceOrigination = "ORIGINACION"
)

// CreditRecord is one row of the consolidated credit and origination history.
type CreditRecord struct {
	AssignedAt time.Time            `json:"assigned_at"`
	Folio      string               `json:"folio"`
	Result     string               `json:"result"`
	Source     string               `json:"source"`
	ClientID   valueobject.ClientID `json:"client_id"`
}

// ClientRecord is a historical record joined with the reference tables and
// the scores entered by the evaluator. Attributes missing from a reference
// table stay absent rather than zero.
type ClientRecord struct {
	HistoricalInstallment decimal.NullDecimal
	Collections           valueobject.CollectionsStatus
	History               CreditRecord
	BureauScore           valueobject.Score
	NoHitScore            valueobject.Score
	ClientID              valueobject.ClientID
	RecentLateBehavior    bool
}

// NewApplicantRecord holds the attributes captured by the new-applicant form.
type NewApplicantRecord struct {
	EstimatedIncome     decimal.Decimal
	ProposedInstallment decimal.Decimal
	Housing             valueobject.HousingStatus
	ClientID            valueobject.ClientID
	BureauScore         int
	NoHitScore          int
	Age                 int
	Dependents          int
}
