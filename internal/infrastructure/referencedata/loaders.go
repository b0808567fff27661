// Package referencedata loads the collaborator tables consumed by the
// existing-client pipeline and keeps the current snapshot.
package referencedata

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryRow is a raw row of the credit or origination history.
type HistoryRow struct {
	AssignedAt time.Time
	ClientID   string
	Folio      string
	Result     string
	Source     string
}

// InstallmentRow is a client's monthly installment total.
type InstallmentRow struct {
	Amount   decimal.Decimal
	ClientID string
}

// CollectionsRow is a client's collections-management tag.
type CollectionsRow struct {
	ClientID string
	Status   string
}

// BehaviorRow carries the late-payment flag derived from the behavior vector.
type BehaviorRow struct {
	ClientID string
	Late     bool
}

type HistoryLoader interface {
	LoadHistory(ctx context.Context) ([]HistoryRow, error)
}

type InstallmentLoader interface {
	LoadInstallments(ctx context.Context) ([]InstallmentRow, error)
}

type CollectionsLoader interface {
	LoadCollections(ctx context.Context) ([]CollectionsRow, error)
}

type BehaviorLoader interface {
	LoadBehavior(ctx context.Context) ([]BehaviorRow, error)
}
