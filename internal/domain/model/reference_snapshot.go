package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

// ReferenceSnapshot is the materialized set of collaborator tables used by the
// existing-client pipeline. A snapshot is never mutated once published.
type ReferenceSnapshot struct {
	LoadedAt     time.Time                 `json:"loaded_at"`
	Installments map[int64]decimal.Decimal `json:"installments"`
	Collections  map[int64]string          `json:"collections"`
	LateBehavior map[int64]bool            `json:"late_behavior"`
	History      []CreditRecord            `json:"history"`
}

// NewReferenceSnapshot assembles a snapshot. Nil maps are replaced by empty ones.
func NewReferenceSnapshot(
	history []CreditRecord,
	installments map[int64]decimal.Decimal,
	collections map[int64]string,
	lateBehavior map[int64]bool,
	loadedAt time.Time,
) *ReferenceSnapshot {
	if installments == nil {
		installments = map[int64]decimal.Decimal{}
	}
	if collections == nil {
		collections = map[int64]string{}
	}
	if lateBehavior == nil {
		lateBehavior = map[int64]bool{}
	}
	return &ReferenceSnapshot{
		History:      history,
		Installments: installments,
		Collections:  collections,
		LateBehavior: lateBehavior,
		LoadedAt:     loadedAt,
	}
}

// InstallmentFor returns the aggregated historical installment, if any.
func (s *ReferenceSnapshot) InstallmentFor(id valueobject.ClientID) decimal.NullDecimal {
	if id.IsNull() {
		return decimal.NullDecimal{}
	}
	v, ok := s.Installments[id.Int64()]
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: v, Valid: true}
}

// CollectionsFor returns the collections tag, or the absent status.
func (s *ReferenceSnapshot) CollectionsFor(id valueobject.ClientID) valueobject.CollectionsStatus {
	if id.IsNull() {
		return valueobject.CollectionsStatus{}
	}
	return valueobject.ParseCollectionsStatus(s.Collections[id.Int64()])
}

// LateBehaviorFor reports whether the behavior vector flagged the client.
func (s *ReferenceSnapshot) LateBehaviorFor(id valueobject.ClientID) bool {
	if id.IsNull() {
		return false
	}
	return s.LateBehavior[id.Int64()]
}

// Stats returns the size of each table.
func (s *ReferenceSnapshot) Stats() SnapshotStats {
	return SnapshotStats{
		HistoryRows:  len(s.History),
		Installments: len(s.Installments),
		Collections:  len(s.Collections),
		LateBehavior: len(s.LateBehavior),
		LoadedAt:     s.LoadedAt,
	}
}

// SnapshotStats summarizes a snapshot for refresh reporting.
type SnapshotStats struct {
	LoadedAt     time.Time
	HistoryRows  int
	Installments int
	Collections  int
	LateBehavior int
}
