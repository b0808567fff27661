package referencedata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	historyQuery = `
SELECT client_id, folio, assigned_at, result, source FROM (
	SELECT 1 AS source_rank, id, client_id::text AS client_id, folio, assigned_at, result, 'CREDITO' AS source
	FROM credit_records
	UNION ALL
	SELECT 2, id, client_id::text, folio, assigned_at, status, 'ORIGINACION'
	FROM origination_records
) history
ORDER BY source_rank, id`

	installmentsQuery = `
SELECT client_id::text, COALESCE(SUM(monthly_installment), 0)
FROM portfolio_daily
GROUP BY client_id
ORDER BY client_id`

	collectionsQuery = `
SELECT client_id::text, result
FROM collections_model
ORDER BY id`
)

// SQLSource reads the history, installment, and collections tables from the
// portfolio warehouse.
type SQLSource struct {
	db *sql.DB
}

// NewSQLSource creates a new SQLSource.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// LoadHistory returns credit rows followed by origination rows.
func (s *SQLSource) LoadHistory(ctx context.Context) ([]HistoryRow, error) {
	rows, err := s.db.QueryContext(ctx, historyQuery)
	if err != nil {
		return nil, fmt.Errorf("referencedata: query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var (
			clientID, folio, result sql.NullString
			assignedAt              sql.NullTime
			source                  string
		)
		if err := rows.Scan(&clientID, &folio, &assignedAt, &result, &source); err != nil {
			return nil, fmt.Errorf("referencedata: scan history: %w", err)
		}
		out = append(out, HistoryRow{
			ClientID:   clientID.String,
			Folio:      folio.String,
			AssignedAt: assignedAt.Time,
			Result:     result.String,
			Source:     source,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("referencedata: iterate history: %w", err)
	}
	return out, nil
}

// LoadInstallments returns the summed monthly installment per client.
func (s *SQLSource) LoadInstallments(ctx context.Context) ([]InstallmentRow, error) {
	rows, err := s.db.QueryContext(ctx, installmentsQuery)
	if err != nil {
		return nil, fmt.Errorf("referencedata: query installments: %w", err)
	}
	defer rows.Close()

	var out []InstallmentRow
	for rows.Next() {
		var (
			clientID sql.NullString
			amount   decimal.Decimal
		)
		if err := rows.Scan(&clientID, &amount); err != nil {
			return nil, fmt.Errorf("referencedata: scan installments: %w", err)
		}
		out = append(out, InstallmentRow{ClientID: clientID.String, Amount: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("referencedata: iterate installments: %w", err)
	}
	return out, nil
}

// LoadCollections returns the collections tags in table order.
func (s *SQLSource) LoadCollections(ctx context.Context) ([]CollectionsRow, error) {
	rows, err := s.db.QueryContext(ctx, collectionsQuery)
	if err != nil {
		return nil, fmt.Errorf("referencedata: query collections: %w", err)
	}
	defer rows.Close()

	var out []CollectionsRow
	for rows.Next() {
		var clientID, status sql.NullString
		if err := rows.Scan(&clientID, &status); err != nil {
			return nil, fmt.Errorf("referencedata: scan collections: %w", err)
		}
		out = append(out, CollectionsRow{ClientID: clientID.String, Status: status.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("referencedata: iterate collections: %w", err)
	}
	return out, nil
}
