package referencedata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
)

// Column aliases cover both the normalized headers and the headers of the
// spreadsheet exports.
var (
	clientIDColumns    = []string{"client_id", "ID_CLIENTE", "SapIdCliente", "Cliente"}
	folioColumns       = []string{"folio", "FOLIO"}
	assignedAtColumns  = []string{"assigned_at", "Fecha de asignación", "Fecha de asignacion"}
	resultColumns      = []string{"result", "Resultado", "Estatus", "status"}
	sourceColumns      = []string{"source"}
	installmentColumns = []string{"monthly_installment", "Mensualidad"}
	collectionsColumns = []string{"status", "result", "Marca_Gestiones", "Resultado"}
)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05", "02/01/2006"}

// CSVPaths locates the exported tables. Empty paths yield empty tables.
type CSVPaths struct {
	History      string
	Installments string
	Collections  string
	Behavior     string
}

// CSVSource reads the reference tables from CSV exports.
type CSVSource struct {
	behaviorTags map[string]struct{}
	paths        CSVPaths
}

// NewCSVSource creates a CSVSource. A behavior row is flagged late when any
// of its cells equals one of behaviorTags.
func NewCSVSource(paths CSVPaths, behaviorTags []string) *CSVSource {
	tags := make(map[string]struct{}, len(behaviorTags))
	for _, t := range behaviorTags {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tags[t] = struct{}{}
		}
	}
	return &CSVSource{paths: paths, behaviorTags: tags}
}

type csvRow map[string]string

func (r csvRow) get(names []string) (string, bool) {
	for _, n := range names {
		if v, ok := r[n]; ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// loadCSV reads a CSV file with a header row.
func loadCSV(path string) ([]csvRow, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("referencedata: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("referencedata: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("referencedata: %s is empty (no header row)", path)
	}

	headers := records[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	rows := make([]csvRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, nil, fmt.Errorf("referencedata: %s row %d has %d columns, expected %d", path, i+2, len(record), len(headers))
		}
		row := make(csvRow, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

func requireColumn(path string, headers []string, names []string) error {
	for _, h := range headers {
		for _, n := range names {
			if h == n {
				return nil
			}
		}
	}
	return fmt.Errorf("referencedata: %s has no %s column", path, names[0])
}

// LoadHistory reads the consolidated history export.
func (s *CSVSource) LoadHistory(_ context.Context) ([]HistoryRow, error) {
	if s.paths.History == "" {
		return nil, nil
	}
	rows, headers, err := loadCSV(s.paths.History)
	if err != nil {
		return nil, err
	}
	if err := requireColumn(s.paths.History, headers, clientIDColumns); err != nil {
		return nil, err
	}

	out := make([]HistoryRow, 0, len(rows))
	for _, r := range rows {
		id, _ := r.get(clientIDColumns)
		folio, _ := r.get(folioColumns)
		result, _ := r.get(resultColumns)
		rawDate, _ := r.get(assignedAtColumns)
		source, ok := r.get(sourceColumns)
		if !ok || source == "" {
			source = model.SourceCredit
		}
		out = append(out, HistoryRow{
			ClientID:   id,
			Folio:      folio,
			AssignedAt: parseDate(rawDate),
			Result:     result,
			Source:     strings.ToUpper(source),
		})
	}
	return out, nil
}

// LoadInstallments reads per-contract installments. Rows are summed per
// client by the provider; blank amounts count as zero.
func (s *CSVSource) LoadInstallments(_ context.Context) ([]InstallmentRow, error) {
	if s.paths.Installments == "" {
		return nil, nil
	}
	rows, headers, err := loadCSV(s.paths.Installments)
	if err != nil {
		return nil, err
	}
	if err := requireColumn(s.paths.Installments, headers, installmentColumns); err != nil {
		return nil, err
	}

	out := make([]InstallmentRow, 0, len(rows))
	for i, r := range rows {
		id, _ := r.get(clientIDColumns)
		raw, _ := r.get(installmentColumns)
		amount := decimal.Zero
		if raw != "" {
			amount, err = decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("referencedata: %s row %d: invalid installment %q: %w", s.paths.Installments, i+2, raw, err)
			}
		}
		out = append(out, InstallmentRow{ClientID: id, Amount: amount})
	}
	return out, nil
}

// LoadCollections reads the collections model export.
func (s *CSVSource) LoadCollections(_ context.Context) ([]CollectionsRow, error) {
	if s.paths.Collections == "" {
		return nil, nil
	}
	rows, headers, err := loadCSV(s.paths.Collections)
	if err != nil {
		return nil, err
	}
	if err := requireColumn(s.paths.Collections, headers, collectionsColumns); err != nil {
		return nil, err
	}

	out := make([]CollectionsRow, 0, len(rows))
	for _, r := range rows {
		id, _ := r.get(clientIDColumns)
		status, _ := r.get(collectionsColumns)
		out = append(out, CollectionsRow{ClientID: id, Status: status})
	}
	return out, nil
}

// LoadBehavior reads the payment-behavior vector and flags rows containing
// one of the configured tags in any non-identifier cell.
func (s *CSVSource) LoadBehavior(_ context.Context) ([]BehaviorRow, error) {
	if s.paths.Behavior == "" {
		return nil, nil
	}
	rows, headers, err := loadCSV(s.paths.Behavior)
	if err != nil {
		return nil, err
	}
	if err := requireColumn(s.paths.Behavior, headers, clientIDColumns); err != nil {
		return nil, err
	}

	idColumns := make(map[string]struct{}, len(clientIDColumns))
	for _, c := range clientIDColumns {
		idColumns[c] = struct{}{}
	}

	out := make([]BehaviorRow, 0, len(rows))
	for _, r := range rows {
		id, _ := r.get(clientIDColumns)
		late := false
		for col, cell := range r {
			if _, isID := idColumns[col]; isID {
				continue
			}
			if _, tagged := s.behaviorTags[strings.ToUpper(strings.TrimSpace(cell))]; tagged {
				late = true
				break
			}
		}
		out = append(out, BehaviorRow{ClientID: id, Late: late})
	}
	return out, nil
}

func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
