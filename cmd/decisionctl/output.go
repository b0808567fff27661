package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sergiomillane/motor-decisiones/internal/application/dto"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

// writeStructured renders v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

func writeEvaluation(w io.Writer, format string, r dto.EvaluationResponse) error {
	if format != formatText {
		return writeStructured(w, format, r)
	}

	fmt.Fprintf(w, "%-16s %s\n", "Client:", r.ClientID)
	fmt.Fprintf(w, "%-16s %s\n", "Pipeline:", r.Pipeline)
	if r.BureauBranch != "" {
		fmt.Fprintf(w, "%-16s %s\n", "Bureau branch:", r.BureauBranch)
	}
	fmt.Fprintln(w)
	for _, p := range r.Partials {
		fmt.Fprintf(w, "  %-28s %s\n", p.Rule, p.Display)
	}
	fmt.Fprintln(w)
	total := "N/A"
	if r.TotalDefined {
		total = fmt.Sprintf("%d", r.Total)
	}
	fmt.Fprintf(w, "%-16s %s\n", "Total:", total)
	fmt.Fprintf(w, "%-16s %s\n", "Decision:", r.DecisionLabel)
	if len(r.Conditions) > 0 {
		fmt.Fprintf(w, "%-16s %s\n", "Conditions:", strings.Join(r.Conditions, ", "))
	}
	return nil
}

// writeBatch prints one line per scored record.
func writeBatch(w io.Writer, format string, rows []dto.EvaluationResponse) error {
	if format != formatText {
		return writeStructured(w, format, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}
	rules := make([]string, 0, len(rows[0].Partials))
	for _, p := range rows[0].Partials {
		rules = append(rules, p.Rule)
	}

	fmt.Fprintf(w, "%-12s", "CLIENT")
	for _, r := range rules {
		fmt.Fprintf(w, "  %-26s", r)
	}
	fmt.Fprintf(w, "  %-6s  %s\n", "TOTAL", "DECISION")

	for _, row := range rows {
		fmt.Fprintf(w, "%-12s", row.ClientID)
		for _, p := range row.Partials {
			fmt.Fprintf(w, "  %-26s", p.Display)
		}
		total := "N/A"
		if row.TotalDefined {
			total = fmt.Sprintf("%d", row.Total)
		}
		fmt.Fprintf(w, "  %-6s  %s\n", total, row.DecisionLabel)
	}
	return nil
}
