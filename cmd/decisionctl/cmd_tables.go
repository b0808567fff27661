package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/rules"
)

func newTablesCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the bureau tables",
		Long: `List the built-in bureau tables, or the table in --rules-file.

With --output yaml the tables are printed in the rules-file format, so the
output can be edited and fed back through --rules-file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables := service.BuiltinBureauTables()
			if global.rulesFile != "" {
				t, err := rules.Load(global.rulesFile)
				if err != nil {
					return err
				}
				tables = []service.BureauTable{t}
			}

			w := cmd.OutOrStdout()
			switch global.output {
			case formatYAML:
				for i, t := range tables {
					data, err := rules.Marshal(t)
					if err != nil {
						return err
					}
					if i > 0 {
						fmt.Fprintln(w, "---")
					}
					if _, err := w.Write(data); err != nil {
						return err
					}
				}
				return nil
			case formatJSON:
				return writeStructured(w, formatJSON, tables)
			}

			for i, t := range tables {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s\n", t.Name)
				writeBandSet(w, "no-hit", t.NoHit)
				writeBandSet(w, "bureau", t.Bureau)
			}
			return nil
		},
	}
}

func writeBandSet(w io.Writer, label string, s service.BandSet) {
	fmt.Fprintf(w, "  %s:\n", label)
	for _, b := range s.Bands {
		fmt.Fprintf(w, "    %-20s %d\n", bandRange(b), b.Points)
	}
	fmt.Fprintf(w, "    %-20s %d\n", "otherwise", s.Fallback)
}

func bandRange(b service.Band) string {
	lo, hi := "(", ")"
	if b.MinInclusive {
		lo = "["
	}
	if b.MaxInclusive {
		hi = "]"
	}
	minS, maxS := fmt.Sprintf("%d", b.Min), fmt.Sprintf("%d", b.Max)
	if b.NoMin {
		minS, lo = "-inf", "("
	}
	if b.NoMax {
		maxS, hi = "inf", ")"
	}
	return lo + minS + ", " + maxS + hi
}
