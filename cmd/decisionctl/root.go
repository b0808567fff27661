package main

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/config"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/rules"
	"github.com/sergiomillane/motor-decisiones/pkg/observability"
)

var version = "dev"

// globalOptions are shared by every subcommand.
type globalOptions struct {
	output     string
	envFile    string
	debug      bool
	bureauName string
	rulesFile  string
	nullPolicy string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "decisionctl",
		Short: "Score credit applications offline",
		Long: `decisionctl runs the credit decision pipelines without the service.

New applicants are scored from the application form. Existing clients are
scored against CSV exports of the portfolio tables.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json, or yaml")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Load environment variables from this file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.bureauName, "bureau-table", "", "Built-in bureau table (default from BUREAU_TABLE)")
	cmd.PersistentFlags().StringVar(&opts.rulesFile, "rules-file", "", "YAML bureau table overriding --bureau-table")
	cmd.PersistentFlags().StringVar(&opts.nullPolicy, "null-policy", "", "coerce or not-applicable (default from NULL_POLICY)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if opts.envFile != "" {
			if err := godotenv.Load(opts.envFile); err != nil {
				return fmt.Errorf("loading env file: %w", err)
			}
		}
		level := "warn"
		if opts.debug {
			level = "debug"
		}
		observability.InitLogger(observability.LogConfig{Output: cmd.ErrOrStderr(), Level: level, Format: "text"})
		return validateFormat(opts.output)
	}

	cmd.AddCommand(newNewApplicantCommand(opts))
	cmd.AddCommand(newExistingClientCommand(opts))
	cmd.AddCommand(newTablesCommand(opts))

	return cmd
}

// existingClientPipeline resolves the bureau table and null policy from the
// flags, falling back to the environment.
func (o *globalOptions) existingClientPipeline() (*service.ExistingClientPipeline, error) {
	cfg := config.Load()

	name := o.bureauName
	if name == "" {
		name = cfg.Rules.BureauTable
	}
	path := o.rulesFile
	if path == "" {
		path = cfg.Rules.RulesFile
	}
	table, err := rules.Resolve(name, path)
	if err != nil {
		return nil, err
	}

	policyName := o.nullPolicy
	if policyName == "" {
		policyName = cfg.Rules.NullPolicy
	}
	policy, err := service.ParseNullPolicy(policyName)
	if err != nil {
		return nil, err
	}
	return service.NewExistingClientPipeline(table, policy), nil
}

func (o *globalOptions) logger() *slog.Logger {
	return slog.Default()
}
