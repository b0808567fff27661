package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sergiomillane/motor-decisiones/internal/application/dto"
	"github.com/sergiomillane/motor-decisiones/internal/application/usecase"
	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/config"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/referencedata"
)

type existingClientOptions struct {
	paths        referencedata.CSVPaths
	behaviorTags []string
	clientID     string
	installment  string
	bureauScore  int
	noHitScore   int
	all          bool
}

func newExistingClientCommand(global *globalOptions) *cobra.Command {
	opts := &existingClientOptions{}

	cmd := &cobra.Command{
		Use:   "existing-client",
		Short: "Score a portfolio client against CSV exports",
		Long: `Score a portfolio client against CSV exports of the reference tables.

--history is required. Installments, collections, and the behavior vector
are optional; a missing table leaves its rule at the "no record" value.
Omit --bureau-score or --no-hit-score to leave that score absent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.paths.History == "" {
				return fmt.Errorf("--history is required")
			}
			if !opts.all && opts.clientID == "" {
				return fmt.Errorf("--client-id is required unless --all is set")
			}

			installment, err := decimal.NewFromString(opts.installment)
			if err != nil {
				return fmt.Errorf("invalid --installment: %w", err)
			}

			var bureau, noHit *int
			if cmd.Flags().Changed("bureau-score") {
				bureau = &opts.bureauScore
			}
			if cmd.Flags().Changed("no-hit-score") {
				noHit = &opts.noHitScore
			}

			pipeline, err := global.existingClientPipeline()
			if err != nil {
				return err
			}

			tags := opts.behaviorTags
			if len(tags) == 0 {
				tags = config.Load().ReferenceData.BehaviorTags
			}
			source := referencedata.NewCSVSource(opts.paths, tags)
			provider := referencedata.NewProvider(referencedata.Sources{
				History:      source,
				Installments: source,
				Collections:  source,
				Behavior:     source,
			}, nil, global.logger())
			if err := provider.Refresh(cmd.Context()); err != nil {
				return err
			}

			if opts.all {
				snapshot, err := provider.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				return writeBatch(cmd.OutOrStdout(), global.output, scoreAll(pipeline, snapshot, bureau, noHit, installment))
			}

			uc := usecase.NewEvaluateExistingClient(provider, nil, nil, pipeline, global.logger())
			resp, err := uc.Execute(cmd.Context(), dto.EvaluateExistingClientRequest{
				ClientID:            opts.clientID,
				BureauScore:         bureau,
				NoHitScore:          noHit,
				ProposedInstallment: installment,
			})
			if err != nil && !errors.Is(err, service.ErrDataInconsistency) {
				return err
			}
			if writeErr := writeEvaluation(cmd.OutOrStdout(), global.output, resp); writeErr != nil {
				return writeErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.paths.History, "history", "", "CSV of consolidated credit and origination records")
	cmd.Flags().StringVar(&opts.paths.Installments, "installments", "", "CSV of per-contract monthly installments")
	cmd.Flags().StringVar(&opts.paths.Collections, "collections", "", "CSV of the collections model")
	cmd.Flags().StringVar(&opts.paths.Behavior, "behavior", "", "CSV of the payment-behavior vector")
	cmd.Flags().StringSliceVar(&opts.behaviorTags, "behavior-tags", nil, "Cells that flag late behavior (default from BEHAVIOR_TAGS)")
	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "Client to evaluate")
	cmd.Flags().IntVar(&opts.bureauScore, "bureau-score", 0, "Bureau score entered by the evaluator")
	cmd.Flags().IntVar(&opts.noHitScore, "no-hit-score", 0, "No-hit score entered by the evaluator")
	cmd.Flags().StringVar(&opts.installment, "installment", "0", "Proposed monthly installment")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Score every historical record instead of one client")

	return cmd
}

// scoreAll scores every record in the snapshot with the evaluator's inputs.
func scoreAll(
	pipeline *service.ExistingClientPipeline,
	snapshot *model.ReferenceSnapshot,
	bureau, noHit *int,
	installment decimal.Decimal,
) []dto.EvaluationResponse {
	scored := pipeline.ScoreAll(service.ExistingClientInput{
		BureauScore:         valueobject.ScoreFromPtr(bureau),
		NoHitScore:          valueobject.ScoreFromPtr(noHit),
		ProposedInstallment: installment,
	}, snapshot)

	out := make([]dto.EvaluationResponse, 0, len(scored))
	for _, s := range scored {
		out = append(out, dto.FromBreakdown(model.PipelineExistingClient, s.Breakdown))
	}
	return out
}
