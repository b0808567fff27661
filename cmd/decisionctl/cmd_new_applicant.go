package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sergiomillane/motor-decisiones/internal/application/dto"
	"github.com/sergiomillane/motor-decisiones/internal/application/usecase"
	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
)

// Form defaults of the applicant form.
const (
	defaultClientID    = "53535"
	defaultBureauScore = 530
	defaultNoHitScore  = 0
	defaultAge         = 26
	defaultHousing     = "RENTADA"
	defaultDependents  = 4
	defaultIncome      = "9000"
	defaultInstallment = "1000"
)

type newApplicantOptions struct {
	clientID    string
	housing     string
	income      string
	installment string
	bureauScore int
	noHitScore  int
	age         int
	dependents  int
}

func newNewApplicantCommand(global *globalOptions) *cobra.Command {
	opts := &newApplicantOptions{}

	cmd := &cobra.Command{
		Use:   "new-applicant",
		Short: "Score an applicant without portfolio history",
		Long: `Score an applicant from the application form.

Every flag defaults to the form's initial value, so running the command with
no flags reproduces the form's first evaluation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			income, err := decimal.NewFromString(opts.income)
			if err != nil {
				return err
			}
			installment, err := decimal.NewFromString(opts.installment)
			if err != nil {
				return err
			}

			uc := usecase.NewEvaluateNewApplicant(nil, nil, service.NewNewClientPipeline(), global.logger())
			resp, err := uc.Execute(cmd.Context(), dto.EvaluateNewApplicantRequest{
				ClientID:            opts.clientID,
				BureauScore:         opts.bureauScore,
				NoHitScore:          opts.noHitScore,
				Age:                 opts.age,
				Housing:             opts.housing,
				Dependents:          opts.dependents,
				EstimatedIncome:     income,
				ProposedInstallment: installment,
			})
			if err != nil {
				return err
			}
			return writeEvaluation(cmd.OutOrStdout(), global.output, resp)
		},
	}

	cmd.Flags().StringVar(&opts.clientID, "client-id", defaultClientID, "Client identifier")
	cmd.Flags().IntVar(&opts.bureauScore, "bureau-score", defaultBureauScore, "Bureau score")
	cmd.Flags().IntVar(&opts.noHitScore, "no-hit-score", defaultNoHitScore, "No-hit score")
	cmd.Flags().IntVar(&opts.age, "age", defaultAge, "Applicant age in years")
	cmd.Flags().StringVar(&opts.housing, "housing", defaultHousing, "Housing status: RENTADA, PROPIA, TRASPASO, or other")
	cmd.Flags().IntVar(&opts.dependents, "dependents", defaultDependents, "Number of economic dependents")
	cmd.Flags().StringVar(&opts.income, "income", defaultIncome, "Estimated monthly income")
	cmd.Flags().StringVar(&opts.installment, "installment", defaultInstallment, "Proposed monthly installment")

	return cmd
}
