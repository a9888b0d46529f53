package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/hatvp-dataviz/internal/etl"
	"github.com/hatvp-dataviz/internal/holdings"
	"github.com/hatvp-dataviz/internal/table"
)

func (a *app) createHoldingsCmd() *cobra.Command {
	holdingsCmd := &cobra.Command{
		Use:   "holdings",
		Short: "Normalize company holdings and report them per person",
	}

	holdingsCmd.AddCommand(a.createHoldingsNormalizeCmd())
	holdingsCmd.AddCommand(a.createHoldingsReportCmd())

	return holdingsCmd
}

func (a *app) createHoldingsNormalizeCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Clean company names and drop undisclosed holdings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			participations, err := readTable(lo.CoalesceOrEmpty(input, a.cfg.Outputs.Participations))
			if err != nil {
				return err
			}

			normalized, err := holdings.Normalize(participations)
			if err != nil {
				return err
			}

			path := lo.CoalesceOrEmpty(output, a.cfg.Outputs.NormalizedHoldings)
			if err := etl.Export(path, normalized); err != nil {
				return err
			}

			a.logger.Info("holdings normalized", "read", participations.Len(), "kept", normalized.Len(), "output", path)
			printCounts(summaryWriter([]export{{path: path}}), holdings.NameNormalized, [][2]any{
				{"participations", participations.Len()},
				{"kept", normalized.Len()},
				{"dropped", participations.Len() - normalized.Len()},
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "participations CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "normalized holdings CSV path, - for stdout")
	return cmd
}

func (a *app) createHoldingsReportCmd() *cobra.Command {
	var input, personal, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate normalized holdings per declarant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := readTable(lo.CoalesceOrEmpty(input, a.cfg.Outputs.NormalizedHoldings))
			if err != nil {
				return err
			}
			people, err := readTable(lo.CoalesceOrEmpty(personal, a.cfg.Outputs.PersonalInfo))
			if err != nil {
				return err
			}

			report, err := holdings.PersonReport(normalized, people)
			if err != nil {
				return err
			}

			path := lo.CoalesceOrEmpty(output, a.cfg.Outputs.HoldingsReport)
			if err := etl.Export(path, report); err != nil {
				return err
			}

			printCounts(summaryWriter([]export{{path: path}}), holdings.NameReport, [][2]any{
				{"holdings", normalized.Len()},
				{"people", report.Len()},
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "normalized holdings CSV")
	cmd.Flags().StringVar(&personal, "personal", "", "personal info CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "report CSV path, - for stdout")
	return cmd
}

func readTable(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return table.ReadCSV(file, path)
}
