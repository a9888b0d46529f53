package main

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/hatvp-dataviz/internal/debug"
	"github.com/hatvp-dataviz/internal/split"
)

func (a *app) createSplitCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split the combined declarations export into one file per declaration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := a.cfg.Split.Input
			if len(args) > 0 {
				input = args[0]
			}
			dir := lo.CoalesceOrEmpty(outputDir, a.cfg.Split.OutputDir)

			done := debug.Timing(a.logger, "split "+input)
			stats, err := split.NewSplitter(dir, a.logger).SplitFile(input)
			done()
			if err != nil {
				return err
			}

			printCounts(os.Stdout, dir, [][2]any{
				{"declarations", stats.Declarations},
				{"written", stats.Written},
				{"skipped", stats.Skipped},
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	return cmd
}
