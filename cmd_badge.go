package main

import (
	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/badge"
	"github.com/jebel-quant/rhiza/pkg/cliutil"
)

func init() {
	var flags struct {
		Coverage string
		Out      string
	}
	cmd := &cobra.Command{
		Use:   "coverage-badge [flags]",
		Short: "Generate a shields.io endpoint JSON from a coverage report",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		Long: "Read totals.percent_covered from a coverage JSON report and write a " +
			"shields.io endpoint JSON for the README's coverage badge.  A missing " +
			"report is skipped rather than failing the build.",

		RunE: func(cmd *cobra.Command, args []string) error {
			return badge.Generate(cmd.Context(), flags.Coverage, flags.Out)
		},
	}
	cmd.Flags().StringVar(&flags.Coverage, "coverage", "_tests/coverage.json",
		"Path of the coverage JSON report")
	cmd.Flags().StringVar(&flags.Out, "out", "_book/tests/coverage-badge.json",
		"Path to write the badge endpoint JSON to")

	argparser.AddCommand(cmd)
}
