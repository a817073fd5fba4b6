package main

import (
	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
	"github.com/jebel-quant/rhiza/pkg/template"
)

func init() {
	var flags template.Options
	cmd := &cobra.Command{
		Use:   "inject [flags] TARGET",
		Short: "Materialize the template files into a git repository",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		Long: "Materialize the configured template files into the TARGET git repository, " +
			"creating a default .github/template.yml on first run." +
			"\n\n" +
			"This is a one-shot snapshot, not a merge; re-run it to update the " +
			"templates explicitly.  Review the result with `git status` and " +
			"`git diff` before committing.",

		RunE: func(cmd *cobra.Command, args []string) error {
			return template.Materialize(cmd.Context(), args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.Branch, "branch", "b", "main",
		"Template branch to use when creating a fresh template.yml")
	cmd.Flags().BoolVarP(&flags.Force, "force", "y", false,
		"Overwrite include paths that already exist in TARGET")

	argparser.AddCommand(cmd)
}
