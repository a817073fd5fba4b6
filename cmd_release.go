package main

import (
	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
	"github.com/jebel-quant/rhiza/pkg/release"
)

func init() {
	var flags release.Options
	cmd := &cobra.Command{
		Use:   "release [flags]",
		Short: "Tag the current version and push the tag to origin",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		Long: "Create a \"v<version>\" git tag from the version in pyproject.toml and " +
			"push it to origin, triggering the release workflow.  Safety checks: " +
			"warns when off the default branch, refuses a dirty working tree, " +
			"refuses a branch that is behind or diverged from its upstream, and " +
			"refuses a tag that already exists on the remote.",

		RunE: func(cmd *cobra.Command, args []string) error {
			return release.Run(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringVar(&flags.Dir, "dir", ".",
		"Git repository to release from")
	cmd.Flags().StringVar(&flags.PyProject, "pyproject", "pyproject.toml",
		"Path of the pyproject.toml to read the version from")
	cmd.Flags().BoolVar(&flags.Yes, "yes", false,
		"Answer yes to every prompt (for non-interactive use)")

	argparser.AddCommand(cmd)
}
