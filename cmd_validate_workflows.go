package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
	"github.com/jebel-quant/rhiza/pkg/workflows"
)

func init() {
	var flagFix bool
	cmd := &cobra.Command{
		Use:   "workflows [flags] FILE...",
		Short: "Check that workflow names carry the required prefix",
		Args:  cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		Long: fmt.Sprintf("Check that every given GitHub Actions workflow file has a top-level "+
			"name starting with %q, so template-provided workflows are recognizable "+
			"in the Actions UI.  With --fix, rewrite the name in place; the command "+
			"still exits non-zero so pre-commit notices the modification.",
			workflows.NamePrefix),

		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				if flagFix {
					modified, err := workflows.Fix(path)
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
						failed = true
						continue
					}
					if modified {
						fmt.Printf("updated %s\n", path)
						failed = true
					}
					continue
				}
				result, err := workflows.Check(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
					failed = true
					continue
				}
				if !result.Skipped && !result.OK {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: name %q is missing the %q prefix\n",
						path, result.Name, workflows.NamePrefix)
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("workflow name check failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagFix, "fix", false,
		"Rewrite non-conforming names in place")

	argparserValidate.AddCommand(cmd)
}
