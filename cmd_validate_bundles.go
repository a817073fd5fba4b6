package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/bundles"
	"github.com/jebel-quant/rhiza/pkg/cliutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "bundles [flags] [PATH]",
		Short: "Validate the template-bundles.yml file",
		Args:  cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		Long: "Check the template bundles file for structural problems: missing " +
			"required fields, dependencies on bundles that don't exist, examples " +
			"referencing unknown bundles, and a stale bundle count in the metadata.  " +
			"All findings are reported, not just the first.",

		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".rhiza/template-bundles.yml"
			if len(args) > 0 {
				path = args[0]
			}
			fmt.Printf("Validating template bundles: %s\n", path)
			if err := bundles.Validate(path); err != nil {
				return err
			}
			fmt.Println("Template bundles validation passed!")
			return nil
		},
	}
	argparserValidate.AddCommand(cmd)
}
