package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
	"github.com/jebel-quant/rhiza/pkg/pyver"
)

func init() {
	cmd := &cobra.Command{
		Use:   "satisfies [flags] VERSION SPECIFIER",
		Short: "Check a version against a specifier",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		Long: "Check whether VERSION satisfies SPECIFIER (for example: " +
			"`rhiza python satisfies 3.12 '>=3.11,<3.14'`).  Exits non-zero when it " +
			"doesn't, so scripts can branch on the result.",

		RunE: func(cmd *cobra.Command, args []string) error {
			version, specifier := args[0], args[1]
			ok, err := pyver.Satisfies(version, specifier)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("version %q does not satisfy %q", version, specifier)
			}
			fmt.Printf("version %q satisfies %q\n", version, specifier)
			return nil
		},
	}
	argparserPython.AddCommand(cmd)
}
