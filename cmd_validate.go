package main

import (
	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
)

var argparserValidate = &cobra.Command{
	Use:   "validate {[flags]|SUBCOMMAND...}",
	Short: "Validate template configuration files",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserValidate)
}
