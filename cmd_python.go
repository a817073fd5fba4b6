package main

import (
	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
)

var argparserPython = &cobra.Command{
	Use:   "python {[flags]|SUBCOMMAND...}",
	Short: "Evaluate Python version requirements",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserPython)
}
