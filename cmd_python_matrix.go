package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
	"github.com/jebel-quant/rhiza/pkg/pyproject"
	"github.com/jebel-quant/rhiza/pkg/pyver"
)

// outputFormat is a pflag.Value for the --output flag.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }
func (f *outputFormat) Type() string   { return "text|json|yaml" }
func (f *outputFormat) Set(val string) error {
	switch val {
	case "text", "json", "yaml":
		*f = outputFormat(val)
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid formats are \"text\", \"json\", and \"yaml\")", val)
	}
}

func init() {
	var flags struct {
		PyProject string
		Output    outputFormat
	}
	flags.Output = "text"
	cmd := &cobra.Command{
		Use:   "matrix [flags]",
		Short: "List the supported Python versions for a project",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		Long: "Evaluate the project's requires-python constraint against the fixed " +
			"candidate list, and print the versions that satisfy it.  The command " +
			"exits non-zero when the constraint excludes every candidate, so CI can " +
			"gate on it.",

		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := pyproject.Load(flags.PyProject)
			if err != nil {
				return err
			}
			versions, err := pyver.SupportedVersions(manifest)
			if err != nil {
				return err
			}

			switch flags.Output {
			case "json":
				bs, err := json.Marshal(versions)
				if err != nil {
					return err
				}
				fmt.Println(string(bs))
			case "yaml":
				bs, err := yaml.Marshal(versions)
				if err != nil {
					return err
				}
				if _, err := os.Stdout.Write(bs); err != nil {
					return err
				}
			default:
				for _, version := range versions {
					fmt.Println(version)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.PyProject, "pyproject", "pyproject.toml",
		"Path of the pyproject.toml to read requires-python from")
	cmd.Flags().Var(&flags.Output, "output",
		"Output format")

	argparserPython.AddCommand(cmd)
}
