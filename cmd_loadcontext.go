package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jebel-quant/rhiza/pkg/cliutil"
	"github.com/jebel-quant/rhiza/pkg/ghaction"
)

func init() {
	cmd := &cobra.Command{
		Use:    "load-context",
		Short:  "Load env vars and secrets from a manifest (GitHub Actions helper)",
		Args:   cliutil.WrapPositionalArgs(cobra.NoArgs),
		Hidden: true, // driven by the composite action, not by humans
		Long: "Read the INPUT_MANIFEST manifest, append its env entries to the file " +
			"named by GITHUB_ENV, and resolve its secret names against the " +
			"INPUT_SECRETS_CONTEXT JSON, masking each value in the workflow log.",

		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := os.Getenv("INPUT_MANIFEST")
			if manifestPath == "" {
				return fmt.Errorf("manifest path not provided (INPUT_MANIFEST)")
			}
			envFile := os.Getenv("GITHUB_ENV")
			if envFile == "" {
				return fmt.Errorf("GITHUB_ENV not defined")
			}
			secretsJSON := os.Getenv("INPUT_SECRETS_CONTEXT")
			if secretsJSON == "" {
				secretsJSON = "{}"
			}
			return ghaction.Load(cmd.Context(), ghaction.Options{
				ManifestPath: manifestPath,
				SecretsJSON:  secretsJSON,
				Strict:       strings.EqualFold(os.Getenv("INPUT_STRICT"), "true"),
				EnvFile:      envFile,
				MaskWriter:   cmd.OutOrStdout(),
			})
		},
	}
	argparser.AddCommand(cmd)
}
