// Package ghaction implements the "load-context" GitHub Actions helper:
// it reads a manifest of environment variables and secret names, appends
// the resolved values to the GITHUB_ENV file, and emits ::add-mask::
// workflow commands for every secret value.
package ghaction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/datawire/dlib/dlog"
	"sigs.k8s.io/yaml"
)

// Options configures Load.
type Options struct {
	// ManifestPath is the manifest file; YAML or JSON.
	ManifestPath string
	// SecretsJSON is the workflow's secrets context, serialized as JSON
	// (`toJSON(secrets)` in the workflow).
	SecretsJSON string
	// Strict makes a missing secret an error instead of a warning.
	Strict bool
	// EnvFile is the file to append KEY=value lines to; normally the
	// file named by $GITHUB_ENV.
	EnvFile string
	// MaskWriter receives the ::add-mask:: workflow commands; normally
	// os.Stdout, since the runner scans stdout for them.
	MaskWriter io.Writer
}

// manifest is the file format: env is written to GITHUB_ENV verbatim,
// secrets may be either a list of names (NAME loads secret NAME) or a
// map (ENV_NAME loads secret SECRET_NAME).
type manifest struct {
	Env     map[string]interface{} `json:"env"`
	Secrets json.RawMessage        `json:"secrets"`
}

// Load executes the context load described by opts.
func Load(ctx context.Context, opts Options) error {
	content, err := os.ReadFile(opts.ManifestPath)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	envFile, err := os.OpenFile(opts.EnvFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer envFile.Close()

	for _, key := range sortedKeys(m.Env) {
		dlog.Infof(ctx, "setting env var: %s", key)
		if err := appendEnv(envFile, key, fmt.Sprintf("%v", m.Env[key])); err != nil {
			return err
		}
	}

	if len(m.Secrets) == 0 {
		return nil
	}
	pulls, err := parseSecretPulls(m.Secrets)
	if err != nil {
		return err
	}

	var secrets map[string]string
	if err := json.Unmarshal([]byte(opts.SecretsJSON), &secrets); err != nil {
		dlog.Warnln(ctx, "could not parse secrets context")
		secrets = nil
	}

	for _, pull := range pulls {
		val, ok := secrets[pull.Secret]
		if !ok || val == "" {
			msg := fmt.Sprintf("secret %s not found in secrets context", pull.Secret)
			if opts.Strict {
				return fmt.Errorf("%s", msg)
			}
			dlog.Warnln(ctx, msg)
			continue
		}
		dlog.Infof(ctx, "loading secret %s as %s", pull.Secret, pull.Env)
		if opts.MaskWriter != nil {
			fmt.Fprintf(opts.MaskWriter, "::add-mask::%s\n", val)
		}
		if err := appendEnv(envFile, pull.Env, val); err != nil {
			return err
		}
	}
	return nil
}

type secretPull struct {
	Env    string
	Secret string
}

func parseSecretPulls(raw json.RawMessage) ([]secretPull, error) {
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		ret := make([]secretPull, 0, len(names))
		for _, name := range names {
			ret = append(ret, secretPull{Env: name, Secret: name})
		}
		return ret, nil
	}
	var mapping map[string]string
	if err := json.Unmarshal(raw, &mapping); err == nil {
		keys := make([]string, 0, len(mapping))
		for key := range mapping {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		ret := make([]secretPull, 0, len(mapping))
		for _, key := range keys {
			ret = append(ret, secretPull{Env: key, Secret: mapping[key]})
		}
		return ret, nil
	}
	return nil, fmt.Errorf("manifest 'secrets' must be a list of names or a mapping")
}

// appendEnv writes one assignment in GITHUB_ENV syntax; multi-line
// values need heredoc framing.
//
// https://docs.github.com/en/actions/reference/workflow-commands-for-github-actions#environment-files
func appendEnv(w io.Writer, key, value string) error {
	var err error
	if strings.Contains(value, "\n") {
		_, err = fmt.Fprintf(w, "%s<<EOF\n%s\nEOF\n", key, value)
	} else {
		_, err = fmt.Fprintf(w, "%s=%s\n", key, value)
	}
	return err
}

func sortedKeys(m map[string]interface{}) []string {
	ret := make([]string, 0, len(m))
	for key := range m {
		ret = append(ret, key)
	}
	sort.Strings(ret)
	return ret
}
