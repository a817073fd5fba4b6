// Package template materializes files from the rhiza template repository
// into a target git repository, driven by the target's
// .github/template.yml configuration.
package template

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// DefaultRepository is the GitHub "owner/name" slug of the template
// repository used when a target has no template.yml yet.
const DefaultRepository = "jebel-quant/rhiza"

// Config is the parsed form of a target's .github/template.yml.
type Config struct {
	// Repository is the GitHub "owner/name" slug to pull templates from.
	Repository string `yaml:"template-repository"`
	// Branch is the template branch to pull.
	Branch string `yaml:"template-branch"`
	// Include lists the paths (files or directories, relative to the
	// template repository root) to materialize.
	Include []string `yaml:"include"`
}

// ConfigPath returns where a target repository's template.yml lives.
func ConfigPath(target string) string {
	return filepath.Join(target, ".github", "template.yml")
}

// LoadConfig reads and parses the target's .github/template.yml.
func LoadConfig(target string) (*Config, error) {
	content, err := os.ReadFile(ConfigPath(target))
	if err != nil {
		return nil, err
	}
	var ret Config
	if err := yaml.UnmarshalStrict(content, &ret); err != nil {
		return nil, err
	}
	if ret.Repository == "" {
		ret.Repository = DefaultRepository
	}
	return &ret, nil
}

// WriteDefault writes the stock template.yml for a fresh target,
// creating the .github directory if need be.
func WriteDefault(target, branch string) (*Config, error) {
	cfg := &Config{
		Repository: DefaultRepository,
		Branch:     branch,
		Include: []string{
			".github",
			".editorconfig",
			".gitignore",
			".pre-commit-config.yaml",
			"Makefile",
			"pytest.ini",
		},
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	filename := ConfigPath(target)
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return nil, err
	}
	return cfg, nil
}
