// Package pyproject reads the handful of pyproject.toml fields that the
// rhiza tooling cares about.  It does not try to be a full PEP 621
// model; unknown tables and keys are ignored.
package pyproject

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// File is a parsed pyproject.toml.
type File struct {
	Project Project `toml:"project"`
}

// Project is the [project] table.
type Project struct {
	Name           string `toml:"name"`
	Version        string `toml:"version"`
	RequiresPython string `toml:"requires-python"`
}

// Load parses the pyproject.toml at filename.
func Load(filename string) (*File, error) {
	var ret File
	if _, err := toml.DecodeFile(filename, &ret); err != nil {
		return nil, fmt.Errorf("pyproject.Load: %w", err)
	}
	return &ret, nil
}

// RequiresPython returns the project.requires-python constraint, and
// whether the field is present.  An empty string counts as absent.
func (f *File) RequiresPython() (string, bool) {
	return f.Project.RequiresPython, f.Project.RequiresPython != ""
}

// Version returns the project.version string, and whether the field is
// present.  An empty string counts as absent.
func (f *File) Version() (string, bool) {
	return f.Project.Version, f.Project.Version != ""
}
