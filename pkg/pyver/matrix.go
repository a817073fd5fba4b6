package pyver

import (
	"fmt"
	"strings"
)

// candidates is the fixed, ordered universe of interpreter versions that
// the rhiza tooling knows how to test against.  Changing the supported
// matrix means editing this list.
//
//nolint:gochecknoglobals // Would be 'const'.
var candidates = [...]string{"3.11", "3.12", "3.13", "3.14"}

// Candidates returns the fixed candidate list, in order.  The returned
// slice is a copy; callers can't mutate the universe.
func Candidates() []string {
	return append([]string(nil), candidates[:]...)
}

// Manifest is the slice of a project manifest that the version matrix
// needs: the requires-python field, or word of its absence.
type Manifest interface {
	RequiresPython() (string, bool)
}

// SupportedVersions returns the ordered sublist of the fixed candidate
// list whose entries satisfy the manifest's requires-python constraint.
//
// A missing requires-python field and a constraint that excludes every
// candidate both return a *PyProjectError; a malformed constraint returns
// the underlying *VersionSpecifierError unwrapped.
func SupportedVersions(m Manifest) ([]string, error) {
	constraint, ok := m.RequiresPython()
	if !ok {
		return nil, &PyProjectError{
			Reason: "pyproject.toml is missing 'project.requires-python'",
		}
	}
	spec, err := ParseSpecifier(constraint)
	if err != nil {
		return nil, err
	}

	var ret []string
	for _, candidate := range candidates {
		ver, err := ParseVersion(candidate)
		if err != nil {
			return nil, err
		}
		if spec.Match(ver) {
			ret = append(ret, candidate)
		}
	}
	if len(ret) == 0 {
		return nil, &PyProjectError{
			Reason: fmt.Sprintf("no supported Python versions match %q.\nEvaluated candidates: %s",
				constraint, strings.Join(candidates[:], ", ")),
		}
	}
	return ret, nil
}
