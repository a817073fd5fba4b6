// Package pyver evaluates Python version requirements the way the rhiza
// Makefiles need them evaluated: a version is a plain tuple of release
// segments, a specifier is a comma-separated conjunction of comparison
// clauses, and the supported-version matrix is the subset of a fixed
// candidate list that satisfies a project's requires-python constraint.
//
// This is deliberately not a full PEP 440 implementation.  Pre-release,
// post-release, dev, epoch, and local segments are stripped rather than
// ordered, and release tuples of different lengths compare as plain
// sequences rather than being zero-padded.
package pyver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the parsed form of a version string: one non-negative
// integer per dot-separated release segment.
type Version []int

// ParseVersion parses a dot-separated version string into a Version.
//
// Each component must start with one or more ASCII digits; any trailing
// non-digit suffix on a component (pre-release or build tags such as
// "rc1", "a1", "dev1") is discarded, so "3.11.0rc1" parses as 3.11.0.
// Leading zeros are read as ordinary decimal ("03" is 3).
func ParseVersion(str string) (Version, error) {
	components := strings.Split(str, ".")
	ret := make(Version, 0, len(components))
	for _, component := range components {
		n, ok := numericPrefix(component)
		if !ok {
			if isAllLetters(component) {
				return nil, &VersionSpecifierError{
					Input: component,
					Reason: fmt.Sprintf("Invalid version component %q in %q: expected a numeric prefix",
						component, str),
				}
			}
			return nil, &VersionSpecifierError{
				Input: component,
				Reason: fmt.Sprintf("invalid version %q: component %q: expected a numeric prefix",
					str, component),
			}
		}
		ret = append(ret, n)
	}
	return ret, nil
}

// String returns the dotted form of the version.  Suffixes stripped by
// ParseVersion are gone for good, so String is the normalized form.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Cmp returns a number < 0 if version 'v' is less than version 'o', > 0
// if 'v' is greater than 'o', or 0 if they are equal.  Only the sign is
// defined, like the C-language strcmp.
//
// Ordering is plain sequence comparison: when one tuple is a strict
// prefix of the other, the shorter tuple compares as less, so 3.11 sorts
// before 3.11.0.  That mirrors Python tuple comparison and is relied on
// by the Makefile matrix tests; do not "fix" it to zero-pad.
func (v Version) Cmp(o Version) int {
	for i := 0; i < len(v) && i < len(o); i++ {
		switch {
		case v[i] < o[i]:
			return -1
		case v[i] > o[i]:
			return 1
		}
	}
	return len(v) - len(o)
}

// numericPrefix parses the leading digit run of a component, reporting
// false if there is none (or if it overflows an int).
func numericPrefix(component string) (int, bool) {
	end := 0
	for end < len(component) && component[end] >= '0' && component[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(component[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isAllLetters(component string) bool {
	if component == "" {
		return false
	}
	for i := 0; i < len(component); i++ {
		c := component[i]
		if !('a' <= c && c <= 'z') && !('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}
