package pyver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jebel-quant/rhiza/pkg/pyver"
)

type fakeManifest struct {
	requiresPython string
	present        bool
}

func (m fakeManifest) RequiresPython() (string, bool) {
	return m.requiresPython, m.present
}

func TestCandidates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"3.11", "3.12", "3.13", "3.14"}, pyver.Candidates())

	// Mutating the returned slice must not leak into later calls.
	mutable := pyver.Candidates()
	mutable[0] = "2.7"
	assert.Equal(t, []string{"3.11", "3.12", "3.13", "3.14"}, pyver.Candidates())
}

func TestSupportedVersions(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Constraint string
		Expected   []string
	}
	testcases := map[string]testcase{
		"all":         {">=3.11", []string{"3.11", "3.12", "3.13", "3.14"}},
		"from-312":    {">=3.12", []string{"3.12", "3.13", "3.14"}},
		"range":       {">=3.11,<3.14", []string{"3.11", "3.12", "3.13"}},
		"exact":       {"==3.13", []string{"3.13"}},
		"not-oldest":  {">=3.11,!=3.11", []string{"3.12", "3.13", "3.14"}},
		"open-bottom": {"<3.13", []string{"3.11", "3.12"}},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			actual, err := pyver.SupportedVersions(fakeManifest{tc.Constraint, true})
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, actual)
		})
	}
}

func TestSupportedVersionsMissingField(t *testing.T) {
	t.Parallel()
	_, err := pyver.SupportedVersions(fakeManifest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing 'project.requires-python'")
	var projErr *pyver.PyProjectError
	assert.ErrorAs(t, err, &projErr)
	var rhizaErr pyver.RhizaError
	assert.ErrorAs(t, err, &rhizaErr)
}

func TestSupportedVersionsNoMatch(t *testing.T) {
	t.Parallel()
	_, err := pyver.SupportedVersions(fakeManifest{">=4.0", true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no supported Python versions match")
	assert.Contains(t, err.Error(), ">=4.0")
	assert.Contains(t, err.Error(), "Evaluated candidates")
	assert.Contains(t, err.Error(), "3.11")
	var projErr *pyver.PyProjectError
	assert.ErrorAs(t, err, &projErr)
}

func TestSupportedVersionsBadConstraint(t *testing.T) {
	t.Parallel()
	_, err := pyver.SupportedVersions(fakeManifest{"~=3.11", true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid specifier")
	var specErr *pyver.VersionSpecifierError
	assert.ErrorAs(t, err, &specErr)
	// The underlying specifier error propagates as-is; it must not get
	// re-wrapped as a manifest problem.
	var projErr *pyver.PyProjectError
	assert.False(t, errors.As(err, &projErr))
}
