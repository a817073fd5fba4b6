package bundles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jebel-quant/rhiza/pkg/bundles"
)

func writeBundles(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "template-bundles.yml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

const validBundles = `
version: 1
bundles:
  core:
    description: Baseline configuration
    files:
      - Makefile
      - .editorconfig
  docs:
    description: Documentation tooling
    files:
      - book/
    requires:
      - core
  ci:
    description: GitHub Actions workflows
    files:
      - .github/workflows/
    recommends:
      - docs
examples:
  minimal:
    templates:
      - core
  full:
    templates:
      - docs
      - ci
metadata:
  total_bundles: 3
`

func TestLintValid(t *testing.T) {
	t.Parallel()
	findings, err := bundles.Lint(writeBundles(t, validBundles))
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.NoError(t, bundles.Validate(writeBundles(t, validBundles)))
}

func TestLint(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Content          string
		ExpectedFindings []string
	}
	testcases := map[string]testcase{
		"empty": {
			Content:          "",
			ExpectedFindings: []string{"template bundles file is empty"},
		},
		"invalid-yaml": {
			Content:          "bundles: [unclosed",
			ExpectedFindings: []string{"invalid YAML"},
		},
		"missing-top-level": {
			Content: "other: true\n",
			ExpectedFindings: []string{
				"missing required field: version",
				"missing required field: bundles",
			},
		},
		"bundles-not-mapping": {
			Content:          "version: 1\nbundles: [a, b]\n",
			ExpectedFindings: []string{"'bundles' must be a mapping"},
		},
		"bundle-missing-fields": {
			Content: `
version: 1
bundles:
  core: {}
`,
			ExpectedFindings: []string{
				`bundle "core" missing 'description'`,
				`bundle "core" missing 'files'`,
			},
		},
		"files-not-list": {
			Content: `
version: 1
bundles:
  core:
    description: x
    files: Makefile
`,
			ExpectedFindings: []string{`bundle "core" 'files' must be a list`},
		},
		"dangling-requires": {
			Content: `
version: 1
bundles:
  docs:
    description: x
    files: []
    requires:
      - nonexistent
`,
			ExpectedFindings: []string{`bundle "docs" requires non-existent bundle "nonexistent"`},
		},
		"dangling-recommends": {
			Content: `
version: 1
bundles:
  docs:
    description: x
    files: []
    recommends:
      - ghost
`,
			ExpectedFindings: []string{`bundle "docs" recommends non-existent bundle "ghost"`},
		},
		"example-dangling-template": {
			Content: `
version: 1
bundles:
  docs:
    description: x
    files: []
examples:
  demo:
    templates:
      - core
      - ghost
`,
			ExpectedFindings: []string{`example "demo" references non-existent bundle "ghost"`},
		},
		"metadata-count-mismatch": {
			Content: `
version: 1
bundles:
  core:
    description: x
    files: []
metadata:
  total_bundles: 5
`,
			ExpectedFindings: []string{"metadata 'total_bundles' (5) doesn't match actual bundle count (1)"},
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			findings, err := bundles.Lint(writeBundles(t, tc.Content))
			require.NoError(t, err)
			require.Len(t, findings, len(tc.ExpectedFindings))
			for i, expected := range tc.ExpectedFindings {
				assert.Contains(t, findings[i], expected)
			}
		})
	}
}

func TestLintAbsentFile(t *testing.T) {
	t.Parallel()
	findings, err := bundles.Lint(filepath.Join(t.TempDir(), "template-bundles.yml"))
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "not found")
}

func TestValidateCollectsAllFindings(t *testing.T) {
	t.Parallel()
	err := bundles.Validate(writeBundles(t, `
version: 1
bundles:
  core: {}
  docs:
    description: x
    files: []
    requires:
      - ghost
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `bundle "core" missing 'description'`)
	assert.Contains(t, err.Error(), `bundle "core" missing 'files'`)
	assert.Contains(t, err.Error(), `bundle "docs" requires non-existent bundle "ghost"`)
}
