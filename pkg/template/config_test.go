package template_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jebel-quant/rhiza/pkg/template"
)

func TestWriteDefaultThenLoad(t *testing.T) {
	t.Parallel()
	target := t.TempDir()

	written, err := template.WriteDefault(target, "main")
	require.NoError(t, err)
	assert.Equal(t, template.DefaultRepository, written.Repository)
	assert.Equal(t, "main", written.Branch)
	assert.Contains(t, written.Include, ".github")
	assert.Contains(t, written.Include, "Makefile")

	loaded, err := template.LoadConfig(target)
	require.NoError(t, err)
	assert.Equal(t, written, loaded)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Content  string
		Expected *template.Config
		Err      bool
	}
	testcases := map[string]testcase{
		"full": {
			Content: `
template-repository: example/templates
template-branch: stable
include:
  - .github
  - Makefile
`,
			Expected: &template.Config{
				Repository: "example/templates",
				Branch:     "stable",
				Include:    []string{".github", "Makefile"},
			},
		},
		"defaulted-repository": {
			Content: `
template-branch: main
include: [Makefile]
`,
			Expected: &template.Config{
				Repository: template.DefaultRepository,
				Branch:     "main",
				Include:    []string{"Makefile"},
			},
		},
		"unknown-key": {
			Content: `
template-repository: example/templates
bogus-key: true
`,
			Err: true,
		},
		"malformed": {
			Content: "{",
			Err:     true,
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			target := t.TempDir()
			filename := template.ConfigPath(target)
			require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0o755))
			require.NoError(t, os.WriteFile(filename, []byte(tc.Content), 0o644))

			cfg, err := template.LoadConfig(target)
			if tc.Err {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.Expected, cfg)
			}
		})
	}
}

func TestLoadConfigAbsent(t *testing.T) {
	t.Parallel()
	_, err := template.LoadConfig(t.TempDir())
	assert.Error(t, err)
}
