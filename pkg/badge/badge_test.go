package badge_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jebel-quant/rhiza/pkg/badge"
)

func TestColor(t *testing.T) {
	t.Parallel()
	testcases := map[int]string{
		100: "brightgreen",
		90:  "brightgreen",
		89:  "green",
		80:  "green",
		79:  "yellowgreen",
		70:  "yellowgreen",
		69:  "yellow",
		60:  "yellow",
		59:  "orange",
		50:  "orange",
		49:  "red",
		0:   "red",
	}
	for coverage, expected := range testcases {
		assert.Equal(t, expected, badge.Color(coverage), "coverage=%d", coverage)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	tmpdir := t.TempDir()
	coverageJSON := filepath.Join(tmpdir, "coverage.json")
	out := filepath.Join(tmpdir, "book", "coverage-badge.json")

	require.NoError(t, os.WriteFile(coverageJSON,
		[]byte(`{"totals": {"percent_covered": 86.4921}}`), 0o644))

	require.NoError(t, badge.Generate(ctx, coverageJSON, out))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	var endpoint badge.Endpoint
	require.NoError(t, json.Unmarshal(content, &endpoint))
	assert.Equal(t, badge.Endpoint{
		SchemaVersion: 1,
		Label:         "coverage",
		Message:       "86%",
		Color:         "green",
	}, endpoint)
	assert.True(t, content[len(content)-1] == '\n')
}

func TestGenerateMissingReport(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	tmpdir := t.TempDir()
	out := filepath.Join(tmpdir, "coverage-badge.json")

	require.NoError(t, badge.Generate(ctx, filepath.Join(tmpdir, "coverage.json"), out))

	// Skipping means no output file either.
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	type testcase struct {
		Content   string
		ErrSubstr string
	}
	testcases := map[string]testcase{
		"malformed":    {`{`, "failed to parse"},
		"missing-key":  {`{"totals": {}}`, "missing 'totals.percent_covered'"},
		"out-of-range": {`{"totals": {"percent_covered": 120.0}}`, "out of valid range"},
		"negative":     {`{"totals": {"percent_covered": -3.0}}`, "out of valid range"},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			tmpdir := t.TempDir()
			coverageJSON := filepath.Join(tmpdir, "coverage.json")
			require.NoError(t, os.WriteFile(coverageJSON, []byte(tc.Content), 0o644))

			err := badge.Generate(ctx, coverageJSON, filepath.Join(tmpdir, "badge.json"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.ErrSubstr)
		})
	}
}
