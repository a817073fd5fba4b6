// Package badge turns a coverage JSON report into a shields.io endpoint
// JSON file, so the README can show a coverage badge without a paid
// coverage service.
package badge

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/datawire/dlib/dlog"

	"github.com/jebel-quant/rhiza/pkg/fsutil"
)

// Endpoint is the shields.io endpoint JSON schema.
//
// https://shields.io/badges/endpoint-badge
type Endpoint struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         string `json:"color"`
}

// Color maps a coverage percentage to the shields.io color ramp.
func Color(coverage int) string {
	switch {
	case coverage >= 90:
		return "brightgreen"
	case coverage >= 80:
		return "green"
	case coverage >= 70:
		return "yellowgreen"
	case coverage >= 60:
		return "yellow"
	case coverage >= 50:
		return "orange"
	default:
		return "red"
	}
}

// Generate reads totals.percent_covered from the coverage report at
// coverageJSON and writes the endpoint JSON to out.  A missing report is
// a logged no-op so that builds without a test run don't fail.
func Generate(ctx context.Context, coverageJSON, out string) error {
	exists, err := fsutil.Exists(coverageJSON)
	if err != nil {
		return err
	}
	if !exists {
		dlog.Warnf(ctx, "coverage JSON not found at %s, skipping badge generation", coverageJSON)
		return nil
	}
	dlog.Infof(ctx, "generating coverage badge from %s", coverageJSON)

	content, err := os.ReadFile(coverageJSON)
	if err != nil {
		return err
	}
	var report struct {
		Totals struct {
			PercentCovered *float64 `json:"percent_covered"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(content, &report); err != nil {
		return fmt.Errorf("failed to parse coverage JSON: %w", err)
	}
	if report.Totals.PercentCovered == nil {
		return fmt.Errorf("coverage JSON is missing 'totals.percent_covered'")
	}

	coverage := int(math.Round(*report.Totals.PercentCovered))
	if coverage < 0 || coverage > 100 {
		return fmt.Errorf("coverage percentage %d is out of valid range 0-100", coverage)
	}
	dlog.Infof(ctx, "coverage: %d%%", coverage)

	endpoint := Endpoint{
		SchemaVersion: 1,
		Label:         "coverage",
		Message:       fmt.Sprintf("%d%%", coverage),
		Color:         Color(coverage),
	}
	encoded, err := json.MarshalIndent(endpoint, "", "  ")
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return err
	}
	dlog.Infof(ctx, "coverage badge JSON generated at %s", out)
	return nil
}
