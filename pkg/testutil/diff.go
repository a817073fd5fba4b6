package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

//nolint:gochecknoglobals // Would be 'const'.
var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// AssertEqualText compares two multi-line strings, failing the test with
// a unified diff when they differ.
func AssertEqualText(t *testing.T, exp, act, label string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  3,
	})
	t.Errorf("%s diff:\n%s", label, diff)
	return false
}

// DumpTree renders a directory tree as a stable textual listing (paths,
// modes, and file contents) suitable for diffing with AssertEqualText.
func DumpTree(dir string) (string, error) {
	ret := new(strings.Builder)
	err := filepath.Walk(dir, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			return e
		}
		name, err := filepath.Rel(dir, filename)
		if err != nil {
			return err
		}
		name = filepath.ToSlash(name)
		if name == "." {
			return nil
		}
		fmt.Fprintf(ret, "%s %s\n", info.Mode(), name)
		if info.Mode().IsRegular() {
			content, err := os.ReadFile(filename)
			if err != nil {
				return err
			}
			fmt.Fprintf(ret, "content = %s", spewConfig.Sdump(content))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return ret.String(), nil
}

// AssertEqualTrees compares two directory trees, failing the test with a
// unified diff of their listings when they differ.
func AssertEqualTrees(t *testing.T, expDir, actDir string) bool {
	t.Helper()
	expStr, err := DumpTree(expDir)
	if err != nil {
		t.Errorf("error dumping expected tree: %v", err)
		return false
	}
	actStr, err := DumpTree(actDir)
	if err != nil {
		t.Errorf("error dumping actual tree: %v", err)
		return false
	}
	return AssertEqualText(t, expStr, actStr, "Tree")
}
