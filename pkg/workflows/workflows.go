// Package workflows enforces the naming convention for GitHub Actions
// workflow files: every workflow's top-level name must carry the
// "(RHIZA) " prefix so template-provided workflows are recognizable in
// the Actions UI.
package workflows

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// NamePrefix is the required prefix on every workflow name.
const NamePrefix = "(RHIZA) "

// Result is the outcome of inspecting one workflow file.
type Result struct {
	// Name is the workflow's top-level name, "" if absent.
	Name string
	// Skipped is set for files that aren't YAML mappings (empty files,
	// list-documents); they are out of scope rather than wrong.
	Skipped bool
	// OK is set when the name carries the required prefix.
	OK bool
}

// Check parses the workflow file and reports whether its name carries
// the required prefix.  A missing name field is an error.
func Check(path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	var raw interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return Result{}, fmt.Errorf("error parsing YAML %s: %w", path, err)
	}
	doc, ok := raw.(map[interface{}]interface{})
	if !ok {
		// Empty files and non-mapping documents aren't workflows.
		return Result{Skipped: true}, nil
	}

	name, _ := doc["name"].(string)
	if name == "" {
		return Result{}, fmt.Errorf("%s: missing 'name' field", path)
	}
	return Result{
		Name: name,
		OK:   strings.HasPrefix(name, NamePrefix),
	}, nil
}

// Fix rewrites the workflow's top-level name to carry the prefix,
// preserving every other byte of the file.  It reports whether the file
// was modified.
func Fix(path string) (bool, error) {
	result, err := Check(path)
	if err != nil {
		return false, err
	}
	if result.Skipped || result.OK {
		return false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	// Only the first top-level "name:" line is the workflow name;
	// indented ones belong to jobs and steps.
	lines := strings.SplitAfter(string(content), "\n")
	replaced := false
	for i, line := range lines {
		if !replaced && strings.HasPrefix(line, "name:") {
			lines[i] = fmt.Sprintf("name: %q\n", NamePrefix+result.Name)
			replaced = true
		}
	}
	if !replaced {
		return false, fmt.Errorf("%s: could not locate the top-level 'name:' line", path)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
