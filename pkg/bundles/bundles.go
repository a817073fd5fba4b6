// Package bundles validates the template-bundles.yml file: structural
// shape, cross-references between bundles, and the bundle-count
// metadata.
package bundles

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Lint returns the full list of findings for the bundles file at path.
// An empty list means the file is valid.  The error return is for
// problems with reading the file itself, not for findings.
func Lint(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{fmt.Sprintf("template bundles file not found: %s", path)}, nil
		}
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return []string{fmt.Sprintf("invalid YAML: %v", err)}, nil
	}
	if len(data) == 0 {
		return []string{"template bundles file is empty"}, nil
	}

	var findings []string
	for _, field := range []string{"version", "bundles"} {
		if _, ok := data[field]; !ok {
			findings = append(findings, fmt.Sprintf("missing required field: %s", field))
		}
	}
	if len(findings) > 0 {
		return findings, nil
	}

	bundles, ok := asMap(data["bundles"])
	if !ok {
		return []string{"'bundles' must be a mapping"}, nil
	}
	names := make(map[string]struct{}, len(bundles))
	for name := range bundles {
		names[name] = struct{}{}
	}

	for _, name := range sortedKeys(bundles) {
		findings = append(findings, lintBundle(name, bundles[name], names)...)
	}
	findings = append(findings, lintExamples(data, names)...)
	findings = append(findings, lintMetadata(data, len(bundles))...)
	return findings, nil
}

// Validate is Lint folded into a single error, one finding per line.
func Validate(path string) error {
	findings, err := Lint(path)
	if err != nil {
		return err
	}
	if len(findings) > 0 {
		return fmt.Errorf("template bundles validation failed:\n  - %s",
			strings.Join(findings, "\n  - "))
	}
	return nil
}

func lintBundle(name string, raw interface{}, names map[string]struct{}) []string {
	bundle, ok := asMap(raw)
	if !ok {
		return []string{fmt.Sprintf("bundle %q must be a mapping", name)}
	}

	var findings []string
	if _, ok := bundle["description"]; !ok {
		findings = append(findings, fmt.Sprintf("bundle %q missing 'description'", name))
	}
	if files, ok := bundle["files"]; !ok {
		findings = append(findings, fmt.Sprintf("bundle %q missing 'files'", name))
	} else if _, ok := files.([]interface{}); !ok {
		findings = append(findings, fmt.Sprintf("bundle %q 'files' must be a list", name))
	}

	for _, kind := range []string{"requires", "recommends"} {
		raw, ok := bundle[kind]
		if !ok {
			continue
		}
		deps, ok := raw.([]interface{})
		if !ok {
			findings = append(findings, fmt.Sprintf("bundle %q %q must be a list", name, kind))
			continue
		}
		for _, dep := range deps {
			depName := fmt.Sprintf("%v", dep)
			if _, ok := names[depName]; !ok {
				findings = append(findings,
					fmt.Sprintf("bundle %q %s non-existent bundle %q", name, kind, depName))
			}
		}
	}
	return findings
}

func lintExamples(data map[string]interface{}, names map[string]struct{}) []string {
	raw, ok := data["examples"]
	if !ok {
		return nil
	}
	examples, ok := asMap(raw)
	if !ok {
		return []string{"'examples' must be a mapping"}
	}

	var findings []string
	for _, exampleName := range sortedKeys(examples) {
		example, ok := asMap(examples[exampleName])
		if !ok {
			continue
		}
		raw, ok := example["templates"]
		if !ok {
			continue
		}
		templates, ok := raw.([]interface{})
		if !ok {
			findings = append(findings,
				fmt.Sprintf("example %q 'templates' must be a list", exampleName))
			continue
		}
		for _, template := range templates {
			templateName := fmt.Sprintf("%v", template)
			if templateName == "core" { // core is implicit
				continue
			}
			if _, ok := names[templateName]; !ok {
				findings = append(findings,
					fmt.Sprintf("example %q references non-existent bundle %q", exampleName, templateName))
			}
		}
	}
	return findings
}

func lintMetadata(data map[string]interface{}, actual int) []string {
	raw, ok := data["metadata"]
	if !ok {
		return nil
	}
	metadata, ok := asMap(raw)
	if !ok {
		return nil
	}
	declared, ok := metadata["total_bundles"]
	if !ok {
		return nil
	}
	if count, ok := declared.(int); !ok || count != actual {
		return []string{fmt.Sprintf("metadata 'total_bundles' (%v) doesn't match actual bundle count (%d)",
			declared, actual)}
	}
	return nil
}

// asMap normalizes yaml.v2's map[interface{}]interface{} to string keys.
func asMap(raw interface{}) (map[string]interface{}, bool) {
	switch val := raw.(type) {
	case map[string]interface{}:
		return val, true
	case map[interface{}]interface{}:
		ret := make(map[string]interface{}, len(val))
		for k, v := range val {
			ret[fmt.Sprintf("%v", k)] = v
		}
		return ret, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]interface{}) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
