package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile parses a resource definition from a YAML or JSON file.
func ParseFile(path string) (ResourceDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResourceDefinition{}, fmt.Errorf("read file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a resource definition from YAML bytes. JSON is accepted too,
// being a subset of YAML.
func Parse(data []byte) (ResourceDefinition, error) {
	var def ResourceDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return ResourceDefinition{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := Validate(def); err != nil {
		return ResourceDefinition{}, fmt.Errorf("validate definition %q: %w", def.Name, err)
	}

	return def, nil
}

// ParseDir parses all resource definitions from a directory, including
// subdirectories. Files without a .yaml, .yml, or .json extension are
// skipped.
func ParseDir(dir string) ([]ResourceDefinition, error) {
	var defs []ResourceDefinition

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			sub, err := ParseDir(path)
			if err != nil {
				return nil, err
			}
			defs = append(defs, sub...)
			continue
		}

		if !IsDefinitionFile(entry.Name()) {
			continue
		}

		def, err := ParseFile(path)
		if err != nil {
			return nil, err
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// IsDefinitionFile reports whether a file name has a definition extension.
func IsDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// Validate checks a definition for structural problems: missing or malformed
// names, duplicate fields, and inverted bounds. It enforces the field-name
// uniqueness invariant at the parse boundary; hand-built definitions are
// trusted.
func Validate(def ResourceDefinition) error {
	var errs []string

	if def.Name == "" {
		errs = append(errs, "resource name is required")
	} else if !isValidIdentifier(def.Name) {
		errs = append(errs, fmt.Sprintf("resource name %q is not a valid identifier", def.Name))
	}

	seen := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		if field.Name == "" {
			errs = append(errs, "field name is required")
			continue
		}

		if !isValidIdentifier(field.Name) {
			errs = append(errs, fmt.Sprintf("field name %q is not a valid identifier", field.Name))
		}

		if seen[field.Name] {
			errs = append(errs, fmt.Sprintf("duplicate field %q", field.Name))
		}
		seen[field.Name] = true

		if err := validateRule(field); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// validateRule checks a field's validation rule for internal consistency.
func validateRule(field Field) error {
	rule := field.Validation
	if rule == nil {
		return nil
	}

	if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
		return fmt.Errorf("field %q: min %v is greater than max %v", field.Name, *rule.Min, *rule.Max)
	}

	// The pattern is not enforced at runtime, but it still has to compile.
	if rule.Pattern != "" {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("field %q: invalid pattern: %v", field.Name, err)
		}
	}

	return nil
}

// isValidIdentifier checks if a string is a valid identifier.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		if i == 0 {
			if !isLetter(c) && c != '_' {
				return false
			}
		} else {
			if !isLetter(c) && !isDigit(c) && c != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
