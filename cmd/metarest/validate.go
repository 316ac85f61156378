package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gimlet2/metarest/core/schema"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate resource definition files",
	Long: `Validate resource definition files before loading them.

Checks:
  - YAML/JSON syntax is valid
  - Resource and field names are well-formed
  - Field names are unique
  - Validation bounds are consistent (min <= max, patterns compile)

With no arguments, validates every definition in the definitions directory.

Examples:
  metarest validate
  metarest validate definitions/users.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		found, err := collectDefinitionFiles(definitionsDir)
		if err != nil {
			return err
		}
		files = found
	}

	if len(files) == 0 {
		return fmt.Errorf("no definition files found in %s", definitionsDir)
	}

	failed := 0
	for _, path := range files {
		def, err := schema.ParseFile(path)
		if err != nil {
			fmt.Printf("  %s %s\n      %v\n", crossMark, path, err)
			failed++
			continue
		}
		fmt.Printf("  %s %s (resource %q, %d fields)\n", checkMark, path, def.Name, len(def.Fields))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d definition files invalid", failed, len(files))
	}

	fmt.Printf("\nAll %d definition files valid.\n", len(files))
	return nil
}

func collectDefinitionFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && schema.IsDefinitionFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return files, nil
}
