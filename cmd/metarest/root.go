package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	definitionsDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metarest",
	Short: "Schema-driven CRUD from declarative resource definitions",
	Long: `metarest turns declarative resource definitions into a validated
CRUD surface over a pluggable storage engine.

Describe fields, types, required-ness, and validation bounds in a YAML or
JSON definition, and get create/read/update/delete/list/filter for free.

Commands:
  metarest validate  # Check definition files
  metarest demo      # Run the built-in walkthrough`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&definitionsDir, "definitions", "d", "definitions", "resource definitions directory")
}
