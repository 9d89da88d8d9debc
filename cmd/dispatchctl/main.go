// Package main implements dispatchctl, a CLI for inspecting dispatch
// registration catalogs and validating registry config files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// dbPath is the catalog database to inspect
	dbPath string
	// outputJSON switches output from tables to JSON
	outputJSON bool
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dispatchctl",
	Short: "Inspect dispatch registration catalogs",
	Long: `dispatchctl is a command-line interface for dispatch registration catalogs.
It lists and searches the implementations recorded by registries configured
with a catalog, and validates registry config files.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "./dispatch.db", "catalog database path")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output results as JSON")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(configCmd)
}
