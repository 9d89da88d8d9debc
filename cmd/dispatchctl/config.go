package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dispatch/pkg/dispatch"
	"github.com/randalmurphal/dispatch/pkg/dispatch/config"
)

var configCmd = &cobra.Command{
	Use:   "config <file>",
	Short: "Validate a registry config file",
	Long: `Load a YAML or JSON registry config file and print the resolved settings.

When the file names a catalog, the catalog is opened and closed again to
verify it is usable.

Examples:
  dispatchctl config dispatch.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromFile(args[0])
	if err != nil {
		return err
	}

	opts, closeFn, err := dispatch.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	r := dispatch.New[dispatch.Func](opts...)
	if err := closeFn(); err != nil {
		return fmt.Errorf("close catalog: %w", err)
	}

	catalogPath := cfg.Section("catalog").Path("path", "")
	if catalogPath == "" {
		catalogPath = "(none)"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "name:    %s\n", r.Name())
	fmt.Fprintf(w, "metrics: %t\n", cfg.Bool("metrics", false))
	fmt.Fprintf(w, "tracing: %t\n", cfg.Bool("tracing", false))
	fmt.Fprintf(w, "catalog: %s\n", catalogPath)
	return nil
}
