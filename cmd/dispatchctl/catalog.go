package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dispatch/pkg/dispatch/catalog"
)

var (
	// catalog command flags
	catRegistry string
	catModule   string
	catName     string
)

func init() {
	listCmd.Flags().StringVar(&catRegistry, "registry", "", "Only show records from this registry")

	findCmd.Flags().StringVar(&catRegistry, "registry", "", "Only show records from this registry")
	findCmd.Flags().StringVar(&catModule, "module", "", "Module of the generic function (required)")
	findCmd.Flags().StringVar(&catName, "name", "", "Name of the generic function (required)")
	_ = findCmd.MarkFlagRequired("module")
	_ = findCmd.MarkFlagRequired("name")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded registrations",
	Long: `List the registrations recorded in a catalog.

Examples:
  # List everything
  dispatchctl list --db ./dispatch.db

  # List one registry
  dispatchctl list --registry codecs

  # Output as JSON
  dispatchctl list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Show the signatures of a generic function",
	Long: `Show every recorded implementation of one generic function.

Examples:
  # Signatures of math.add in package mathmod
  dispatchctl find --module mathmod --name math.add

  # Restrict to one registry
  dispatchctl find --module mathmod --name math.add --registry default`,
	Args: cobra.NoArgs,
	RunE: runFind,
}

func runList(cmd *cobra.Command, _ []string) error {
	store, err := openCatalog(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(catRegistry)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}
	return printRecords(cmd.OutOrStdout(), records, outputJSON)
}

func runFind(cmd *cobra.Command, _ []string) error {
	store, err := openCatalog(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Find(catRegistry, catModule, catName)
	if err != nil {
		return fmt.Errorf("find registrations: %w", err)
	}
	if len(records) == 0 && !outputJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "No implementations of %s in %s\n", catName, catModule)
		return nil
	}
	return printRecords(cmd.OutOrStdout(), records, outputJSON)
}

// openCatalog opens an existing catalog database. It refuses to create one.
func openCatalog(path string) (*catalog.SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	store, err := catalog.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	return store, nil
}

// recordJSON is the JSON shape of one catalog record.
type recordJSON struct {
	ID           string `json:"id"`
	Registry     string `json:"registry"`
	RegistryID   string `json:"registry_id"`
	Module       string `json:"module"`
	Name         string `json:"name"`
	Signature    string `json:"signature"`
	Origin       string `json:"origin,omitempty"`
	RegisteredAt string `json:"registered_at"`
}

func printRecords(w io.Writer, records []catalog.Record, asJSON bool) error {
	if asJSON {
		out := make([]recordJSON, len(records))
		for i, rec := range records {
			out[i] = recordJSON{
				ID:           rec.ID,
				Registry:     rec.Registry,
				RegistryID:   rec.RegistryID,
				Module:       rec.Module,
				Name:         rec.Name,
				Signature:    rec.Display,
				Origin:       origin(rec),
				RegisteredAt: rec.RegisteredAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No registrations recorded")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGISTRY\tMODULE\tNAME\tSIGNATURE\tORIGIN")
	for _, rec := range records {
		o := origin(rec)
		if o == "" {
			o = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rec.Registry, rec.Module, rec.Name, rec.Display, o)
	}
	return tw.Flush()
}

func origin(rec catalog.Record) string {
	if rec.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", rec.File, rec.Line)
}
