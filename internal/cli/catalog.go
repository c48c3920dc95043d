package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/catalog"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/footprint"
)

// catalogEntry is the JSON shape of one catalog row.
type catalogEntry struct {
	Category    footprint.Category `json:"category"`
	Type        string             `json:"type"`
	Value       float64            `json:"value"`
	Unit        string             `json:"unit"`
	Description string             `json:"description,omitempty"`
}

// newCatalogCmd creates the catalog command listing emission factors.
func newCatalogCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "catalog [category]",
		Short: "List the emission factors used by 'log'",
		Example: `  # Every activity type
  ecotrack catalog

  # Only food
  ecotrack catalog food`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveOutputFormat(a, output)
			if err != nil {
				return err
			}

			var filter footprint.Category
			if len(args) == 1 {
				filter, err = footprint.ParseCategory(args[0])
				if err != nil {
					return err
				}
			}

			entries := filterCatalog(a.catalog.List(), filter)
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			return renderCatalog(cmd.OutOrStdout(), entries)
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func filterCatalog(entries []catalog.Entry, filter footprint.Category) []catalogEntry {
	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		if filter != "" && e.Category != filter {
			continue
		}
		out = append(out, catalogEntry{
			Category:    e.Category,
			Type:        e.Type,
			Value:       e.Value,
			Unit:        e.Unit,
			Description: e.Description,
		})
	}
	return out
}

func renderCatalog(w io.Writer, entries []catalogEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTYPE\tKG CO2\tUNIT\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", e.Category, e.Type, e.Value, e.Unit, e.Description)
	}
	return tw.Flush()
}
