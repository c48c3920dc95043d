package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/export"
)

// newExportCmd creates the export command writing reports to stdout or files.
func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your data as JSON, CSV or HTML",
		Long: `Export the recorded data.

json  the full state document
csv   one row per day: Date,Transport,Food,Energy,Total
html  a standalone report with totals, equivalents and daily history
all   all three files written into the --output directory`,
		Example: `  # CSV to stdout
  ecotrack export --format csv

  # HTML report to a file
  ecotrack export --format html --output report.html

  # Every format into ./reports
  ecotrack export --format all --output ./reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}
			summary := t.Summary()
			state := t.State()

			switch {
			case f == export.FormatAll:
				dir := output
				if dir == "" {
					dir = "."
				}
				paths, writeErr := export.WriteAll(cmd.Context(), dir, summary, state)
				if writeErr != nil {
					return fmt.Errorf("exporting reports: %w", writeErr)
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
				}
				return nil
			case output == "":
				return export.Write(cmd.OutOrStdout(), f, summary, state)
			default:
				if err := export.WriteFile(filepath.Clean(output), f, summary, state); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "export format: json, csv, html or all")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (directory for --format all); stdout when empty")
	return cmd
}
