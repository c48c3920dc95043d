package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/footprint"
)

const (
	defaultHistoryLimit = 20
	tabwriterPadding    = 2
	historyTimeLayout   = "2006-01-02 15:04"
)

// newHistoryCmd creates the history command listing recent activities.
func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent activities, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0, got %d", limit)
			}
			format, err := resolveOutputFormat(a, output)
			if err != nil {
				return err
			}
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}

			events := t.Recent(limit)
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), events)
			}
			if len(events) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No activities logged yet.")
				return err
			}
			return a.renderHistory(cmd.OutOrStdout(), events)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "maximum activities to show (0 = all retained)")
	addOutputFlag(cmd, &output)
	return cmd
}

func (a *app) renderHistory(w io.Writer, events []footprint.ActivityEvent) error {
	if isWriterTerminal(w) {
		return a.renderStyledHistory(w, events)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "TIME\tCATEGORY\tTYPE\tCO2")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.OccurredAt.UTC().Format(historyTimeLayout), e.Category, e.Type, a.formatKg(e.CarbonKg))
	}
	return tw.Flush()
}

func (a *app) renderStyledHistory(w io.Writer, events []footprint.ActivityEvent) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	ecoStyle := cellStyle.Foreground(ecoColor())

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.OccurredAt.In(time.Local).Format(historyTimeLayout),
			e.Category.String(),
			e.Type,
			a.formatKg(e.CarbonKg),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor())).
		Headers("TIME", "CATEGORY", "TYPE", "CO2").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(events) && events[row].IsEcoChoice() {
				return ecoStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
