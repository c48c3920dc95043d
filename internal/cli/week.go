package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/footprint"
)

const (
	defaultWeekDays = 7
	maxSeriesDays   = 366
)

// weekOutput is the JSON shape of the week command.
type weekOutput struct {
	Days    int                        `json:"days"`
	Total   float64                    `json:"total"`
	Average float64                    `json:"average"`
	Series  []footprint.DaySeriesPoint `json:"series"`
}

// newWeekCmd creates the week command showing a daily series.
func newWeekCmd(a *app) *cobra.Command {
	var (
		days   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show daily totals for the last days",
		Example: `  # The last 7 days
  ecotrack week

  # The last 30 days as JSON
  ecotrack week --days 30 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days <= 0 || days > maxSeriesDays {
				return fmt.Errorf("--days must be between 1 and %d, got %d", maxSeriesDays, days)
			}
			format, err := resolveOutputFormat(a, output)
			if err != nil {
				return err
			}
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}

			series := t.Aggregator().LastNDays(days, t.Now())
			out := weekOutput{Days: days, Series: series}
			for _, p := range series {
				out.Total += p.Total
			}
			out.Average = out.Total / float64(days)

			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return a.renderWeek(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultWeekDays, "number of days to show, ending today")
	addOutputFlag(cmd, &output)
	return cmd
}

func (a *app) renderWeek(w io.Writer, out weekOutput) error {
	styled := isWriterTerminal(w)

	var maxTotal float64
	for _, p := range out.Series {
		if p.Total > maxTotal {
			maxTotal = p.Total
		}
	}

	title := fmt.Sprintf("LAST %d DAYS", out.Days)
	if styled {
		title = lipgloss.NewStyle().Bold(true).Foreground(titleColor()).Render(title)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	for _, p := range out.Series {
		bar := renderBar(p.Total, maxTotal, defaultBarWidth, styled)
		if _, err := fmt.Fprintf(w, "%s %s %12s %s\n",
			p.Label, p.DateKey, a.formatKg(p.Total), bar); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s\nTotal: %s   Daily average: %s\n",
		strings.Repeat("-", minBoxWidth), a.formatKg(out.Total), a.formatKg(out.Average))
	return err
}
