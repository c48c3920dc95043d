package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/tracker"
)

// newTodayCmd creates the today command showing today's footprint.
func newTodayCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's footprint by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(a, output)
			if err != nil {
				return err
			}
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}

			s := t.Summary()
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			return renderReport(cmd.OutOrStdout(), a.todayReport(s))
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func (a *app) todayReport(s tracker.Summary) report {
	r := report{Title: "Today " + s.Date}
	for _, c := range footprint.Categories() {
		line := reportLine{Label: categoryLabel(c), Value: a.formatKg(s.Today.Value(c))}
		if s.Today.Value(c) < 0 {
			line.Color = ecoColor()
		}
		r.Lines = append(r.Lines, line)
	}
	r.Lines = append(r.Lines,
		reportLine{Label: "Total", Value: a.formatKg(s.Today.Total), Color: titleColor()},
		reportLine{Label: "Car distance", Value: fmt.Sprintf("%d km", s.CarKmToday)},
		reportLine{Label: "Trees to offset", Value: fmt.Sprintf("%d (for a year of days like today)", s.Trees.Today)},
	)
	r.Notes = s.Feedback
	return r
}

// categoryLabel capitalises a category name.
func categoryLabel(c footprint.Category) string {
	s := c.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
