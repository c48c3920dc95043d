package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tracker"
)

// newCompareCmd creates the compare command against the regional average.
func newCompareCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare your daily average with the regional average",
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
				return writeJSON(cmd.OutOrStdout(), s.Region)
			}
			return renderReport(cmd.OutOrStdout(), a.compareReport(s))
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func (a *app) compareReport(s tracker.Summary) report {
	region := s.Region
	r := report{
		Title: "Regional comparison",
		Lines: []reportLine{
			{Label: "Your daily avg", Value: a.formatKg(region.UserDailyKg)},
			{Label: "Regional avg", Value: a.formatKg(region.RegionalKg)},
		},
	}

	if region.Status == greenops.StatusNoData {
		r.Lines = append(r.Lines, reportLine{Label: "Status", Value: string(region.Status), Color: statusColor(region.Status)})
		r.Notes = []string{"Log some activities to compare with the regional average."}
		return r
	}

	r.Lines = append(r.Lines,
		reportLine{Label: "Difference", Value: a.formatKg(region.Difference)},
		reportLine{Label: "Percentage", Value: formatPercent(region.Percentage)},
		reportLine{Label: "Status", Value: string(region.Status), Color: statusColor(region.Status)},
	)
	r.Notes = s.Feedback
	return r
}
