package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tracker"
)

// impactOutput is the JSON shape of the impact command.
type impactOutput struct {
	Period      greenops.Period `json:"period"`
	CarbonKg    float64         `json:"carbon_kg"`
	Trees       int             `json:"trees_to_offset"`
	CarKm       int64           `json:"car_km"`
	DisplayText string          `json:"display_text,omitempty"`
}

// newImpactCmd creates the impact command translating a period's footprint
// into tree and car-distance equivalents.
func newImpactCmd(a *app) *cobra.Command {
	var (
		period string
		output string
	)

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Show trees needed to offset your footprint",
		Long: `Translate a footprint into trees needed to absorb it over a year and
the equivalent distance driven in an average car.

  day    today's total, as if every day of the year looked like today
  month  this month's total, as if every month looked like this one
  year   the all-time daily average over a full year`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := greenops.ParsePeriod(period)
			if err != nil {
				return err
			}
			format, err := resolveOutputFormat(a, output)
			if err != nil {
				return err
			}
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}

			out, err := computeImpact(t.Summary(), p)
			if err != nil {
				return err
			}
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return renderReport(cmd.OutOrStdout(), a.impactReport(out))
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", string(greenops.PeriodDay), "period: day, month or year")
	addOutputFlag(cmd, &output)
	return cmd
}

// computeImpact picks the footprint for period and derives its equivalents.
func computeImpact(s tracker.Summary, p greenops.Period) (impactOutput, error) {
	out := impactOutput{Period: p}
	switch p {
	case greenops.PeriodDay:
		out.CarbonKg = s.Today.Total
	case greenops.PeriodMonth:
		out.CarbonKg = s.MonthTotal
	case greenops.PeriodYear:
		out.CarbonKg = s.AverageAll * daysPerYear
	}

	trees, err := greenops.TreesToOffset(out.CarbonKg, p)
	if err != nil {
		return out, fmt.Errorf("computing trees: %w", err)
	}
	out.Trees = trees
	out.CarKm = greenops.ToCarKmEquivalent(out.CarbonKg)

	// The equivalency text counts trees over a year, so it only matches the
	// tree figure above for the yearly period.
	if p != greenops.PeriodYear {
		return out, nil
	}
	if eq, eqErr := greenops.Calculate(greenops.CarbonInput{Value: out.CarbonKg, Unit: "kg"}); eqErr == nil && !eq.IsEmpty {
		out.DisplayText = eq.DisplayText
	}
	return out, nil
}

// daysPerYear annualises the all-time daily average.
const daysPerYear = 365

func (a *app) impactReport(out impactOutput) report {
	r := report{
		Title: "Impact (" + string(out.Period) + ")",
		Lines: []reportLine{
			{Label: "Footprint", Value: a.formatKg(out.CarbonKg)},
			{Label: "Trees to offset", Value: fmt.Sprintf("%d", out.Trees), Color: titleColor()},
			{Label: "Car distance", Value: greenops.FormatNumber(out.CarKm) + " km"},
		},
	}
	if out.DisplayText != "" {
		r.Notes = append(r.Notes, out.DisplayText)
	}
	return r
}
