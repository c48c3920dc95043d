package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/tracker"
)

// newLogCmd creates the log command that records one activity.
func newLogCmd(a *app) *cobra.Command {
	var (
		quantity float64
		carbon   float64
	)

	cmd := &cobra.Command{
		Use:   "log <category> <type>",
		Short: "Record an activity",
		Long: `Record a transport, food or energy activity.

The carbon value comes from the emission factor catalog multiplied by
--quantity. Use --carbon to record an activity that is not in the catalog
or whose footprint you already know.`,
		Example: `  # A car trip using the catalog factor
  ecotrack log transport car

  # Three LED bulbs switched on for the day
  ecotrack log energy led --quantity 3

  # A ferry ride with a known footprint
  ecotrack log transport ferry --carbon 12.5`,
		Args: cobra.ExactArgs(2), //nolint:mnd // category and type
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}

			category := strings.ToLower(args[0])
			activityType := strings.ToLower(args[1])

			var event footprint.ActivityEvent
			if cmd.Flags().Changed("carbon") {
				event, err = t.LogCustom(cmd.Context(), category, activityType, carbon)
			} else {
				event, err = t.Log(cmd.Context(), category, activityType, quantity)
			}

			switch {
			case err == nil:
			case event.ID != "":
				// Recorded in memory only; the process is about to exit.
				fmt.Fprintf(out, "Logged %s/%s: %s CO2\n", event.Category, event.Type, a.formatKg(event.CarbonKg))
				return fmt.Errorf("activity could not be saved: %w", err)
			case errors.Is(err, tracker.ErrUnknownActivity):
				return fmt.Errorf("%w (see 'ecotrack catalog %s', or pass --carbon)", err, category)
			default:
				return err
			}

			fmt.Fprintf(out, "Logged %s/%s: %s CO2\n", event.Category, event.Type, a.formatKg(event.CarbonKg))
			if event.IsEcoChoice() {
				fmt.Fprintln(out, "Eco choice, nice work.")
			}

			today := t.Aggregator().Bucket(footprint.ToDateKey(event.OccurredAt))
			fmt.Fprintf(out, "Today so far: %s\n", a.formatKg(today.Total))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 1, "number of units of the activity")
	cmd.Flags().Float64Var(&carbon, "carbon", 0, "explicit carbon value in kg CO2 (bypasses the catalog)")
	cmd.MarkFlagsMutuallyExclusive("quantity", "carbon")

	return cmd
}
