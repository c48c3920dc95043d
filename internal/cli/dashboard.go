package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/tui"
)

// newDashboardCmd creates the dashboard command launching the interactive TUI.
func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open a full-screen dashboard with today's footprint, the last 7 days and
the emission factor catalog. Pick an activity and press enter to log it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return errors.New("the dashboard needs an interactive terminal; use 'ecotrack today' instead")
			}
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}
			logger.Debug().Ctx(cmd.Context()).Int("activities", a.catalog.Len()).Msg("starting dashboard")
			return tui.Run(cmd.Context(), t, a.catalog.List())
		},
	}
}
