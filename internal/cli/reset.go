package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// newResetCmd creates the reset command that wipes all recorded data.
func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all recorded activities and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset deletes all recorded data; re-run with --yes to confirm")
			}
			t, err := a.Tracker(cmd.Context())
			if err != nil {
				return err
			}
			if err := t.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("resetting state: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data has been reset.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deleting all data")
	return cmd
}
