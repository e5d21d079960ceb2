package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
)

// NewPullCmd creates the `catatan pull` command.
func NewPullCmd(app **config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch notes from the remote service into the local cache",
		Long: `Fetch the active and archived collections from the notes service and
refresh the local cache. Requires base_url and a stored login.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			if err := requireClient(a); err != nil {
				return err
			}

			// In API mode the initial load is exactly a pull: both
			// collections come from the service and land in the cache.
			if err := a.Ctrl.LoadInitialState(context.Background()); err != nil {
				return err
			}

			view := a.Ctrl.RecomputeView()
			fmt.Printf("Pulled %d notes (%d active, %d archived)\n",
				view.Counts.All, view.Counts.Active, view.Counts.Archived)
			return nil
		},
	}
}
