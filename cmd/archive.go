package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
)

// NewArchiveCmd creates the `catatan archive` command.
func NewArchiveCmd(app **config.App) *cobra.Command {
	return archiveCmd(app, true, "archive", "Move a note into the archive")
}

// NewUnarchiveCmd creates the `catatan unarchive` command.
func NewUnarchiveCmd(app **config.App) *cobra.Command {
	return archiveCmd(app, false, "unarchive", "Move a note back to the active collection")
}

func archiveCmd(app **config.App, archived bool, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			ctx := context.Background()

			if err := a.Ctrl.LoadInitialState(ctx); err != nil {
				return err
			}

			if a.Ctrl.Find(args[0]) == nil {
				fmt.Printf("No note with id %s\n", args[0])
				return nil
			}

			// In API mode the service confirms the move before local state
			// changes; a failure leaves everything untouched.
			if err := a.Ctrl.SetArchived(ctx, args[0], archived); err != nil {
				return err
			}

			if archived {
				fmt.Printf("Archived %s\n", args[0])
			} else {
				fmt.Printf("Unarchived %s\n", args[0])
			}
			return nil
		},
	}
}
