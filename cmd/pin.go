package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
)

// NewPinCmd creates the `catatan pin` command.
func NewPinCmd(app **config.App) *cobra.Command {
	return pinCmd(app, true, "pin", "Pin a note so it sorts first")
}

// NewUnpinCmd creates the `catatan unpin` command.
func NewUnpinCmd(app **config.App) *cobra.Command {
	return pinCmd(app, false, "unpin", "Unpin a note")
}

func pinCmd(app **config.App, pinned bool, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			if err := a.Ctrl.LoadInitialState(context.Background()); err != nil {
				return err
			}

			// Pin status never leaves this machine; the remote API has no
			// pin concept, so this is the same in both modes.
			if !a.Ctrl.TogglePin(args[0], pinned) {
				fmt.Printf("No note with id %s\n", args[0])
				return nil
			}

			if pinned {
				fmt.Printf("Pinned %s\n", args[0])
			} else {
				fmt.Printf("Unpinned %s\n", args[0])
			}
			return nil
		},
	}
}
