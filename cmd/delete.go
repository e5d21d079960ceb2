package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
)

// NewDeleteCmd creates the `catatan delete` command.
func NewDeleteCmd(app **config.App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a note permanently",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			ctx := context.Background()

			if err := a.Ctrl.LoadInitialState(ctx); err != nil {
				return err
			}

			deleted, err := a.Ctrl.DeleteNote(ctx, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				if a.Ctrl.Find(args[0]) != nil {
					fmt.Println("Aborted")
				} else {
					fmt.Printf("No note with id %s\n", args[0])
				}
				return nil
			}

			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if force {
			// Force counts as confirmation already given.
			(*app).Ctrl.SetConfirm(nil)
		}
	}

	return cmd
}

// TerminalConfirm asks a y/N question on the terminal. It is the CLI's
// confirmation collaborator for destructive operations.
func TerminalConfirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
