package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"catatan/cmd/config"
	"catatan/internal/tui/browser"
)

// NewTuiCmd creates the `catatan tui` command.
func NewTuiCmd(app **config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive notes browser",
		Long: `Launch the interactive terminal UI: browse, filter, and search notes,
create and pin them, archive and delete with confirmation, and toggle the
theme. Changes written by other catatan processes show up live.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			a := *app
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// The dialog component collects the confirmation before the
			// controller is asked to delete.
			a.Ctrl.SetConfirm(nil)

			if err := a.Ctrl.LoadInitialState(ctx); err != nil {
				return err
			}

			changes, err := a.Store.Watch(ctx)
			if err != nil {
				a.Log.WithError(err).Warn("storage watching unavailable")
				changes = nil
			}

			model := browser.New(a.Ctrl, changes)
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			return nil
		},
	}
}
