package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
	"catatan/pkg/models"
)

// NewThemeCmd creates the `catatan theme` command.
func NewThemeCmd(app **config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or change the color theme",
		Long: `Show the current theme, set it explicitly, or toggle it.

The preference is persisted and shared with the TUI; without one the
terminal background decides.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			// Theme lives outside the note collection; no state load needed.
			a.Ctrl.ReloadTheme()

			if len(args) == 0 {
				fmt.Println(a.Ctrl.Theme())
				return nil
			}

			switch args[0] {
			case "toggle":
				fmt.Println(a.Ctrl.ToggleTheme())
			case string(models.ThemeLight), string(models.ThemeDark):
				a.Ctrl.UpdateTheme(models.Theme(args[0]))
				fmt.Println(a.Ctrl.Theme())
			default:
				return fmt.Errorf("unknown theme %q, want light, dark, or toggle", args[0])
			}
			return nil
		},
	}
}
