package main

import (
	"os"

	"github.com/spf13/cobra"

	"catatan/cmd"
	"catatan/cmd/config"
)

var app *config.App

func main() {
	rootCmd := &cobra.Command{
		Use:          "catatan",
		Short:        "A notes app with local storage and an optional remote service",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()

		var err error
		app, err = config.NewApp(cmd.TerminalConfirm)
		return err
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewListCmd(&app))
	rootCmd.AddCommand(cmd.NewNewCmd(&app))
	rootCmd.AddCommand(cmd.NewPinCmd(&app))
	rootCmd.AddCommand(cmd.NewUnpinCmd(&app))
	rootCmd.AddCommand(cmd.NewArchiveCmd(&app))
	rootCmd.AddCommand(cmd.NewUnarchiveCmd(&app))
	rootCmd.AddCommand(cmd.NewDeleteCmd(&app))
	rootCmd.AddCommand(cmd.NewThemeCmd(&app))
	rootCmd.AddCommand(cmd.NewSearchCmd(&app))
	rootCmd.AddCommand(cmd.NewExportCmd(&app))
	rootCmd.AddCommand(cmd.NewImportCmd(&app))
	rootCmd.AddCommand(cmd.NewRegisterCmd(&app))
	rootCmd.AddCommand(cmd.NewLoginCmd(&app))
	rootCmd.AddCommand(cmd.NewLogoutCmd(&app))
	rootCmd.AddCommand(cmd.NewWhoamiCmd(&app))
	rootCmd.AddCommand(cmd.NewPullCmd(&app))
	rootCmd.AddCommand(cmd.NewServeCmd(&app))
	rootCmd.AddCommand(cmd.NewTuiCmd(&app))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
