package cmd

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"catatan/cmd/config"
)

// requireClient rejects auth commands when no base URL is configured.
func requireClient(a *config.App) error {
	if a.Client == nil {
		return fmt.Errorf("no base_url configured; set it in config or pass --base-url")
	}
	return nil
}

// NewRegisterCmd creates the `catatan register` command.
func NewRegisterCmd(app **config.App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the notes service",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			if err := requireClient(a); err != nil {
				return err
			}
			if name == "" || email == "" {
				return fmt.Errorf("--name and --email are required")
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			userID, err := a.Client.Register(context.Background(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s (user id %s). Now run: catatan login --email %s\n", name, userID, email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

// NewLoginCmd creates the `catatan login` command.
func NewLoginCmd(app **config.App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			if err := requireClient(a); err != nil {
				return err
			}
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			if err := a.Client.Login(context.Background(), email, password); err != nil {
				return err
			}
			fmt.Println("Logged in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

// NewLogoutCmd creates the `catatan logout` command.
func NewLogoutCmd(app **config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			if err := requireClient(a); err != nil {
				return err
			}
			if err := a.Client.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the `catatan whoami` command.
func NewWhoamiCmd(app **config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			if err := requireClient(a); err != nil {
				return err
			}

			user, err := a.Client.Me(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
