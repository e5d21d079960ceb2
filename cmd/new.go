package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
)

// NewNewCmd creates the `catatan new` command.
func NewNewCmd(app **config.App) *cobra.Command {
	var (
		noteBody  string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new note",
		Long: `Create a note with the given title. The body comes from --body or stdin.

Examples:
  catatan new "meeting notes" -b "discuss roadmap"
  echo "quick thought" | catatan new "idea"
  catatan new "imported" < body.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			// Auto-detect piped stdin if not explicitly set
			if !cmd.Flags().Changed("stdin") {
				stat, err := os.Stdin.Stat()
				if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
					fromStdin = true
				}
			}

			body := noteBody
			if fromStdin {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				body = string(raw)
			}

			ctx := context.Background()
			if err := a.Ctrl.LoadInitialState(ctx); err != nil {
				return err
			}

			note, err := a.Ctrl.CreateNote(ctx, args[0], body)
			if err != nil {
				return err
			}

			fmt.Printf("Created note %s: %s\n", note.ID, note.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&noteBody, "body", "b", "", "note body")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the body from stdin")

	return cmd
}
