package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
	"catatan/pkg/controller"
	"catatan/pkg/models"
)

// NewListCmd creates the `catatan list` command.
func NewListCmd(app **config.App) *cobra.Command {
	var (
		listFilter string
		listSearch string
		listJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List notes",
		Aliases: []string{"ls"},
		Long: `List notes, pinned first, newest first.

Examples:
  catatan list                     # All notes
  catatan list -f active           # Active notes only
  catatan list -f archived         # Archived notes only
  catatan list -f pinned           # Pinned notes only
  catatan list -s shopping         # Notes matching "shopping"
  catatan list --json              # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			if err := a.Ctrl.LoadInitialState(context.Background()); err != nil {
				return err
			}
			a.Ctrl.SetFilter(models.ParseFilter(listFilter))
			a.Ctrl.SetQuery(listSearch)
			view := a.Ctrl.RecomputeView()

			if listJSON {
				return outputJSON(view.Notes)
			}

			if len(view.Notes) == 0 {
				fmt.Println("No notes found")
				return nil
			}

			printNotesTable(view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "filter: all, active, archived, pinned")
	cmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive title/body search")
	cmd.Flags().BoolVar(&listJSON, "json", false, "output notes as JSON")

	return cmd
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printNotesTable(view controller.View) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED\tFLAGS")
	for _, n := range view.Notes {
		flags := ""
		if n.Pinned {
			flags += "pinned "
		}
		if n.Archived {
			flags += "archived"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.Title, n.CreatedAt.Format("2006-01-02 15:04"), flags)
	}
	_ = w.Flush()

	fmt.Printf("\n%d all · %d active · %d archived · %d pinned\n",
		view.Counts.All, view.Counts.Active, view.Counts.Archived, view.Counts.Pinned)
}
