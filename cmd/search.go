package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
	"catatan/pkg/models"
	"catatan/pkg/search"
)

// NewSearchCmd creates the `catatan search` command.
func NewSearchCmd(app **config.App) *cobra.Command {
	var (
		searchFilter string
		searchLimit  int
		searchJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across notes",
		Long: `Search notes with the SQLite full-text index. The index is rebuilt from
the current collection on every run, so results always match local state.

Examples:
  catatan search shopping
  catatan search "fried rice" -f archived
  catatan search golang --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			if err := a.Ctrl.LoadInitialState(context.Background()); err != nil {
				return err
			}

			idx, err := search.NewIndex(config.IndexPath())
			if err != nil {
				return fmt.Errorf("open search index: %w", err)
			}
			defer func() { _ = idx.Close() }()

			if err := idx.Reindex(a.Ctrl.Notes()); err != nil {
				return fmt.Errorf("reindex: %w", err)
			}

			results, err := idx.Search(args[0], &search.Options{
				Filter: models.ParseFilter(searchFilter),
				Limit:  searchLimit,
			})
			if err != nil {
				return err
			}

			if searchJSON {
				return outputJSON(results)
			}
			if len(results) == 0 {
				fmt.Println("No matches")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCREATED")
			for _, n := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Title, n.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&searchFilter, "filter", "f", "all", "restrict to all, active, archived, or pinned")
	cmd.Flags().IntVar(&searchLimit, "limit", 50, "maximum results")
	cmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")

	return cmd
}
