package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
)

// NewExportCmd creates the `catatan export` command.
func NewExportCmd(app **config.App) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export notes",
		Long: `Export the whole collection as JSON or YAML, or a single note as a
markdown document with frontmatter.

Examples:
  catatan export                      # JSON to stdout
  catatan export --format yaml        # YAML to stdout
  catatan export -o backup.json       # JSON to a file
  catatan export <id> --format md     # One note as markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			if err := a.Ctrl.LoadInitialState(context.Background()); err != nil {
				return err
			}

			var data []byte
			var err error
			switch {
			case len(args) == 1:
				if format != "md" {
					return fmt.Errorf("single-note export is markdown only, pass --format md")
				}
				var doc string
				doc, err = a.Ctrl.ExportMarkdown(args[0])
				data = []byte(doc)
			case format == "yaml":
				data, err = a.Ctrl.ExportYAML()
			case format == "json":
				data, err = a.Ctrl.ExportJSON()
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown format %q, want json, yaml, or md", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format: json, yaml, or md (single note)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")

	return cmd
}

// NewImportCmd creates the `catatan import` command.
func NewImportCmd(app **config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import notes from an exported file",
		Long: `Import notes from a JSON export or a frontmatter markdown document.
Existing ids are replaced; new notes are added. Offline mode only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			if err := a.Ctrl.LoadInitialState(context.Background()); err != nil {
				return err
			}

			count, err := a.Ctrl.ImportData(string(raw), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d note(s)\n", count)
			return nil
		},
	}
}
