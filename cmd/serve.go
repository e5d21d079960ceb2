package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"catatan/cmd/config"
	"catatan/internal/mockapi"
)

// NewServeCmd creates the `catatan serve` command.
func NewServeCmd(app **config.App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local mock of the notes API",
		Long: `Run an in-memory mock of the remote notes service for development and
testing. Point the client at it with --base-url:

  catatan serve --addr :3001 &
  catatan --base-url http://localhost:3001/v2 login --email demo@example.com

A demo account (demo@example.com / password) is pre-provisioned. State
lives in memory and is gone when the server stops.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			server := mockapi.New(a.Log)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Handler("/v2"),
				ReadHeaderTimeout: 5 * time.Second,
			}

			fmt.Printf("Mock notes API listening on %s (base URL http://localhost%s/v2)\n", addr, addr)
			return httpServer.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3001", "listen address")

	return cmd
}
