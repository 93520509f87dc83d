package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/laiweb/internal/devserver"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
		name string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo component to the browser",
		Long: `Start the development server.

The component runs on the server. The browser renders the HTML
it receives and sends DOM events back over a websocket.

Examples:
  laiweb serve
  laiweb serve --port=8080 --demo=todo
  laiweb serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if name != "" {
				cfg.Dev.Demo = name
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg, os.Stderr)
			srv, err := devserver.New(cfg, devserver.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "  ➜ %s\n", cfg.DevURL())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVarP(&name, "demo", "d", "", "Demo to serve (default from config)")

	return cmd
}
