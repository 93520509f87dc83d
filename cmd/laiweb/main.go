package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/laiweb/internal/config"
	lwerrors "github.com/vango-dev/laiweb/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		lwerrors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "laiweb",
		Short: "A virtual-tree rendering runtime",
		Long: `laiweb renders components as virtual trees and reconciles them
against a render target.

The CLI renders the bundled demo components to HTML and serves
them to the browser over a websocket, with the component state
living on the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "c", ".", "Directory containing laiweb.json or laiweb.yaml")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text, json (default from config)")

	rootCmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		demosCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads the configuration and applies the global flag overrides.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configDir)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	return cfg, cfg.Validate()
}
