// Package main is the entrypoint for the birthday API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/birthdayapi/birthdayapi/internal/config"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "birthdayapi",
		Short: "HTTP service that stores dates of birth and greets users",
		Long: fmt.Sprintf(`birthdayapi (%s)

Stores one date of birth per username and answers with a birthday greeting
or a countdown to the next birthday. Configuration is read from environment
variables, optionally seeded from .env and .env.local.`, Version),
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server (default)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "provision",
			Short: "Create the storage schema or table for the configured backend and exit",
			RunE:  runProvision,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "birthdayapi %s\n", Version)
			},
		},
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env files and the environment, then sets up logging.
func loadConfig() (*config.Config, *slog.Logger, error) {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return nil, nil, err
	}

	return cfg, initLogger(cfg, os.Stdout), nil
}
