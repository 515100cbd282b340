package main

import (
	"fmt"
	"os"

	"github.com/diewo77/recipe-api/internal/config"
	"github.com/diewo77/recipe-api/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries what every subcommand needs once the root pre-run has finished.
type cli struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "recipe-api",
		Short: "Recipe management JSON API",
		Long: `recipe-api serves user accounts, bearer tokens and per-user recipes,
tags and ingredients over HTTP.

Run without a subcommand to start the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load environment variables from .env file
			_ = godotenv.Load()
			c.cfg = config.Load()
			logger, err := logging.New(c.cfg.App.LogLevel, c.cfg.App.Dev)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
	root.AddCommand(c.serveCmd(), c.migrateCmd(), c.createSuperuserCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
