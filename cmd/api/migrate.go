package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainsearch/chainsearch/internal/config"
	"github.com/chainsearch/chainsearch/internal/infra"
	"github.com/chainsearch/chainsearch/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL must be set to run migrations")
			}
			logger := logging.New(cfg.AppName, cfg.LogLevel, cfg.IsDev())

			if direction == "down" {
				return infra.MigrateDown(cfg.DatabaseURL, logger)
			}
			return infra.Migrate(cfg.DatabaseURL, logger)
		},
	}
}
