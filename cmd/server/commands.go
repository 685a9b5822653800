package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/logging"
	"tasktracker/internal/server"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tasktracker",
		Short: "Task tracker HTTP API",
		Long: `Serves the task tracker API. Configuration is read from the
environment and an optional .env file in the working directory.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
	root.AddCommand(newMigrateCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := database.ParseDirection(args[0])
			if err != nil {
				return err
			}
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			if err := database.Migrate(cfg.DSN(), dir); err != nil {
				logger.Error("migration failed", "direction", dir, "error", err)
				return err
			}
			logger.Info("migration complete", "direction", dir)
			return nil
		},
	}
}

func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func serve() error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	s, err := server.Init(cfg, logger)
	if err != nil {
		logger.Error("server initialization failed", "error", err)
		return err
	}
	return s.Run()
}
