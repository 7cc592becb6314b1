package main

import (
	"fmt"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the PostgreSQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Log.Sync()

			if cfg.StorageDriver != config.StoragePostgres {
				return fmt.Errorf("migrate requires STORAGE_DRIVER=%s", config.StoragePostgres)
			}

			pool, err := database.NewPostgresConnection(cmd.Context(), cfg.DBUrl)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			if err := postgres.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			logger.Log.Info("Schema migrated")
			return nil
		},
	}
}
