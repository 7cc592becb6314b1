package main

import (
	"fmt"
	"os"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	"go-jobboard-backend/pkg/logger"

	"github.com/spf13/cobra"
)

// @title           Job Board API
// @version         1.0
// @description     Employee profiles, job postings and applications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var seedPath string

	root := &cobra.Command{
		Use:          "jobboard-api",
		Short:        "Job board backend",
		Long:         "Serves the profile, job and application API. Runs the server when no subcommand is given.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), seedPath)
		},
	}
	root.PersistentFlags().StringVar(&seedPath, "seed", "", "YAML file of employees and companies for the memory storage driver")

	root.AddCommand(
		newServeCmd(&seedPath),
		newMigrateCmd(),
		newTokenCmd(),
	)
	return root
}

// bootstrap loads configuration and starts the global logger.
func bootstrap() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.LogMode); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	for _, w := range cfg.Warnings {
		logger.Log.Warn(w)
	}
	return cfg, nil
}
