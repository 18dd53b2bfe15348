package main

import (
	"github.com/spf13/cobra"

	"github.com/mhalverson/paperdex/internal/config"
)

var (
	initdbStore  string
	initdbDBPath string
	initdbDSN    string
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Provision the papers schema in the configured store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if initdbStore != "" {
			cfg.Store = initdbStore
		}
		if initdbDBPath != "" {
			cfg.SQLitePath = initdbDBPath
		}
		if initdbDSN != "" {
			cfg.PostgresDSN = initdbDSN
		}

		store, err := openStore(ctx, cfg)
		if err != nil {
			exitWithError(ExitDataError, "opening store: %v", err)
		}
		defer store.Close()

		if err := store.Init(ctx); err != nil {
			exitWithError(ExitDataError, "initializing schema: %v", err)
		}

		if humanOutput {
			outputHuman("Schema ready (%s).\n", cfg.Store)
			return nil
		}
		return outputJSON(StatusResponse{Status: "initialized", Path: cfg.Store})
	},
}

func init() {
	initdbCmd.Flags().StringVar(&initdbStore, "store", "", "Store backend: sqlite or postgres")
	initdbCmd.Flags().StringVar(&initdbDBPath, "db", "", "SQLite database path")
	initdbCmd.Flags().StringVar(&initdbDSN, "dsn", "", "Postgres connection string")
	rootCmd.AddCommand(initdbCmd)
}
