package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mhalverson/paperdex/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage paperdex configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if humanOutput {
			outputHuman("grobid_url:   %s\n", cfg.GrobidURL)
			outputHuman("store:        %s\n", cfg.Store)
			outputHuman("sqlite_path:  %s\n", cfg.SQLitePath)
			outputHuman("postgres_dsn: %s\n", cfg.PostgresDSN)
			outputHuman("max_pages:    %d\n", cfg.MaxPages)
			outputHuman("workers:      %d\n", cfg.Workers)
			return nil
		}
		return outputJSON(configView{
			GrobidURL:   cfg.GrobidURL,
			Store:       cfg.Store,
			SQLitePath:  cfg.SQLitePath,
			PostgresDSN: cfg.PostgresDSN,
			MaxPages:    cfg.MaxPages,
			Workers:     cfg.Workers,
		})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set writes one key to the config file. Keys: grobid_url, store,
sqlite_path, postgres_dsn, max_pages, workers.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}

		key, value := args[0], args[1]
		switch key {
		case "grobid_url":
			cfg.GrobidURL = value
		case "store":
			if value != config.StoreSQLite && value != config.StorePostgres {
				exitWithError(ExitDataError, "store must be %s or %s", config.StoreSQLite, config.StorePostgres)
			}
			cfg.Store = value
		case "sqlite_path":
			cfg.SQLitePath = value
		case "postgres_dsn":
			cfg.PostgresDSN = value
		case "max_pages":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				exitWithError(ExitDataError, "max_pages must be a positive integer")
			}
			cfg.MaxPages = n
		case "workers":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				exitWithError(ExitDataError, "workers must be a positive integer")
			}
			cfg.Workers = n
		default:
			exitWithError(ExitDataError, "unknown key %q", key)
		}

		if err := cfg.Save(); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("Set %s.\n", key)
			return nil
		}
		return outputJSON(StatusResponse{Status: "updated", Path: config.Path()})
	},
}

// configView is the JSON shape for config get.
type configView struct {
	GrobidURL   string `json:"grobid_url"`
	Store       string `json:"store"`
	SQLitePath  string `json:"sqlite_path"`
	PostgresDSN string `json:"postgres_dsn"`
	MaxPages    int    `json:"max_pages"`
	Workers     int    `json:"workers"`
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
