package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhalverson/paperdex/internal/config"
	"github.com/mhalverson/paperdex/internal/ingest"
)

var (
	ingestRecursive bool
	ingestDryRun    bool
	ingestNoGrobid  bool
	ingestGrobidURL string
	ingestStore     string
	ingestDBPath    string
	ingestDSN       string
	ingestWorkers   int
	ingestMaxPages  int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <directory>",
	Short: "Ingest PDF metadata from a directory",
	Long: `Ingest scans a directory for PDF files, extracts bibliographic
metadata from each, and upserts one record per file into the store.

Unreadable PDFs are skipped with a logged failure; a persistence
failure on one document does not stop the rest of the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestRecursive, "recursive", false, "Scan subdirectories")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Parse files without writing to the store")
	ingestCmd.Flags().BoolVar(&ingestNoGrobid, "no-grobid", false, "Skip GROBID metadata extraction")
	ingestCmd.Flags().StringVar(&ingestGrobidURL, "grobid-url", "", "Base URL for GROBID")
	ingestCmd.Flags().StringVar(&ingestStore, "store", "", "Store backend: sqlite or postgres")
	ingestCmd.Flags().StringVar(&ingestDBPath, "db", "", "SQLite database path")
	ingestCmd.Flags().StringVar(&ingestDSN, "dsn", "", "Postgres connection string")
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "Concurrent documents (default 4)")
	ingestCmd.Flags().IntVar(&ingestMaxPages, "max-pages", 0, "Pages of text read per document (default 2)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfigWithFlags()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	paths, err := ingest.ListPDFs(args[0], ingestRecursive)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if len(paths) == 0 {
		if humanOutput {
			outputHuman("No PDF files found.\n")
		} else {
			outputJSON(StatusResponse{Status: "empty", Path: args[0]})
		}
		return nil
	}

	extractors := buildExtractors(ctx, cfg, ingestNoGrobid)

	if ingestDryRun {
		pipeline := ingest.New(nil, extractors, pipelineOptions(cfg)...)
		for _, path := range paths {
			rec, err := pipeline.ProcessFile(ctx, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
				continue
			}
			if humanOutput {
				outputHuman("[DRY RUN] %s -> %s\n", path, valueOr(rec.Title, "(no title)"))
			} else {
				outputJSON(rec)
			}
		}
		return nil
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		exitWithError(ExitDataError, "opening store: %v", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		exitWithError(ExitDataError, "initializing store: %v", err)
	}

	pipeline := ingest.New(store, extractors, pipelineOptions(cfg)...)
	summary := pipeline.Run(ctx, paths)

	for _, failure := range summary.Failures {
		outputError(ExitError, "%s %s: %s", failure.Stage, failure.Path, failure.Error)
	}

	if humanOutput {
		outputHuman("Processed %d papers: %d stored, %d skipped, %d failed.\n",
			summary.Processed, summary.Succeeded, summary.Skipped, summary.Failed)
	} else {
		outputJSON(summary)
	}
	return nil
}

// loadConfigWithFlags loads configuration and layers command-line
// flags on top.
func loadConfigWithFlags() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if ingestGrobidURL != "" {
		cfg.GrobidURL = ingestGrobidURL
	}
	if ingestStore != "" {
		cfg.Store = ingestStore
	}
	if ingestDBPath != "" {
		cfg.SQLitePath = ingestDBPath
	}
	if ingestDSN != "" {
		cfg.PostgresDSN = ingestDSN
	}
	if ingestWorkers > 0 {
		cfg.Workers = ingestWorkers
	}
	if ingestMaxPages > 0 {
		cfg.MaxPages = ingestMaxPages
	}
	if cfg.Store != config.StoreSQLite && cfg.Store != config.StorePostgres {
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	return cfg, nil
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
