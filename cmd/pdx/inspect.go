package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mhalverson/paperdex/internal/config"
	"github.com/mhalverson/paperdex/internal/ingest"
)

var (
	inspectNoGrobid  bool
	inspectGrobidURL string
	inspectMaxPages  int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Extract metadata from a single PDF without storing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if inspectGrobidURL != "" {
			cfg.GrobidURL = inspectGrobidURL
		}
		if inspectMaxPages > 0 {
			cfg.MaxPages = inspectMaxPages
		}

		path, err := filepath.Abs(args[0])
		if err != nil {
			exitWithError(ExitError, "resolving path: %v", err)
		}

		extractors := buildExtractors(ctx, cfg, inspectNoGrobid)
		pipeline := ingest.New(nil, extractors, pipelineOptions(cfg)...)

		rec, err := pipeline.ProcessFile(ctx, path)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}

		if humanOutput {
			outputHuman("title:    %s\n", valueOr(rec.Title, "(unknown)"))
			outputHuman("authors:  %v\n", rec.Authors)
			outputHuman("year:     %s\n", intOr(rec.Year, "(unknown)"))
			outputHuman("keywords: %v\n", rec.Keywords)
			return nil
		}
		return outputJSON(rec)
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectNoGrobid, "no-grobid", false, "Skip GROBID metadata extraction")
	inspectCmd.Flags().StringVar(&inspectGrobidURL, "grobid-url", "", "Base URL for GROBID")
	inspectCmd.Flags().IntVar(&inspectMaxPages, "max-pages", 0, "Pages of text read (default 2)")
	rootCmd.AddCommand(inspectCmd)
}
