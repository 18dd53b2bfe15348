// Package main provides the pdx CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Pick up DB_* and GROBID_URL from a local .env if present
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pdx",
	Short: "Academic PDF metadata ingester",
	Long: `pdx ingests academic PDF documents and stores one bibliographic
record per file in a relational database.

Metadata comes from a GROBID service when one is reachable, with a
local pattern-based extractor filling the gaps. Re-running ingestion
over the same files is safe: each record is keyed by file path and
fully replaced on every run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
