package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mhalverson/paperdex/internal/config"
	"github.com/mhalverson/paperdex/internal/grobid"
	"github.com/mhalverson/paperdex/internal/heuristic"
	"github.com/mhalverson/paperdex/internal/ingest"
	"github.com/mhalverson/paperdex/internal/storage"
)

// openStore opens the configured persistence backend.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return storage.OpenSQLite(cfg.SQLitePath)
	case config.StorePostgres:
		return storage.OpenPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// buildExtractors assembles the extractor chain. GROBID leads when it
// is enabled and answers its liveness probe; the heuristic extractor
// always closes the chain so the pipeline works with no service at all.
func buildExtractors(ctx context.Context, cfg *config.Config, noGrobid bool) []ingest.Extractor {
	var chain []ingest.Extractor
	if !noGrobid {
		client := grobid.NewClient(cfg.GrobidURL)
		if client.IsAlive(ctx) {
			chain = append(chain, grobid.NewExtractor(client))
		}
	}
	return append(chain, heuristic.New())
}

// pipelineOptions translates config values to pipeline options.
func pipelineOptions(cfg *config.Config) []ingest.Option {
	var opts []ingest.Option
	if cfg.MaxPages > 0 {
		opts = append(opts, ingest.WithMaxPages(cfg.MaxPages))
	}
	if cfg.Workers > 0 {
		opts = append(opts, ingest.WithWorkers(cfg.Workers))
	}
	return opts
}
