// Package storage persists canonical paper records. Two backends are
// provided: an embedded SQLite database and PostgreSQL.
package storage

import (
	"context"
	"errors"

	"github.com/mhalverson/paperdex/internal/paper"
)

// ErrNotFound indicates no record exists for the requested file path.
var ErrNotFound = errors.New("paper not found")

// Store is the persistence contract the pipeline needs: an
// upsert-by-file-path that fully replaces any prior record.
type Store interface {
	// Init provisions the schema. Safe to call more than once.
	Init(ctx context.Context) error

	// Upsert writes rec, replacing any record with the same file path
	// outright. It stamps rec.ProcessedAt with the write time. The
	// write is atomic per record: concurrent readers see either the
	// old row or the new one, never a mix.
	Upsert(ctx context.Context, rec *paper.Paper) error

	// Get fetches the record for filePath, or ErrNotFound.
	Get(ctx context.Context, filePath string) (*paper.Paper, error)

	// Close releases the underlying connection(s).
	Close() error
}
