package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mhalverson/paperdex/internal/paper"
)

// Postgres implements Store on PostgreSQL. String sequences map to
// TEXT[] columns; a NULL array means absent, an empty array means a
// present empty list.
//
// The pool is externally owned: the caller creates it and closes it
// via Close.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)
var _ Store = (*SQLite)(nil)

// NewPostgres creates a Postgres store using an existing pgxpool.Pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// OpenPostgres connects a pool for dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Init creates the papers table if it doesn't exist.
func (p *Postgres) Init(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			file_path TEXT PRIMARY KEY,
			title TEXT,
			document_type TEXT,
			publication_date DATE,
			journal_title TEXT,
			book_title TEXT,
			publisher TEXT,
			authors TEXT[],
			affiliations TEXT[],
			countries TEXT[],
			abstract TEXT,
			year INTEGER,
			keywords TEXT[],
			raw_text_snippet TEXT,
			processed_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year) WHERE year IS NOT NULL;
	`
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Upsert inserts or fully replaces the record keyed by file path.
func (p *Postgres) Upsert(ctx context.Context, rec *paper.Paper) error {
	now := time.Now().UTC()
	rec.ProcessedAt = now

	_, err := p.pool.Exec(ctx, `
		INSERT INTO papers (
			file_path, title, document_type, publication_date,
			journal_title, book_title, publisher,
			authors, affiliations, countries,
			abstract, year, keywords, raw_text_snippet,
			processed_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (file_path) DO UPDATE SET
			title = EXCLUDED.title,
			document_type = EXCLUDED.document_type,
			publication_date = EXCLUDED.publication_date,
			journal_title = EXCLUDED.journal_title,
			book_title = EXCLUDED.book_title,
			publisher = EXCLUDED.publisher,
			authors = EXCLUDED.authors,
			affiliations = EXCLUDED.affiliations,
			countries = EXCLUDED.countries,
			abstract = EXCLUDED.abstract,
			year = EXCLUDED.year,
			keywords = EXCLUDED.keywords,
			raw_text_snippet = EXCLUDED.raw_text_snippet,
			processed_at = EXCLUDED.processed_at,
			updated_at = EXCLUDED.updated_at
	`,
		rec.FilePath, rec.Title, rec.DocumentType, rec.PublicationDate,
		rec.JournalTitle, rec.BookTitle, rec.Publisher,
		rec.Authors, rec.Affiliations, rec.Countries,
		rec.Abstract, rec.Year, rec.Keywords, rec.RawTextSnippet,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", rec.FilePath, err)
	}
	return nil
}

// Get fetches one record by file path.
func (p *Postgres) Get(ctx context.Context, filePath string) (*paper.Paper, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT file_path, title, document_type, publication_date,
			journal_title, book_title, publisher,
			authors, affiliations, countries,
			abstract, year, keywords, raw_text_snippet, processed_at
		FROM papers WHERE file_path = $1
	`, filePath)

	var rec paper.Paper
	err := row.Scan(
		&rec.FilePath, &rec.Title, &rec.DocumentType, &rec.PublicationDate,
		&rec.JournalTitle, &rec.BookTitle, &rec.Publisher,
		&rec.Authors, &rec.Affiliations, &rec.Countries,
		&rec.Abstract, &rec.Year, &rec.Keywords, &rec.RawTextSnippet,
		&rec.ProcessedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", filePath, err)
	}
	return &rec, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
