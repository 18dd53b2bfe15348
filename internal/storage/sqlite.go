package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mhalverson/paperdex/internal/paper"
	_ "modernc.org/sqlite"
)

// SQLite implements Store on an embedded SQLite database. String
// sequences are stored as JSON arrays in TEXT columns; NULL keeps the
// absent-vs-empty distinction ([] is a present empty list).
type SQLite struct {
	db *sql.DB
}

// paperColumns is the standard column list for SELECT queries.
const paperColumns = `file_path, title, document_type, publication_date,
	journal_title, book_title, publisher,
	authors_json, affiliations_json, countries_json,
	abstract, year, keywords_json, raw_text_snippet, processed_at`

// OpenSQLite opens or creates a SQLite database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	return &SQLite{db: db}, nil
}

// Init creates the papers table if it doesn't exist.
func (s *SQLite) Init(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			file_path TEXT PRIMARY KEY,
			title TEXT,
			document_type TEXT,
			publication_date TEXT,
			journal_title TEXT,
			book_title TEXT,
			publisher TEXT,
			authors_json TEXT,
			affiliations_json TEXT,
			countries_json TEXT,
			abstract TEXT,
			year INTEGER,
			keywords_json TEXT,
			raw_text_snippet TEXT,
			processed_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year) WHERE year IS NOT NULL;
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Upsert inserts or fully replaces the record keyed by file path.
func (s *SQLite) Upsert(ctx context.Context, rec *paper.Paper) error {
	authors, err := encodeList(rec.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}
	affiliations, err := encodeList(rec.Affiliations)
	if err != nil {
		return fmt.Errorf("encoding affiliations: %w", err)
	}
	countries, err := encodeList(rec.Countries)
	if err != nil {
		return fmt.Errorf("encoding countries: %w", err)
	}
	keywords, err := encodeList(rec.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}

	now := time.Now().UTC()
	rec.ProcessedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO papers (
			file_path, title, document_type, publication_date,
			journal_title, book_title, publisher,
			authors_json, affiliations_json, countries_json,
			abstract, year, keywords_json, raw_text_snippet,
			processed_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (file_path) DO UPDATE SET
			title = excluded.title,
			document_type = excluded.document_type,
			publication_date = excluded.publication_date,
			journal_title = excluded.journal_title,
			book_title = excluded.book_title,
			publisher = excluded.publisher,
			authors_json = excluded.authors_json,
			affiliations_json = excluded.affiliations_json,
			countries_json = excluded.countries_json,
			abstract = excluded.abstract,
			year = excluded.year,
			keywords_json = excluded.keywords_json,
			raw_text_snippet = excluded.raw_text_snippet,
			processed_at = excluded.processed_at,
			updated_at = excluded.updated_at
	`,
		rec.FilePath, rec.Title, rec.DocumentType, encodeDate(rec.PublicationDate),
		rec.JournalTitle, rec.BookTitle, rec.Publisher,
		authors, affiliations, countries,
		rec.Abstract, rec.Year, keywords, rec.RawTextSnippet,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", rec.FilePath, err)
	}
	return nil
}

// Get fetches one record by file path.
func (s *SQLite) Get(ctx context.Context, filePath string) (*paper.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE file_path = ?`, filePath)

	var rec paper.Paper
	var pubDate, processedAt sql.NullString
	var authors, affiliations, countries, keywords sql.NullString

	err := row.Scan(
		&rec.FilePath, &rec.Title, &rec.DocumentType, &pubDate,
		&rec.JournalTitle, &rec.BookTitle, &rec.Publisher,
		&authors, &affiliations, &countries,
		&rec.Abstract, &rec.Year, &keywords, &rec.RawTextSnippet,
		&processedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", filePath, err)
	}

	if rec.PublicationDate, err = decodeDate(pubDate); err != nil {
		return nil, fmt.Errorf("decoding publication_date: %w", err)
	}
	if rec.Authors, err = decodeList(authors); err != nil {
		return nil, fmt.Errorf("decoding authors: %w", err)
	}
	if rec.Affiliations, err = decodeList(affiliations); err != nil {
		return nil, fmt.Errorf("decoding affiliations: %w", err)
	}
	if rec.Countries, err = decodeList(countries); err != nil {
		return nil, fmt.Errorf("decoding countries: %w", err)
	}
	if rec.Keywords, err = decodeList(keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords: %w", err)
	}
	if processedAt.Valid {
		if rec.ProcessedAt, err = time.Parse(time.RFC3339, processedAt.String); err != nil {
			return nil, fmt.Errorf("decoding processed_at: %w", err)
		}
	}

	return &rec, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// encodeList marshals a string sequence to JSON. A nil slice maps to
// NULL, an empty slice to "[]".
func encodeList(values []string) (any, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func decodeList(col sql.NullString) ([]string, error) {
	if !col.Valid {
		return nil, nil
	}
	values := []string{}
	if err := json.Unmarshal([]byte(col.String), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func encodeDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func decodeDate(col sql.NullString) (*time.Time, error) {
	if !col.Valid {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", col.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
