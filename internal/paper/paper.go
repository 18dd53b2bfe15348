// Package paper defines the core domain types for ingested papers.
package paper

import "time"

// Paper is the canonical metadata record persisted for one PDF file.
// Every field is final: scalar fields use pointers where NULL is a
// meaningful value, and nil slices mean "unknown" as opposed to an
// empty-but-present list.
type Paper struct {
	// Identity. FilePath is the absolute path of the source PDF and the
	// primary key across the whole store.
	FilePath string `json:"file_path"`

	// Metadata
	Title           *string    `json:"title"`
	DocumentType    *string    `json:"document_type"`
	PublicationDate *time.Time `json:"publication_date"`
	JournalTitle    *string    `json:"journal_title"`
	BookTitle       *string    `json:"book_title"`
	Publisher       *string    `json:"publisher"`
	Authors         []string   `json:"authors"`
	Affiliations    []string   `json:"affiliations"`
	Countries       []string   `json:"countries"`
	Abstract        *string    `json:"abstract"`
	Year            *int       `json:"year"`
	Keywords        []string   `json:"keywords"`

	// RawTextSnippet is the first 500 characters of extracted text,
	// kept for debugging only. It is set even when extraction found
	// nothing else.
	RawTextSnippet *string `json:"raw_text_snippet"`

	// ProcessedAt is refreshed by the store on every upsert.
	ProcessedAt time.Time `json:"processed_at"`
}
