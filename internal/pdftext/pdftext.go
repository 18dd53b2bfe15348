// Package pdftext extracts raw text from PDF files.
package pdftext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable indicates the file is not a readable PDF (missing,
// corrupt, or encrypted). Documents failing with this error are skipped
// entirely; no record is written for them.
var ErrUnreadable = errors.New("unreadable document")

// Document holds the raw text of a PDF, split by page.
type Document struct {
	FilePath  string
	Pages     []string // text of the first pages read, in order
	PageCount int      // total pages in the file, not len(Pages)
}

// Text returns the read pages joined with newlines.
func (d *Document) Text() string {
	return strings.Join(d.Pages, "\n")
}

// Read opens the PDF at path and extracts text from its first maxPages
// pages (all pages if maxPages <= 0). Pages whose text cannot be decoded
// are recorded as empty rather than failing the document.
func Read(path string, maxPages int) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	total := r.NumPage()
	if maxPages <= 0 || maxPages > total {
		maxPages = total
	}

	doc := &Document{
		FilePath:  path,
		Pages:     make([]string, 0, maxPages),
		PageCount: total,
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		doc.Pages = append(doc.Pages, text)
	}

	return doc, nil
}

// Snippet returns the first n characters of text, trimmed. Used for the
// raw_text_snippet column regardless of extraction success.
func Snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.TrimSpace(string(runes))
}
