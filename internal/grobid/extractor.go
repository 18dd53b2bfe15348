package grobid

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mhalverson/paperdex/internal/paper"
	"github.com/mhalverson/paperdex/internal/pdftext"
)

// Extractor adapts the GROBID client to the pipeline's extractor
// contract. Service failures of any kind degrade to an empty result:
// the pipeline stays fully functional with no GROBID running.
type Extractor struct {
	client *Client
}

// NewExtractor wraps a client. A nil client yields an extractor that
// always returns an empty result.
func NewExtractor(client *Client) *Extractor {
	return &Extractor{client: client}
}

// Name identifies this extractor in pipeline output.
func (e *Extractor) Name() string { return "grobid" }

// Extract uploads the document to GROBID and maps the TEI response.
// It never returns an error; anything that goes wrong between here and
// the service yields an empty result instead.
func (e *Extractor) Extract(ctx context.Context, doc *pdftext.Document) (paper.Metadata, error) {
	if e.client == nil {
		return paper.Metadata{}, nil
	}

	f, err := os.Open(doc.FilePath)
	if err != nil {
		return paper.Metadata{}, nil
	}
	defer f.Close()

	tei, err := e.client.ProcessHeader(ctx, f, filepath.Base(doc.FilePath))
	if err != nil {
		return paper.Metadata{}, nil
	}
	return MapTEI(tei), nil
}
