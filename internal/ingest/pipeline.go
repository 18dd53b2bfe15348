// Package ingest runs the read-extract-reconcile-persist pipeline over
// a batch of PDF files.
package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhalverson/paperdex/internal/paper"
	"github.com/mhalverson/paperdex/internal/pdftext"
	"github.com/mhalverson/paperdex/internal/reconcile"
	"github.com/mhalverson/paperdex/internal/storage"
)

const (
	// SnippetLen is how many characters of raw text are kept on every
	// record for debugging.
	SnippetLen = 500

	// DefaultMaxPages bounds how many pages of text are extracted per
	// document. Header metadata lives on the first pages.
	DefaultMaxPages = 2

	// DefaultWorkers is the bound on concurrently processed documents.
	DefaultWorkers = 4
)

// Extractor is one stage of the extraction chain. Implementations
// return a sparse result; fields they cannot recover stay absent.
// Extractors are expected to degrade rather than fail: a returned
// error drops only that extractor's contribution for the document.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, doc *pdftext.Document) (paper.Metadata, error)
}

// Pipeline wires the extractor chain to a store. Documents are
// independent units of work; the store upsert is the only shared
// mutation.
type Pipeline struct {
	store      storage.Store
	extractors []Extractor
	maxPages   int
	workers    int

	// readFile is swapped out in tests.
	readFile func(path string, maxPages int) (*pdftext.Document, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxPages sets how many pages of text are read per document.
func WithMaxPages(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxPages = n
		}
	}
}

// WithWorkers bounds the worker pool.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a pipeline. Extractors run in the given order; earlier
// extractors win fields during reconciliation.
func New(store storage.Store, extractors []Extractor, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:      store,
		extractors: extractors,
		maxPages:   DefaultMaxPages,
		workers:    DefaultWorkers,
		readFile:   pdftext.Read,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessFile runs acquisition, extraction, and reconciliation for one
// file without persisting. It fails only when the document itself
// cannot be read (pdftext.ErrUnreadable).
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*paper.Paper, error) {
	doc, err := p.readFile(path, p.maxPages)
	if err != nil {
		return nil, err
	}

	results := make([]paper.Metadata, 0, len(p.extractors))
	for _, ex := range p.extractors {
		md, err := ex.Extract(ctx, doc)
		if err != nil {
			continue
		}
		results = append(results, md)
	}

	rec := reconcile.Merge(path, results...)
	rec.RawTextSnippet = paper.String(pdftext.Snippet(doc.Text(), SnippetLen))
	return &rec, nil
}

// Run processes every path and persists the results. Individual
// failures are recorded in the summary; the batch never aborts because
// one document failed.
func (p *Pipeline) Run(ctx context.Context, paths []string) Summary {
	outcomes := make([]outcome, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.workers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, filePath string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire semaphore
			defer func() { <-sem }() // release semaphore
			outcomes[idx] = p.processOne(ctx, filePath)
		}(i, path)
	}
	wg.Wait()

	summary := Summary{
		RunID:      uuid.NewString(),
		Extractors: p.extractorNames(),
		FinishedAt: time.Now().UTC(),
	}
	for _, out := range outcomes {
		summary.Processed++
		switch {
		case out.err == nil:
			summary.Succeeded++
		case out.stage == StageRead:
			summary.Skipped++
			summary.Failures = append(summary.Failures, Failure{
				Path: out.path, Stage: out.stage, Error: out.err.Error(),
			})
		default:
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{
				Path: out.path, Stage: out.stage, Error: out.err.Error(),
			})
		}
	}
	return summary
}

func (p *Pipeline) extractorNames() []string {
	names := make([]string, len(p.extractors))
	for i, ex := range p.extractors {
		names[i] = ex.Name()
	}
	return names
}

type outcome struct {
	path  string
	stage string
	err   error
}

// processOne is the full per-document sequence. There is no
// mid-document cancellation: a readable document always reaches its
// persistence attempt.
func (p *Pipeline) processOne(ctx context.Context, path string) outcome {
	rec, err := p.ProcessFile(ctx, path)
	if err != nil {
		return outcome{path: path, stage: StageRead, err: err}
	}
	if err := p.store.Upsert(ctx, rec); err != nil {
		return outcome{path: path, stage: StageStore, err: err}
	}
	return outcome{path: path}
}
