// Package reconcile merges sparse extraction results into one canonical
// paper record. It is pure: no I/O, deterministic given its inputs.
package reconcile

import (
	"strings"

	"github.com/mhalverson/paperdex/internal/paper"
)

// Merge folds extraction results, highest precedence first, into a
// canonical record for filePath. Each field is taken wholly from the
// first extractor that supplied a usable value; sources are never
// blended within a field. Fields no extractor supplied stay unknown
// (nil).
func Merge(filePath string, results ...paper.Metadata) paper.Paper {
	rec := paper.Paper{FilePath: filePath}

	rec.Title = pickString(results, func(m paper.Metadata) *string { return m.Title })
	rec.DocumentType = pickString(results, func(m paper.Metadata) *string { return m.DocumentType })
	rec.JournalTitle = pickString(results, func(m paper.Metadata) *string { return m.JournalTitle })
	rec.BookTitle = pickString(results, func(m paper.Metadata) *string { return m.BookTitle })
	rec.Publisher = pickString(results, func(m paper.Metadata) *string { return m.Publisher })
	rec.Abstract = pickString(results, func(m paper.Metadata) *string { return m.Abstract })

	rec.Authors = pickSlice(results, func(m paper.Metadata) []string { return m.Authors })
	rec.Affiliations = pickSlice(results, func(m paper.Metadata) []string { return m.Affiliations })
	rec.Countries = pickSlice(results, func(m paper.Metadata) []string { return m.Countries })
	rec.Keywords = pickSlice(results, func(m paper.Metadata) []string { return m.Keywords })

	date := pickDate(results)
	if date != nil && !date.IsZero() {
		resolved := date.Resolve()
		rec.PublicationDate = &resolved
	}

	rec.Year = pickInt(results, func(m paper.Metadata) *int { return m.Year })
	if rec.Year == nil && rec.PublicationDate != nil {
		rec.Year = paper.Int(rec.PublicationDate.Year())
	}

	return rec
}

// pickString selects the first non-absent value that survives
// whitespace normalization. Values empty after trimming count as
// absent.
func pickString(results []paper.Metadata, get func(paper.Metadata) *string) *string {
	for _, m := range results {
		if v := get(m); v != nil {
			if normalized := normalizeSpace(*v); normalized != "" {
				return &normalized
			}
		}
	}
	return nil
}

// pickSlice selects the first present non-empty sequence, normalizing
// its elements while preserving order and duplicates. When every
// source is either absent or empty, a present-but-empty sequence still
// beats absence, keeping the two distinguishable downstream.
func pickSlice(results []paper.Metadata, get func(paper.Metadata) []string) []string {
	var emptyPresent []string
	for _, m := range results {
		v := get(m)
		if v == nil {
			continue
		}
		if len(v) == 0 {
			if emptyPresent == nil {
				emptyPresent = []string{}
			}
			continue
		}
		out := make([]string, 0, len(v))
		for _, s := range v {
			if normalized := normalizeSpace(s); normalized != "" {
				out = append(out, normalized)
			}
		}
		if len(out) > 0 {
			return out
		}
		if emptyPresent == nil {
			emptyPresent = []string{}
		}
	}
	return emptyPresent
}

func pickInt(results []paper.Metadata, get func(paper.Metadata) *int) *int {
	for _, m := range results {
		if v := get(m); v != nil && *v != 0 {
			return v
		}
	}
	return nil
}

func pickDate(results []paper.Metadata) *paper.PartialDate {
	for _, m := range results {
		if m.PublicationDate != nil && !m.PublicationDate.IsZero() {
			return m.PublicationDate
		}
	}
	return nil
}

// normalizeSpace trims and collapses runs of internal whitespace.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
