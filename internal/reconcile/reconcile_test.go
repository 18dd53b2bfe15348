package reconcile

import (
	"reflect"
	"testing"
	"time"

	"github.com/mhalverson/paperdex/internal/paper"
)

func TestMergePrecedence(t *testing.T) {
	primary := paper.Metadata{
		Title:   paper.String("Primary Title"),
		Authors: []string{"P. Author"},
	}
	fallback := paper.Metadata{
		Title:    paper.String("Fallback Title"),
		Authors:  []string{"F. Author", "G. Author"},
		Abstract: paper.String("Only the fallback found this."),
	}

	rec := Merge("/papers/a.pdf", primary, fallback)

	if rec.Title == nil || *rec.Title != "Primary Title" {
		t.Errorf("title = %v, want Primary Title", rec.Title)
	}
	// Authors are taken wholly from one source, never concatenated.
	if !reflect.DeepEqual(rec.Authors, []string{"P. Author"}) {
		t.Errorf("authors = %v, want [P. Author]", rec.Authors)
	}
	if rec.Abstract == nil || *rec.Abstract != "Only the fallback found this." {
		t.Errorf("abstract = %v, want fallback value", rec.Abstract)
	}
}

func TestMergeEmptyStringLosesToFallback(t *testing.T) {
	// Whitespace-only values count as absent after normalization.
	primary := paper.Metadata{Title: paper.String("   ")}
	fallback := paper.Metadata{Title: paper.String("Real Title")}

	rec := Merge("/papers/a.pdf", primary, fallback)
	if rec.Title == nil || *rec.Title != "Real Title" {
		t.Errorf("title = %v, want Real Title", rec.Title)
	}
}

func TestMergeAbsenceVersusEmpty(t *testing.T) {
	// Neither source has authors at all: the field stays unknown.
	rec := Merge("/papers/a.pdf", paper.Metadata{}, paper.Metadata{})
	if rec.Authors != nil {
		t.Errorf("authors = %v, want nil (unknown)", rec.Authors)
	}

	// One source reports a present-but-empty list: that survives as
	// empty, distinguishable from unknown.
	rec = Merge("/papers/a.pdf", paper.Metadata{Authors: []string{}}, paper.Metadata{})
	if rec.Authors == nil || len(rec.Authors) != 0 {
		t.Errorf("authors = %#v, want present empty list", rec.Authors)
	}
}

func TestMergeDateExpansion(t *testing.T) {
	tests := []struct {
		name string
		date paper.PartialDate
		want time.Time
	}{
		{"year only", paper.PartialDate{Year: 2021}, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"year and month", paper.PartialDate{Year: 2021, Month: 3}, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"full date", paper.PartialDate{Year: 2021, Month: 3, Day: 15}, time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := tt.date
			rec := Merge("/papers/a.pdf", paper.Metadata{PublicationDate: &date})
			if rec.PublicationDate == nil || !rec.PublicationDate.Equal(tt.want) {
				t.Errorf("publication date = %v, want %v", rec.PublicationDate, tt.want)
			}
		})
	}
}

func TestMergeYearDerivedFromDate(t *testing.T) {
	date := paper.PartialDate{Year: 2019, Month: 6}
	rec := Merge("/papers/a.pdf", paper.Metadata{PublicationDate: &date})
	if rec.Year == nil || *rec.Year != 2019 {
		t.Errorf("year = %v, want 2019", rec.Year)
	}
}

func TestMergeExplicitYearWins(t *testing.T) {
	date := paper.PartialDate{Year: 2019}
	rec := Merge("/papers/a.pdf",
		paper.Metadata{Year: paper.Int(2020)},
		paper.Metadata{PublicationDate: &date},
	)
	if rec.Year == nil || *rec.Year != 2020 {
		t.Errorf("year = %v, want 2020", rec.Year)
	}
}

func TestMergeNormalizesWhitespace(t *testing.T) {
	rec := Merge("/papers/a.pdf", paper.Metadata{
		Title:   paper.String("  A   Title\n With   Gaps  "),
		Authors: []string{"  Jane   Doe ", "John\tSmith"},
	})
	if rec.Title == nil || *rec.Title != "A Title With Gaps" {
		t.Errorf("title = %v, want collapsed whitespace", rec.Title)
	}
	if !reflect.DeepEqual(rec.Authors, []string{"Jane Doe", "John Smith"}) {
		t.Errorf("authors = %v", rec.Authors)
	}
}

func TestMergePreservesOrderAndDuplicates(t *testing.T) {
	rec := Merge("/papers/a.pdf", paper.Metadata{
		Keywords: []string{"graphs", "trees", "graphs"},
	})
	if !reflect.DeepEqual(rec.Keywords, []string{"graphs", "trees", "graphs"}) {
		t.Errorf("keywords = %v, want order and duplicates preserved", rec.Keywords)
	}
}

func TestMergeDeterministic(t *testing.T) {
	primary := paper.Metadata{
		Title:    paper.String("Title"),
		Keywords: []string{"a", "b"},
		Year:     paper.Int(2020),
	}
	fallback := paper.Metadata{Abstract: paper.String("Text.")}

	first := Merge("/papers/a.pdf", primary, fallback)
	second := Merge("/papers/a.pdf", primary, fallback)
	if !reflect.DeepEqual(first, second) {
		t.Error("Merge is not deterministic for identical inputs")
	}
}
