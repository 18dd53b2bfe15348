package pdftext

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(path, []byte("definitely not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path, 2)
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.pdf"), 2)
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestDocumentText(t *testing.T) {
	doc := &Document{Pages: []string{"page one", "page two"}}
	if got := doc.Text(); got != "page one\npage two" {
		t.Errorf("Text() = %q", got)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"shorter than limit", "short text", 500, "short text"},
		{"trimmed", "  padded  ", 500, "padded"},
		{"truncated", strings.Repeat("a", 600), 500, strings.Repeat("a", 500)},
		{"empty", "", 500, ""},
		{"multibyte safe", strings.Repeat("é", 600), 500, strings.Repeat("é", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snippet(tt.text, tt.n); got != tt.want {
				t.Errorf("Snippet() = %q, want %q", got, tt.want)
			}
		})
	}
}
