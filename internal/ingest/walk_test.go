package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestTree lays out a small directory with PDFs at two levels.
func writeTestTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := []string{
		"alpha.pdf",
		"BETA.PDF",
		"notes.txt",
		filepath.Join("nested", "gamma.pdf"),
		filepath.Join("nested", "deeper", "delta.pdf"),
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("%PDF-fake"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestListPDFsNonRecursive(t *testing.T) {
	root := writeTestTree(t)

	paths, err := ListPDFs(root, false)
	if err != nil {
		t.Fatalf("ListPDFs: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
	for _, p := range paths {
		if filepath.Dir(p) != root {
			t.Errorf("non-recursive scan descended into %s", p)
		}
	}
}

func TestListPDFsRecursive(t *testing.T) {
	root := writeTestTree(t)

	paths, err := ListPDFs(root, true)
	if err != nil {
		t.Fatalf("ListPDFs: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("got %d paths, want 4: %v", len(paths), paths)
	}
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			t.Errorf("path not absolute: %s", p)
		}
	}
}

func TestListPDFsMissingDirectory(t *testing.T) {
	if _, err := ListPDFs("/does/not/exist", true); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
