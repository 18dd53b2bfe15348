package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListPDFs returns the absolute paths of PDF files under root. In
// non-recursive mode only the top level is scanned. Paths come back
// sorted for deterministic batch order.
func ListPDFs(root string, recursive bool) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", abs)
	}

	var paths []string
	if recursive {
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isPDF(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", abs, err)
		}
	} else {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", abs, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				paths = append(paths, filepath.Join(abs, entry.Name()))
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
