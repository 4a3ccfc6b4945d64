package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagesync/pkg/dataset"
)

// LoadDocument reads a JSON fixture into a dataset.Document using a file
// source. Fails the test on error to keep table tests concise.
func LoadDocument(t *testing.T, path string) dataset.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (dataset.Document, error) {
	if path == "" {
		return dataset.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return dataset.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := dataset.FromJSON(dataset.SourceFromFile(path), data)
	if err != nil {
		return dataset.Document{}, fmt.Errorf("testsupport: decode document: %w", err)
	}
	return doc, nil
}

// DocumentFromString builds a Document from an inline JSON payload.
func DocumentFromString(t *testing.T, location, payload string) dataset.Document {
	t.Helper()

	doc, err := dataset.FromJSON(dataset.SourceFromFile(location), []byte(payload))
	if err != nil {
		t.Fatalf("document %s: %v", location, err)
	}
	return doc
}

// WriteSite materialises files (relative path → contents) under a fresh
// temporary directory and returns its root.
func WriteSite(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

// MustReadFile returns the contents of path as a string.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
