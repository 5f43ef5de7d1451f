// Package testutil holds fixture and consistency helpers shared by the
// package tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/scipopt/MIP-DD-sub001/model"
)

// FixturePath finds a file under testdata/ from whichever package directory
// the test runs in.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", name),             // repo root
		filepath.Join("..", "testdata", name),       // top-level packages
		filepath.Join("..", "..", "testdata", name), // internal/* and cmd/*
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	t.Fatalf("fixture %s not found; searched: %s", name, strings.Join(candidates, ", "))
	return ""
}

// ReadFixture returns the contents of testdata/<name>.
func ReadFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(FixturePath(t, name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return b
}

// WriteFile writes data to a fresh file in a per-test temporary directory and
// returns its path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", p, err)
	}
	return p
}

// Gzip compresses data with gzip.
func Gzip(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	return buf.Bytes()
}

// Zstd compresses data with zstd.
func Zstd(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

// VerifyProblem checks the structural invariants every assembled problem
// must hold: unique names, consistent lookup tables, in-range triplets and
// per-column blocks ordered by row.
func VerifyProblem[T any](t *testing.T, p *model.Problem[T]) {
	t.Helper()

	if len(p.RowNames) != p.NumRows() || len(p.ColNames) != p.NumCols() {
		t.Fatalf("name tables out of sync: %d/%d row names, %d/%d column names",
			len(p.RowNames), p.NumRows(), len(p.ColNames), p.NumCols())
	}
	for i, name := range p.RowNames {
		if got, ok := p.RowIndex(name); !ok || got != i {
			t.Errorf("row %q resolves to %d (found %v), want %d", name, got, ok, i)
		}
		if name == p.Objective.Name {
			t.Errorf("objective %q also listed as a constraint row", name)
		}
	}
	for j, name := range p.ColNames {
		if got, ok := p.ColIndex(name); !ok || got != j {
			t.Errorf("column %q resolves to %d (found %v), want %d", name, got, ok, j)
		}
	}

	lastCol, lastRow := -1, -1
	for k, e := range p.Entries {
		if e.Row < 0 || e.Row >= p.NumRows() || e.Col < 0 || e.Col >= p.NumCols() {
			t.Fatalf("entry %d (%d, %d) out of range", k, e.Row, e.Col)
		}
		switch {
		case e.Col < lastCol:
			t.Errorf("entry %d: column %d after column %d", k, e.Col, lastCol)
		case e.Col == lastCol && e.Row < lastRow:
			t.Errorf("entry %d: row %d after row %d in column %d", k, e.Row, lastRow, e.Col)
		}
		lastCol, lastRow = e.Col, e.Row
	}
	for k, e := range p.Objective.Entries {
		if e.Col < 0 || e.Col >= p.NumCols() {
			t.Errorf("objective entry %d refers to column %d", k, e.Col)
		}
	}
}
