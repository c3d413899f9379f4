package pairing

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestByBaseName(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01-Genesis.pdf", "01-Genesis.xlsx", "02-Exodus.pdf", "notes.txt")

	pairs, err := ByBaseName(dir, ".pdf", ".xlsx", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("ByBaseName failed: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %+v", pairs)
	}
	if pairs[0].Name() != "01-Genesis" || filepath.Base(pairs[0].Companion) != "01-Genesis.xlsx" {
		t.Errorf("unexpected pair: %+v", pairs[0])
	}
}

func TestByNumericPrefix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01-Genesis Body - 217.txt", "02-Exodus body.txt", "01-Genesis.xlsx", "02-Exodus.xlsx", "readme.txt")

	pairs, err := ByNumericPrefix(dir, All(Ext(".txt"), Contains("body")), Ext(".xlsx", ".xls"))
	if err != nil {
		t.Fatalf("ByNumericPrefix failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", pairs)
	}
	if filepath.Base(pairs[1].Companion) != "02-Exodus.xlsx" {
		t.Errorf("unexpected pair: %+v", pairs[1])
	}
}

func TestByNumericPrefixFallback(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "genesis body.txt", "book.xlsx")

	pairs, err := ByNumericPrefix(dir, Contains("body"), Ext(".xlsx"))
	if err != nil {
		t.Fatalf("ByNumericPrefix failed: %v", err)
	}
	if len(pairs) != 1 || filepath.Base(pairs[0].Primary) != "genesis body.txt" {
		t.Errorf("expected fallback pair, got %+v", pairs)
	}
}

func TestByPrefix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01-Genesis_subheads.csv", "05-Deut_subheads.csv", "01-Genesis_all_spans.xlsx")

	pairs, unpaired, err := ByPrefix(dir, 3, Contains("subhead"), Contains("_all_spans"))
	if err != nil {
		t.Fatalf("ByPrefix failed: %v", err)
	}
	if len(pairs) != 1 || len(unpaired) != 1 {
		t.Fatalf("pairs=%+v unpaired=%v", pairs, unpaired)
	}
	if Prefix(pairs[0].Primary, 3) != "01-" {
		t.Errorf("Prefix = %q", Prefix(pairs[0].Primary, 3))
	}
}

func TestListMissingDir(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "missing"), Ext(".pdf")); err == nil {
		t.Error("expected error for missing directory")
	}
}
