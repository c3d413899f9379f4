package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "01-Genesis subheads.txt", "\xef\xbb\xbfThe Creation\n\n  The Fall  \r\n\t\n")

	lines, err := LoadLines(path)
	if err != nil {
		t.Fatalf("LoadLines failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "The Creation" || lines[1] != "The Fall" {
		t.Errorf("LoadLines = %q", lines)
	}
}

func TestSplitSubheadLine(t *testing.T) {
	tests := []struct {
		input string
		ref   string
		sub   string
	}{
		{"Genesis 1:1\tThe Creation", "Genesis 1:1", "The Creation"},
		{`"Exodus 20:1 The Ten Commandments"`, "Exodus", "20:1 The Ten Commandments"},
		{"Lonely", "Lonely", ""},
	}

	for _, tt := range tests {
		got := SplitSubheadLine(tt.input)
		if got.Reference != tt.ref || got.Subhead != tt.sub {
			t.Errorf("SplitSubheadLine(%q) = %+v", tt.input, got)
		}
	}
}

func TestCleanSubheadCSV(t *testing.T) {
	dir := t.TempDir()
	raw := writeFile(t, dir, "01-Genesis_subheads.csv",
		"ERROR: Could not find verses for these subheads:\n"+
			"\n"+
			"NOT_FOUND: Lost Heading\n"+
			"\n"+
			"\n"+
			"Reference\tSubhead\n"+
			"Genesis 1:1\tThe Creation\n"+
			"Genesis 3:1\tThe Fall, and Its Curse\n")
	cleaned := filepath.Join(dir, "01-_subhead_clean.csv")

	skipped, err := CleanSubheadCSV(raw, cleaned)
	if err != nil {
		t.Fatalf("CleanSubheadCSV failed: %v", err)
	}
	if skipped {
		t.Fatal("expected cleaning to run")
	}

	refs, err := ReadSubheadRefs(cleaned)
	if err != nil {
		t.Fatalf("ReadSubheadRefs failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %+v", refs)
	}
	if refs[1].Reference != "Genesis 3:1" || refs[1].Subhead != "The Fall, and Its Curse" {
		t.Errorf("unexpected ref: %+v", refs[1])
	}

	skipped, err = CleanSubheadCSV(raw, cleaned)
	if err != nil || !skipped {
		t.Errorf("second run: skipped=%v err=%v, expected skip", skipped, err)
	}
}

func TestCleanSubheadCSVMissingInput(t *testing.T) {
	dir := t.TempDir()
	if _, err := CleanSubheadCSV(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.csv")); err == nil {
		t.Error("expected error for missing input")
	}
}
