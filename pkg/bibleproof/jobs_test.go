package bibleproof

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pairing"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pdfannot"
	"github.com/xuri/excelize/v2"
)

func newTestRunner() *Runner {
	return NewRunner(DefaultConfig(), discardLogger())
}

func writeText(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeWorkbook(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func readText(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// genesisRows is a small book structure sheet.
var genesisRows = [][]interface{}{
	{"Para", "Text Category", "Content"},
	{"", "BODY - SUBHEAD", "The Creation"},
	{"", "BODY - CHAPTER NUMBERS", 1},
	{"", "BODY - VERSE NUMBERS", 1},
	{"", "BODY - SCRIPTURE TEXT", "In the beginning God created the heavens and the earth."},
	{"", "BODY - VERSE NUMBERS", 2},
	{"", "BODY - SCRIPTURE TEXT", "The earth was without form, and void;"},
	{"", "BODY - SCRIPTURE TEXT", "and darkness was on the face of the deep."},
}

func TestSubheads(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "01-Genesis subheads.txt", "The Creation\n\nNowhere Heading\n")
	writeWorkbook(t, dir, "01-Genesis.xlsx", genesisRows)

	s, err := newTestRunner().RunSubheads(dir)
	if err != nil {
		t.Fatalf("RunSubheads failed: %v", err)
	}
	if s.Processed != 1 || s.Matched != 1 || s.NotFound != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}

	got := readText(t, filepath.Join(dir, "01-Genesis subheads.csv"))
	expected := "ERROR: Could not find verses for these subheads:\n" +
		"\n" +
		"NOT_FOUND: Nowhere Heading\n" +
		"\n" +
		"\n" +
		"Reference\tSubhead\n" +
		"Genesis 1:1\tThe Creation\n"
	if got != expected {
		t.Errorf("output = %q, expected %q", got, expected)
	}
}

func TestPhrases(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "01-Genesis body.txt",
		"1 In the beginning God created\n2 The earth was without form\n3 Completely unrelated words here\n4\n")
	writeWorkbook(t, dir, "01-Genesis.xlsx", genesisRows)

	s, err := newTestRunner().RunPhrases(dir)
	if err != nil {
		t.Fatalf("RunPhrases failed: %v", err)
	}
	if s.Matched != 2 || s.NotFound != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}

	got := readText(t, filepath.Join(dir, "01-Genesis body.csv"))
	expected := "ERROR: Could not find verses for these phrases:\n" +
		"\n" +
		"NOT_FOUND: Completely unrelated words here\n" +
		"NOT_FOUND: 4\n" +
		"\n" +
		"\n" +
		"Reference\tPhrase\n" +
		"Genesis 1:1\tIn the beginning God created\n" +
		"Genesis 1:2\tThe earth was without form\n"
	if got != expected {
		t.Errorf("output = %q, expected %q", got, expected)
	}
}

func TestPhrasesMissingCompanion(t *testing.T) {
	r := newTestRunner()
	dir := t.TempDir()
	p := pairing.Pair{
		Primary:   writeText(t, dir, "01-Genesis body.txt", "1 In the beginning\n"),
		Companion: filepath.Join(dir, "01-Genesis.xlsx"),
	}
	_, err := r.Phrases(p)
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestRunPhrasesNoPairs(t *testing.T) {
	if _, err := newTestRunner().RunPhrases(t.TempDir()); !errors.Is(err, ErrNoPairs) {
		t.Errorf("expected ErrNoPairs, got %v", err)
	}
}

func TestLines(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "01-Genesis lines.txt",
		"In the beginning God created the heavens and the earth.\n  Not a verse  \n")
	writeWorkbook(t, dir, "01-Genesis_filtered_verses.xlsx", [][]interface{}{
		{"Reference", "Verse Text"},
		{"Genesis 1:1", "In the beginning God created the heavens and the earth."},
		{"Genesis 1:2", "The earth was without form, and void;"},
	})

	s, err := newTestRunner().RunLines(dir)
	if err != nil {
		t.Fatalf("RunLines failed: %v", err)
	}
	if s.Matched != 1 || s.NotFound != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}

	rows := readRows(t, filepath.Join(dir, "matched_01-Genesis lines.xlsx"))
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %v", rows)
	}
	if strings.Join(rows[0], "|") != "TXT Line|Match Status|Reference|Verse Text" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Not a verse" || rows[1][1] != "Not Matched" {
		t.Errorf("unmatched row should come first, got %v", rows[1])
	}
	if rows[2][1] != "Matched" || rows[2][2] != "Genesis 1:1" {
		t.Errorf("matched row = %v", rows[2])
	}
}

func TestSpans(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "01-Genesis_subheads.csv",
		"Reference\tSubhead\nGenesis 1:1\tThe Creation\nGenesis 3:1\tThe Fall\nGenesis 2:4\tAdam’s Garden\n")
	writeWorkbook(t, dir, "01-Genesis_all_spans.xlsx", [][]interface{}{
		{"Span Content", "Page Number", "Span Position (bbox)"},
		{"The Creation", 3, "(72.0, 96.4, 210.3, 108.1)"},
		{"Adam's Garden", 4, "(144.0, 300.0, 260.0, 312.0)"},
	})

	s, err := newTestRunner().RunSpans(dir)
	if err != nil {
		t.Fatalf("RunSpans failed: %v", err)
	}
	if s.Processed != 1 || s.Matched != 2 || s.NotFound != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}

	if _, err := os.Stat(filepath.Join(dir, "01-_subhead_clean.csv")); err != nil {
		t.Errorf("cleaned file not written: %v", err)
	}

	got := readText(t, filepath.Join(dir, "matched_01-Genesis_subheads.csv"))
	expected := "Reference,Subhead,Match Status,X-Coord,Page,Even/Odd\n" +
		"Genesis 3:1,The Fall,COULD NOT MATCH,,,\n" +
		"Genesis 1:1,The Creation,MATCH,\"(72.0, 96.4, 210.3, 108.1)\",3,ODD\n" +
		"Genesis 2:4,Adam’s Garden,MATCH,\"(144.0, 300.0, 260.0, 312.0)\",4,EVEN\n"
	if got != expected {
		t.Errorf("output = %q, expected %q", got, expected)
	}
}

func TestSpanPairsSkipsDerivedFiles(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "01-Genesis_subheads.csv", "")
	writeText(t, dir, "01-_subhead_clean.csv", "")
	writeText(t, dir, "matched_01-Genesis_subheads.csv", "")
	writeText(t, dir, "02-Exodus_subheads.csv", "")
	writeWorkbook(t, dir, "01-Genesis_all_spans.xlsx", nil)

	pairs, unpaired, err := SpanPairs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 || filepath.Base(pairs[0].Primary) != "01-Genesis_subheads.csv" {
		t.Errorf("pairs = %+v", pairs)
	}
	if len(unpaired) != 1 || filepath.Base(unpaired[0]) != "02-Exodus_subheads.csv" {
		t.Errorf("unpaired = %v", unpaired)
	}
}

func TestXCheck(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "Standards.txt", "Acceptable X\n72\n144\n\nAcceptable Variance\n.5\n")
	writeWorkbook(t, dir, "layout.xlsx", [][]interface{}{
		{"Subhead", "X-Coord"},
		{"The Creation", "(72.0, 96.4, 210.3, 108.1)"},
		{"The Fall", "(100.5, 1, 2, 3)"},
		{"Adam's Garden", "garbage"},
	})
	writeWorkbook(t, dir, "unrelated.xlsx", [][]interface{}{{"Reference", "Text"}, {"Genesis 1:1", "In the beginning"}})

	s, err := newTestRunner().RunXCheck(dir)
	if err != nil {
		t.Fatalf("RunXCheck failed: %v", err)
	}
	if s.Processed != 2 || s.Matched != 1 || s.NotFound != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if _, err := os.Stat(filepath.Join(dir, "unrelated_checked.xlsx")); err == nil {
		t.Error("workbook without X-Coord should not be checked")
	}

	rows := readRows(t, filepath.Join(dir, "layout_checked.xlsx"))
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %v", rows)
	}
	if strings.Join(rows[0], "|") != "Subhead|X-Coord|First_X|Check_Status" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "72" || rows[1][3] != "Yes" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][3] != "Error" || rows[3][3] != "Error" {
		t.Errorf("rows 2-3 = %v %v", rows[2], rows[3])
	}
}

func TestXCheckMissingStandards(t *testing.T) {
	if _, err := newTestRunner().RunXCheck(t.TempDir()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestRTF2XLSX(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	writeText(t, dir, "40.Matthew.rtf",
		`{\rtf1\ansi{\fonttbl{\f0 Times;}}\f0 1:1 The book of the genealogy\par 1:2 Abraham begat Isaac\par}`)
	writeText(t, dir, "41.Mark.rtf", `{\rtf1\ansi no verses here}`)

	s, err := newTestRunner().RunRTF2XLSX(dir, out)
	if err != nil {
		t.Fatalf("RunRTF2XLSX failed: %v", err)
	}
	if s.Processed != 2 || s.Matched != 2 || len(s.Outputs) != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}

	rows := readRows(t, filepath.Join(out, "40.Matthew.xlsx"))
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 verses, got %v", rows)
	}
	if rows[1][0] != "Matthew 1:1" || rows[1][1] != "The book of the genealogy" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "Matthew 1:2" || rows[2][1] != "Abraham begat Isaac" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

// buildPDF assembles a minimal PDF with blank 612x792 pages.
func buildPDF(pages int) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	total := 2 + pages
	offsets := make([]int, total+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	var kids []string
	for i := 0; i < pages; i++ {
		kids = append(kids, strconv.Itoa(3+i)+" 0 R")
	}
	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [" + strings.Join(kids, " ") + "] /Count " + strconv.Itoa(pages) + " >>\nendobj\n")

	for i := 0; i < pages; i++ {
		n := 3 + i
		offsets[n] = b.Len()
		b.WriteString(strconv.Itoa(n) + " 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n")
	}

	xrefOffset := b.Len()
	b.WriteString("xref\n0 " + strconv.Itoa(total+1) + "\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		s := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(s)) + s)
		b.WriteString(" 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size " + strconv.Itoa(total+1) + " /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}

func TestAnnotate(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "margin_baseline_reference.txt",
		"Bible Text Area Center Point (in): 3.766\nTop: 1.5\nBottom: not-a-number\n")
	if err := os.WriteFile(filepath.Join(dir, "proof.pdf"), buildPDF(2), 0o644); err != nil {
		t.Fatal(err)
	}
	writeText(t, dir, "orphan.pdf", "")

	f := excelize.NewFile()
	sheet := "Sheet1"
	f.SetSheetRow(sheet, "A1", &[]interface{}{"Page", "Side", "Top Scripture Baseline Left (in)"})
	f.SetSheetRow(sheet, "A2", &[]interface{}{1, "Left", 1.7})
	f.SetSheetRow(sheet, "A3", &[]interface{}{5, "Right", 1.2})
	f.SetSheetRow(sheet, "A4", &[]interface{}{2, "Right", 1.5})
	red, _ := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1}})
	yellow, _ := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1}})
	f.SetCellStyle(sheet, "C2", "C2", red)
	f.SetCellStyle(sheet, "C3", "C3", yellow)
	if err := f.SaveAs(filepath.Join(dir, "proof.xlsx")); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f.Close()

	s, err := newTestRunner().RunAnnotate(dir)
	if err != nil {
		t.Fatalf("RunAnnotate failed: %v", err)
	}
	if s.Processed != 1 || s.Matched != 1 || s.NotFound != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}

	doc, err := pdfannot.Open(filepath.Join(dir, "proof_annotated.pdf"))
	if err != nil {
		t.Fatalf("annotated PDF does not open: %v", err)
	}
	n, err := doc.Annotations(1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("page 1 should hold the note and the summary, got %d annotations", n)
	}
	if n, _ := doc.Annotations(2); n != 0 {
		t.Errorf("page 2 has no colored cells, got %d annotations", n)
	}
}

func TestAnnotateMissingReference(t *testing.T) {
	if _, err := newTestRunner().RunAnnotate(t.TempDir()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
