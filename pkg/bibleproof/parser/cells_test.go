package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractTypedRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B1", "BODY - VERSE NUMBERS")
	f.SetCellValue(sheetName, "C1", 12)
	f.SetCellValue(sheetName, "A2", "no type")
	f.SetCellValue(sheetName, "B3", "BODY - SCRIPTURE TEXT")

	rows, err := ExtractTypedRows(f, sheetName)
	if err != nil {
		t.Fatalf("ExtractTypedRows failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Row != 1 || rows[0].Content != "12" {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[1].Row != 3 || rows[1].Content != "" {
		t.Errorf("Unexpected second row: %+v", rows[1])
	}
}

func TestExtractMarginRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetSheetRow(sheetName, "A1", &[]interface{}{"Page", "Side", "Top Scripture Baseline Left (in)", "Column 1 Left Edge (in)"})
	f.SetSheetRow(sheetName, "A2", &[]interface{}{1, "Left", 1.7, "N/A"})
	f.SetSheetRow(sheetName, "A3", &[]interface{}{"two", "Right", 1.5})
	f.SetSheetRow(sheetName, "A4", &[]interface{}{3, "Right", "", 0.75})

	red, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1}})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	if err := f.SetCellStyle(sheetName, "C2", "C2", red); err != nil {
		t.Fatalf("SetCellStyle failed: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "margins.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	rows, problems, err := ExtractMarginRows(f2, sheetName)
	if err != nil {
		t.Fatalf("ExtractMarginRows failed: %v", err)
	}

	if len(problems) != 1 || problems[0].Row != 3 {
		t.Errorf("Expected one problem on row 3, got %v", problems)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Page != 1 || first.Side != "Left" || len(first.Cells) != 2 {
		t.Fatalf("Unexpected first row: %+v", first)
	}
	if c := first.Cells[0]; c.Header != "Top Scripture Baseline Left (in)" || c.Value != "1.7" || c.Fill != "FFC7CE" {
		t.Errorf("Unexpected styled cell: %+v", c)
	}
	if c := first.Cells[1]; c.Value != "N/A" || c.Fill != "" {
		t.Errorf("Unexpected unstyled cell: %+v", c)
	}

	if second := rows[1]; second.Page != 3 || len(second.Cells) != 1 || second.Cells[0].C != 4 {
		t.Errorf("Unexpected second row: %+v", second)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), expected %v (%T)", tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		value int
		ok    bool
	}{
		{"3", 3, true},
		{" 3.0 ", 3, true},
		{"3.5", 0, false},
		{"page", 0, false},
	}

	for _, tt := range tests {
		v, ok := parseInt(tt.input)
		if v != tt.value || ok != tt.ok {
			t.Errorf("parseInt(%q) = %d, %v", tt.input, v, ok)
		}
	}
}
