// Package report writes match results as delimited text or xlsx files.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/ref"
	"github.com/xuri/excelize/v2"
)

// NotFoundBanner returns the banner line for a not-found block, e.g.
// "ERROR: Could not find verses for these subheads:".
func NotFoundBanner(kind string) string {
	return fmt.Sprintf("ERROR: Could not find verses for these %s:", kind)
}

// Table is a match report.
type Table struct {
	// Banner heads the not-found block.
	Banner string
	// NotFound are the unmatched phrases, written first.
	NotFound []string
	Header   []string
	// Rows are the matched rows. Column 0 holds the reference.
	Rows [][]string
	// SortByReference orders Rows by (chapter, verse). Rows whose reference
	// does not parse go last.
	SortByReference bool
	// Comma is the field delimiter. Zero means tab.
	Comma rune
}

// Render returns the file content of t.
func (t *Table) Render() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	if t.Comma != 0 {
		w.Comma = t.Comma
	}

	var records [][]string
	if len(t.NotFound) > 0 {
		records = append(records, []string{t.Banner}, []string{""})
		for _, p := range t.NotFound {
			records = append(records, []string{"NOT_FOUND: " + p})
		}
		records = append(records, []string{""}, []string{""})
	}

	records = append(records, t.Header)

	rows := t.Rows
	if t.SortByReference {
		rows = sortedByReference(t.Rows)
	}
	records = append(records, rows...)

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sortedByReference returns a copy of rows stably ordered by the reference
// in column 0. Each reference is parsed once.
func sortedByReference(rows [][]string) [][]string {
	type keyed struct {
		ref *ref.Ref
		row []string
	}
	ks := make([]keyed, len(rows))
	for i, row := range rows {
		r, _ := ref.Parse(first(row)) // nil when it does not parse
		ks[i] = keyed{ref: r, row: row}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		return ref.ByPosition(ks[i].ref, ks[j].ref)
	})
	out := make([][]string, len(ks))
	for i, k := range ks {
		out[i] = k.row
	}
	return out
}

// WriteDelimited renders t and writes it to path in one call.
func WriteDelimited(path string, t *Table) error {
	data, err := t.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// StatusRow is one row of a status table.
type StatusRow struct {
	Matched bool
	Cells   []string
}

// WriteStatusTable writes a table with a match-status column. Unmatched rows
// come first; both groups keep their input order. The format follows the
// extension of path: ".xlsx" or delimited text with commas.
func WriteStatusTable(path string, header []string, rows []StatusRow) error {
	ordered := make([]StatusRow, 0, len(rows))
	for _, r := range rows {
		if !r.Matched {
			ordered = append(ordered, r)
		}
	}
	for _, r := range rows {
		if r.Matched {
			ordered = append(ordered, r)
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		values := make([][]interface{}, len(ordered))
		for i, r := range ordered {
			values[i] = stringsToValues(r.Cells)
		}
		return WriteXLSX(path, header, values)
	}

	t := &Table{Header: header, Comma: ','}
	for _, r := range ordered {
		t.Rows = append(t.Rows, r.Cells)
	}
	return WriteDelimited(path, t)
}

// WriteXLSX writes header and rows to the first sheet of a new workbook.
func WriteXLSX(path string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func stringsToValues(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func first(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}
