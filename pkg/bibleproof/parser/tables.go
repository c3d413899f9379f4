package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a sheet whose first non-empty row holds column headers.
type Table struct {
	Header []string
	// Rows are the data rows below the header, left-aligned to the header's
	// first column.
	Rows [][]string
	// RowNums holds the 1-based sheet row of each entry in Rows.
	RowNums []int
	index   map[string]int
}

// Col returns the index of a header, matched after trimming.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.index[strings.TrimSpace(name)]
	return i, ok
}

// Get returns the cell at data row i under header name, or "".
func (t *Table) Get(i int, name string) string {
	c, ok := t.Col(name)
	if !ok || i < 0 || i >= len(t.Rows) || c >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][c]
}

// Require fails with ErrMissingColumn naming the first absent header.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if _, ok := t.Col(n); !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, n)
		}
	}
	return nil
}

// NewTable builds a Table from raw sheet rows.
func NewTable(rows [][]string) *Table {
	t := &Table{index: make(map[string]int)}
	minRow, maxRow, minCol, _ := findDataBounds(rows)
	if minRow < 0 {
		return t
	}

	t.Header = trimLeft(rows[minRow], minCol)
	for i, h := range t.Header {
		h = strings.TrimSpace(h)
		if _, dup := t.index[h]; !dup && h != "" {
			t.index[h] = i
		}
	}

	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		row := trimLeft(rows[rowIdx], minCol)
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
		t.RowNums = append(t.RowNums, rowIdx+1)
	}
	return t
}

// ReadTable reads the active sheet of an xlsx workbook as a Table.
func ReadTable(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(ActiveSheet(f))
	if err != nil {
		return nil, err
	}
	return NewTable(rows), nil
}

func trimLeft(row []string, minCol int) []string {
	if minCol >= len(row) {
		return nil
	}
	return row[minCol:]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}
