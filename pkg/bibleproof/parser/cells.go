// Package parser reads the spreadsheet, text and RTF inputs of the proofing jobs.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/models"
	"github.com/xuri/excelize/v2"
)

// ActiveSheet returns the name of the workbook's active sheet.
func ActiveSheet(f *excelize.File) string {
	return f.GetSheetName(f.GetActiveSheetIndex())
}

// ExtractTypedRows reads column B (row type) and column C (content) of a
// sheet. Rows with an empty type cell are skipped.
func ExtractTypedRows(f *excelize.File, sheetName string) ([]models.TypedRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.TypedRow
	for rowIdx, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		content := ""
		if len(row) > 2 {
			content = row[2]
		}
		result = append(result, models.TypedRow{
			Row:     rowIdx + 1, // 1-based row index
			Type:    row[1],
			Content: content,
		})
	}

	return result, nil
}

// ExtractMarginRows reads a margin measurement sheet. Row 1 holds the headers,
// column A the page number and column B the page side. Every non-empty cell
// from column C onwards is returned with its fill color. Rows whose page
// number does not parse are reported in the returned RowErrors and skipped.
func ExtractMarginRows(f *excelize.File, sheetName string) ([]models.MarginRow, []*RowError, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	headers := rows[0]
	var result []models.MarginRow
	var problems []*RowError

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		rowNum := rowIdx + 1
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		page, ok := parseInt(row[0])
		if !ok {
			problems = append(problems, &RowError{Row: rowNum, Column: "A", Reason: fmt.Sprintf("page number %q is not a number", row[0])})
			continue
		}

		mr := models.MarginRow{R: rowNum, Page: page}
		if len(row) > 1 {
			mr.Side = strings.TrimSpace(row[1])
		}

		for colIdx := 2; colIdx < len(row); colIdx++ {
			value := strings.TrimSpace(row[colIdx])
			if value == "" {
				continue
			}
			header := ""
			if colIdx < len(headers) {
				header = strings.TrimSpace(headers[colIdx])
			}
			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			fill, err := CellFill(f, sheetName, cellName)
			if err != nil {
				problems = append(problems, &RowError{Row: rowNum, Column: cellName, Reason: err.Error()})
				continue
			}
			mr.Cells = append(mr.Cells, models.StyledCell{
				R:      rowNum,
				C:      colIdx + 1,
				Header: header,
				Value:  value,
				Fill:   fill,
			})
		}
		result = append(result, mr)
	}

	return result, problems, nil
}

// CellFill returns the pattern fill color of a cell as 6-digit RGB hex, or
// an empty string when the cell has no solid fill.
func CellFill(f *excelize.File, sheetName, cell string) (string, error) {
	idx, err := f.GetCellStyle(sheetName, cell)
	if err != nil {
		return "", err
	}
	if idx == 0 {
		return "", nil
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return "", err
	}
	if style == nil || style.Fill.Type != "pattern" || style.Fill.Pattern == 0 || len(style.Fill.Color) == 0 {
		return "", nil
	}
	return strings.ToUpper(strings.TrimPrefix(style.Fill.Color[0], "#")), nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// parseInt accepts "3", "3.0" and " 3 ".
func parseInt(s string) (int, bool) {
	switch v := parseValue(strings.TrimSpace(s)).(type) {
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// digits keeps only the ASCII digits of s.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
