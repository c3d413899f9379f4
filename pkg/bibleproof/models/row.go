// Package models defines data structures shared by the proofing jobs.
package models

// TypedRow is one row of a book structure sheet.
type TypedRow struct {
	// Row is the row index (1-based).
	Row int `json:"row"`
	// Type is the row-type label from column B (e.g. "BODY - VERSE NUMBERS").
	Type string `json:"type"`
	// Content is the cell text from column C.
	Content string `json:"content"`
}

// StyledCell is a non-empty cell together with its fill color.
type StyledCell struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C is the column index (1-based).
	C int `json:"c"`
	// Header is the column header from row 1.
	Header string `json:"header"`
	// Value is the raw cell value.
	Value string `json:"value"`
	// Fill is the fill color as 6-digit RGB hex, empty when the cell has no fill.
	Fill string `json:"fill,omitempty"`
}

// MarginRow is one data row of a margin measurement sheet.
type MarginRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// Page is the 1-based PDF page number from column A.
	Page int `json:"page"`
	// Side is the page side from column B (e.g. "Left", "Right").
	Side string `json:"side"`
	// Cells holds the measurement cells from column C onwards.
	Cells []StyledCell `json:"cells"`
}
