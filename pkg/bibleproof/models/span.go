package models

// Span is one row of an "_all_spans" export.
type Span struct {
	Content string `json:"content"`
	// Page is the raw page number cell.
	Page string `json:"page"`
	// BBox is the raw "Span Position (bbox)" cell, e.g. "(72.0, 96.4, 210.3, 108.1)".
	BBox string `json:"bbox"`
}

// SubheadRef is a reference/subhead pair from a cleaned subhead list.
type SubheadRef struct {
	Reference string `json:"reference"`
	Subhead   string `json:"subhead"`
}
