package parser

import (
	"errors"
	"fmt"
)

// RowError describes a malformed row or cell. Callers log it and move on.
type RowError struct {
	Row    int
	Column string
	Reason string
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Reason)
}

// ErrMissingColumn indicates a required header is absent from a table.
var ErrMissingColumn = errors.New("missing column")
