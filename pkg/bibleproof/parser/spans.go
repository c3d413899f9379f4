package parser

import (
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/models"
)

// Column headers of an "_all_spans" export.
const (
	ColSpanContent  = "Span Content"
	ColSpanPage     = "Page Number"
	ColSpanPosition = "Span Position (bbox)"
)

// ReadSpans reads the spans of an "_all_spans" workbook in sheet order.
func ReadSpans(path string) ([]models.Span, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.Require(ColSpanContent); err != nil {
		return nil, err
	}

	spans := make([]models.Span, 0, len(t.Rows))
	for i := range t.Rows {
		spans = append(spans, models.Span{
			Content: t.Get(i, ColSpanContent),
			Page:    t.Get(i, ColSpanPage),
			BBox:    t.Get(i, ColSpanPosition),
		})
	}
	return spans, nil
}

// PageParity returns the page number and "EVEN" or "ODD" for a raw page
// cell such as "3" or "3.0". ok is false when the cell is not a whole number.
func PageParity(raw string) (page int, parity string, ok bool) {
	page, ok = parseInt(raw)
	if !ok {
		return 0, "", false
	}
	if page%2 == 0 {
		return page, "EVEN", true
	}
	return page, "ODD", true
}
