// Package margin turns colored margin measurement cells into PDF review
// notes.
package margin

import (
	"log/slog"
	"strconv"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/models"
)

// Sink receives annotations. Pages are 1-based and coordinates are points
// measured from the top-left corner.
type Sink interface {
	PageCount() int
	PageHeight(page int) (float64, error)
	AddText(page int, x, yTop float64, text string, c Color) error
	AddFreeText(page int, rect [4]float64, text string) error
}

// SummaryRect is where the summary note goes on page 1: left, top, right, bottom.
var SummaryRect = [4]float64{50, 50, 400, 200}

// Annotator places margin notes.
type Annotator struct {
	Reference Reference
	// CenterIn is the horizontal center of the text area in inches.
	CenterIn float64
	// PageHeightIn is used when the sink cannot report a page height.
	PageHeightIn float64
	// OffsetIn is the column offset from the center in inches.
	OffsetIn float64
	Logger   *slog.Logger
}

// NewAnnotator builds an Annotator whose center and page height come from
// ref, falling back to the given defaults.
func NewAnnotator(ref Reference, centerIn, pageHeightIn, offsetIn float64, logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Annotator{
		Reference:    ref,
		CenterIn:     ref.Get(KeyCenter, centerIn),
		PageHeightIn: ref.Get(KeyPageHeight, pageHeightIn),
		OffsetIn:     offsetIn,
		Logger:       logger,
	}
}

// Entries classifies the cells of rows and counts the expected annotations
// per color. Empty and "N/A" cells are ignored; unknown fills are logged
// and skipped.
func (a *Annotator) Entries(rows []models.MarginRow) ([]Entry, *Counts) {
	counts := NewCounts()
	var entries []Entry

	for _, row := range rows {
		for _, cell := range row.Cells {
			if cell.Value == "" || cell.Value == "N/A" {
				continue
			}
			col := Classify(cell.Fill)
			switch col {
			case None:
				continue
			case Unknown:
				a.Logger.Warn("unrecognized cell color, skipping",
					"row", cell.R, "column", cell.Header, "fill", cell.Fill)
				continue
			}

			column := cell.Header
			if column == "" {
				column = "Column " + strconv.Itoa(cell.C)
			}
			e := Entry{Page: row.Page, Side: row.Side, Column: column, Value: cell.Value, Color: col}
			e.Expected, e.HasExpected = a.Reference.Lookup(column, row.Side)
			if !e.HasExpected && col != Purple && col != Orange {
				a.Logger.Warn("no reference value for column", "column", column, "side", row.Side)
			}

			counts.Expected[col]++
			entries = append(entries, e)
			a.Logger.Debug("colored cell", "page", e.Page, "column", column, "color", col.String(), "value", e.Value)
		}
	}
	return entries, counts
}

// Apply writes entries to sink, then the summary note on page 1. Entries that
// cannot be placed are logged and count as missing.
func (a *Annotator) Apply(sink Sink, entries []Entry, counts *Counts) error {
	for _, e := range entries {
		if e.Page < 1 || e.Page > sink.PageCount() {
			a.Logger.Warn("page out of range, skipping", "page", e.Page, "pages", sink.PageCount())
			continue
		}

		height, err := sink.PageHeight(e.Page)
		if err != nil || height <= 0 {
			height = InchesToPoints(a.PageHeightIn)
		}

		x, y, err := Place(e, height, a.CenterIn, a.OffsetIn)
		if err != nil {
			a.Logger.Warn("cannot place annotation", "page", e.Page, "error", err)
			continue
		}

		if err := sink.AddText(e.Page, x, y, Comment(e), e.Color); err != nil {
			a.Logger.Error("add annotation failed", "page", e.Page, "error", err)
			continue
		}
		counts.Written[e.Color]++
		a.Logger.Debug("annotation added", "page", e.Page, "x", x, "y", y)
	}

	summary := counts.Summary()
	if err := sink.AddFreeText(1, SummaryRect, summary); err != nil {
		return err
	}
	a.Logger.Info("summary annotation added", "complete", counts.Complete())
	return nil
}
