package bibleproof

import (
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/margin"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pairing"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/parser"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pdfannot"
	"github.com/xuri/excelize/v2"
)

// AnnotatePairs pairs every PDF of dir with the workbook of the same name.
func (r *Runner) AnnotatePairs(dir string) ([]pairing.Pair, error) {
	return pairing.ByBaseName(dir, ".pdf", ".xlsx", r.Logger)
}

// RunAnnotate loads the margin reference file and annotates every PDF of
// dir. A missing reference file stops the run.
func (r *Runner) RunAnnotate(dir string) (Summary, error) {
	path := resolve(dir, r.Config.Margin.ReferenceFile)
	ref, problems, err := margin.LoadReference(path)
	if err != nil {
		return Summary{}, openError(path, err)
	}
	for _, p := range problems {
		r.Logger.Warn("skipping reference line", "file", path, "line", p.Line, "reason", p.Reason, "text", p.Text)
	}
	r.Logger.Info("loaded reference values", "file", path, "count", len(ref))

	return r.run("annotate", func() ([]pairing.Pair, error) { return r.AnnotatePairs(dir) }, func(p pairing.Pair) (Outcome, error) {
		return r.Annotate(p, ref)
	})
}

// Annotate adds a note for every colored measurement cell of workbook
// p.Companion to PDF p.Primary, then a summary note on page 1, and saves
// "<name>_annotated.pdf". Matched counts written notes; NotFound counts
// expected notes that could not be written.
func (r *Runner) Annotate(p pairing.Pair, ref margin.Reference) (Outcome, error) {
	f, err := excelize.OpenFile(p.Companion)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Companion, err))
	}
	defer f.Close()

	sheet := parser.ActiveSheet(f)
	rows, problems, err := parser.ExtractMarginRows(f, sheet)
	if err != nil {
		return Outcome{}, inStage("load", err)
	}
	for _, pr := range problems {
		r.Logger.Warn("skipping cell", "file", p.Companion, "row", pr.Row, "column", pr.Column, "reason", pr.Reason)
	}

	a := margin.NewAnnotator(ref, r.Config.Margin.CenterInches, r.Config.Margin.PageHeightInches,
		r.Config.Margin.OffsetInches, r.Logger)
	entries, counts := a.Entries(rows)
	r.Logger.Info("colored cells found", "file", p.Companion, "entries", len(entries))

	doc, err := pdfannot.Open(p.Primary)
	if err != nil {
		return Outcome{}, inStage("annotate", openError(p.Primary, err))
	}
	if err := a.Apply(doc, entries, counts); err != nil {
		return Outcome{}, inStage("annotate", err)
	}

	out := withExt(p.Primary, "") + "_annotated.pdf"
	if err := doc.Save(out); err != nil {
		return Outcome{}, inStage("write", err)
	}

	o := Outcome{Output: out}
	for _, c := range margin.Reviewed {
		o.Matched += counts.Written[c]
		o.NotFound += counts.Missing(c)
		r.Logger.Info("annotation count", "color", c.String(),
			"expected", counts.Expected[c], "written", counts.Written[c])
	}
	return o, nil
}
