package bibleproof

import (
	"path/filepath"
	"strconv"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/match"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pairing"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/parser"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/report"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/textnorm"
)

// SubheadPairs pairs "*subhead*.txt" files with book workbooks by their
// numeric prefix.
func SubheadPairs(dir string) ([]pairing.Pair, error) {
	return pairing.ByNumericPrefix(dir,
		pairing.All(pairing.Ext(".txt"), pairing.Contains("subhead")),
		pairing.Ext(".xlsx"))
}

// RunSubheads runs Subheads over dir.
func (r *Runner) RunSubheads(dir string) (Summary, error) {
	return r.run("subheads", func() ([]pairing.Pair, error) { return SubheadPairs(dir) }, r.Subheads)
}

// Subheads maps each subhead title of p.Primary to the first verse after
// the matching subhead row of workbook p.Companion, and writes
// "<primary>.csv".
func (r *Runner) Subheads(p pairing.Pair) (Outcome, error) {
	titles, err := parser.LoadLines(p.Primary)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Primary, err))
	}
	book, err := parser.ExtractStructure(p.Companion, r.Config.Books.Default)
	if err != nil {
		return Outcome{}, inStage("extract", openError(p.Companion, err))
	}
	r.Logger.Info("loaded subheads", "titles", len(titles), "book", book.BookName,
		"subheads", len(book.Subheads), "verses", len(book.Verses), "chapters", len(book.Chapters))

	corpus := make([]match.Candidate, len(book.Subheads))
	for i, sh := range book.Subheads {
		corpus[i] = match.Candidate{Ref: strconv.Itoa(sh.Row), Text: sh.Text}
	}
	cfg := match.SubheadConfig()
	cfg.Threshold = r.Config.Match.SubheadThreshold
	res := match.Match(titles, corpus, cfg)

	t := &report.Table{
		Banner:          report.NotFoundBanner("subheads"),
		Header:          []string{"Reference", "Subhead"},
		SortByReference: r.Config.Report.SortByReference,
	}
	for i, m := range res.ByPhrase(len(titles)) {
		if m == nil {
			t.NotFound = append(t.NotFound, titles[i])
			continue
		}
		v, ok := book.VerseAfter(book.Subheads[m.Candidate].Row)
		if !ok {
			r.Logger.Warn("no verse follows subhead", "subhead", m.Phrase, "row", m.Ref)
			t.NotFound = append(t.NotFound, titles[i])
			continue
		}
		r.Logger.Debug("subhead matched", "subhead", m.Phrase, "strategy", m.Strategy.String(), "reference", v.Reference())
		t.Rows = append(t.Rows, []string{v.Reference(), m.Phrase})
	}

	out := withExt(p.Primary, ".csv")
	if err := report.WriteDelimited(out, t); err != nil {
		return Outcome{}, inStage("write", err)
	}
	return Outcome{Matched: len(t.Rows), NotFound: len(t.NotFound), Output: out}, nil
}

// PhrasePairs pairs "*body*.txt" files with book workbooks by their numeric
// prefix.
func PhrasePairs(dir string) ([]pairing.Pair, error) {
	return pairing.ByNumericPrefix(dir,
		pairing.All(pairing.Ext(".txt"), pairing.Contains("body")),
		pairing.Ext(".xlsx"))
}

// RunPhrases runs Phrases over dir.
func (r *Runner) RunPhrases(dir string) (Summary, error) {
	return r.run("phrases", func() ([]pairing.Pair, error) { return PhrasePairs(dir) }, r.Phrases)
}

// Phrases finds the verse of workbook p.Companion containing each body
// phrase of p.Primary, and writes "<primary>.csv". Leading verse numbers
// are dropped from the phrases; a line holding nothing else is reported as
// not found.
func (r *Runner) Phrases(p pairing.Pair) (Outcome, error) {
	phrases, err := parser.LoadLines(p.Primary)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Primary, err))
	}

	book, err := parser.ExtractStructure(p.Companion, r.Config.Books.Default)
	if err != nil {
		return Outcome{}, inStage("extract", openError(p.Companion, err))
	}
	r.Logger.Info("loaded phrases", "phrases", len(phrases), "book", book.BookName,
		"verses", len(book.Verses), "chapters", len(book.Chapters))

	corpus := make([]match.Candidate, len(book.Verses))
	for i, v := range book.Verses {
		corpus[i] = match.Candidate{Ref: v.Reference(), Text: v.Text}
	}
	cfg := match.PhraseConfig()
	cfg.Threshold = r.Config.Match.PhraseThreshold
	res := match.Match(phrases, corpus, cfg)

	t := &report.Table{
		Banner:          report.NotFoundBanner("phrases"),
		Header:          []string{"Reference", "Phrase"},
		SortByReference: r.Config.Report.SortByReference,
	}
	for _, u := range res.Unmatched {
		// A line that is only a verse number is reported as written.
		if stripped := textnorm.StripVerseNumber(u); stripped != "" {
			u = stripped
		}
		t.NotFound = append(t.NotFound, u)
	}
	for _, m := range res.Matches {
		t.Rows = append(t.Rows, []string{m.Ref, textnorm.StripVerseNumber(m.Phrase)})
	}

	out := withExt(p.Primary, ".csv")
	if err := report.WriteDelimited(out, t); err != nil {
		return Outcome{}, inStage("write", err)
	}
	return Outcome{Matched: len(t.Rows), NotFound: len(t.NotFound), Output: out}, nil
}

// Column headers of a filtered verse workbook.
const (
	ColReference = "Reference"
	ColVerseText = "Verse Text"
)

// LinePairs pairs text files with "*verses*.xlsx" workbooks by their numeric
// prefix.
func LinePairs(dir string) ([]pairing.Pair, error) {
	return pairing.ByNumericPrefix(dir,
		pairing.Ext(".txt"),
		pairing.All(pairing.Ext(".xlsx"), pairing.Contains("verses")))
}

// RunLines runs Lines over dir.
func (r *Runner) RunLines(dir string) (Summary, error) {
	return r.run("lines", func() ([]pairing.Pair, error) { return LinePairs(dir) }, r.Lines)
}

// Lines matches each line of p.Primary against the "Verse Text" column of
// workbook p.Companion and writes "matched_<primary>.xlsx".
func (r *Runner) Lines(p pairing.Pair) (Outcome, error) {
	lines, err := parser.LoadLines(p.Primary)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Primary, err))
	}
	table, err := parser.ReadTable(p.Companion)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Companion, err))
	}
	if err := table.Require(ColReference, ColVerseText); err != nil {
		return Outcome{}, inStage("load", err)
	}

	corpus := make([]match.Candidate, len(table.Rows))
	for i := range table.Rows {
		corpus[i] = match.Candidate{Ref: table.Get(i, ColReference), Text: table.Get(i, ColVerseText)}
	}
	res := match.Match(lines, corpus, match.LineConfig())

	var rows []report.StatusRow
	for i, m := range res.ByPhrase(len(lines)) {
		line := textnorm.Normalize(lines[i])
		if m == nil {
			rows = append(rows, report.StatusRow{Cells: []string{line, "Not Matched", "", ""}})
			continue
		}
		rows = append(rows, report.StatusRow{Matched: true, Cells: []string{line, "Matched", m.Ref, m.Text}})
	}

	out := filepath.Join(filepath.Dir(p.Primary), "matched_"+p.Name()+".xlsx")
	header := []string{"TXT Line", "Match Status", ColReference, ColVerseText}
	if err := report.WriteStatusTable(out, header, rows); err != nil {
		return Outcome{}, inStage("write", err)
	}
	return Outcome{Matched: len(res.Matches), NotFound: len(res.Unmatched), Output: out}, nil
}
