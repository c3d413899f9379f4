package bibleproof

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/match"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pairing"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/parser"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/report"
)

// spanPrefixLen is how many leading characters of a subhead report name
// select its span export, e.g. "01-".
const spanPrefixLen = 3

// rawSubheadReport selects subhead reports that are neither cleaned nor
// already matched.
func rawSubheadReport(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".csv") &&
		strings.Contains(lower, "subhead") &&
		!strings.HasPrefix(lower, "matched") &&
		!strings.HasSuffix(lower, "_clean.csv")
}

// SpanPairs pairs raw subhead reports with the "_all_spans" workbook sharing
// their prefix. Reports without one are returned as unpaired.
func SpanPairs(dir string) ([]pairing.Pair, []string, error) {
	return pairing.ByPrefix(dir, spanPrefixLen,
		rawSubheadReport,
		pairing.All(pairing.Ext(".xlsx"), pairing.Contains("_all_spans")))
}

// RunSpans runs Spans over dir.
func (r *Runner) RunSpans(dir string) (Summary, error) {
	return r.run("spans", func() ([]pairing.Pair, error) {
		pairs, unpaired, err := SpanPairs(dir)
		for _, u := range unpaired {
			r.Logger.Warn("no span file found, skipping", "file", u)
		}
		return pairs, err
	}, r.Spans)
}

// Spans cleans subhead report p.Primary into "<prefix>_subhead_clean.csv",
// looks every subhead up in span export p.Companion and writes
// "matched_<primary>".
func (r *Runner) Spans(p pairing.Pair) (Outcome, error) {
	dir := filepath.Dir(p.Primary)
	cleaned := filepath.Join(dir, pairing.Prefix(p.Primary, spanPrefixLen)+"_subhead_clean.csv")

	skipped, err := parser.CleanSubheadCSV(p.Primary, cleaned)
	if err != nil {
		return Outcome{}, inStage("clean", openError(p.Primary, err))
	}
	if skipped {
		r.Logger.Info("cleaned file already exists, reusing", "file", cleaned)
	}

	refs, err := parser.ReadSubheadRefs(cleaned)
	if err != nil {
		return Outcome{}, inStage("load", openError(cleaned, err))
	}
	spans, err := parser.ReadSpans(p.Companion)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Companion, err))
	}

	subheads := make([]string, len(refs))
	for i, ref := range refs {
		subheads[i] = ref.Subhead
	}
	corpus := make([]match.Candidate, len(spans))
	for i, s := range spans {
		corpus[i] = match.Candidate{Ref: strconv.Itoa(i), Text: s.Content}
	}
	res := match.Match(subheads, corpus, match.SpanConfig())

	rows := make([]report.StatusRow, len(refs))
	for i, m := range res.ByPhrase(len(refs)) {
		ref := refs[i]
		if m == nil {
			rows[i] = report.StatusRow{Cells: []string{ref.Reference, ref.Subhead, "COULD NOT MATCH", "", "", ""}}
			continue
		}
		span := spans[m.Candidate]
		page, parity := "", ""
		if n, par, ok := parser.PageParity(span.Page); ok {
			page, parity = strconv.Itoa(n), par
		}
		rows[i] = report.StatusRow{
			Matched: true,
			Cells:   []string{ref.Reference, ref.Subhead, "MATCH", span.BBox, page, parity},
		}
	}

	out := filepath.Join(dir, "matched_"+filepath.Base(p.Primary))
	header := []string{"Reference", "Subhead", "Match Status", "X-Coord", "Page", "Even/Odd"}
	if err := report.WriteStatusTable(out, header, rows); err != nil {
		return Outcome{}, inStage("write", err)
	}
	return Outcome{Matched: len(res.Matches), NotFound: len(res.Unmatched), Output: out}, nil
}

// ColXCoord holds the bbox tuple checked by XCheck.
const ColXCoord = "X-Coord"

// XCheckFiles lists the workbooks of dir that XCheck may process.
func XCheckFiles(dir string) ([]pairing.Pair, error) {
	files, err := pairing.List(dir, func(name string) bool {
		lower := strings.ToLower(name)
		return strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, "_checked.xlsx")
	})
	if err != nil {
		return nil, err
	}
	pairs := make([]pairing.Pair, len(files))
	for i, f := range files {
		pairs[i] = pairing.Pair{Primary: f}
	}
	return pairs, nil
}

// RunXCheck runs XCheck over dir against the configured standards file.
func (r *Runner) RunXCheck(dir string) (Summary, error) {
	path := resolve(dir, r.Config.XCheck.StandardsFile)
	std, err := parser.LoadStandards(path)
	if err != nil {
		return Summary{}, openError(path, err)
	}
	r.Logger.Info("loaded standards", "file", path, "acceptable", len(std.AcceptableX), "variance", std.Variance)

	return r.run("xcheck", func() ([]pairing.Pair, error) { return XCheckFiles(dir) }, func(p pairing.Pair) (Outcome, error) {
		return r.XCheck(p, std)
	})
}

// XCheck checks the first coordinate of every "X-Coord" tuple in workbook
// p.Primary against std and writes "<name>_checked.xlsx" with the original
// columns plus First_X and Check_Status. Workbooks without an X-Coord
// column are skipped.
func (r *Runner) XCheck(p pairing.Pair, std *parser.Standards) (Outcome, error) {
	table, err := parser.ReadTable(p.Primary)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Primary, err))
	}
	if _, ok := table.Col(ColXCoord); !ok {
		r.Logger.Info("no X-Coord column, skipping", "file", p.Primary)
		return Outcome{}, nil
	}

	header := append(append([]string(nil), table.Header...), "First_X", "Check_Status")
	rows := make([][]interface{}, len(table.Rows))
	var o Outcome
	for i, row := range table.Rows {
		values := make([]interface{}, len(table.Header), len(header))
		for c := range values {
			values[c] = ""
			if c < len(row) {
				values[c] = row[c]
			}
		}

		x, ok := parser.FirstX(table.Get(i, ColXCoord))
		status := std.Check(x, ok)
		if ok {
			values = append(values, x, status)
		} else {
			values = append(values, "", status)
		}
		if status == "Yes" {
			o.Matched++
		} else {
			o.NotFound++
			r.Logger.Debug("coordinate out of standard", "row", table.RowNums[i], "x", table.Get(i, ColXCoord))
		}
		rows[i] = values
	}

	o.Output = withExt(p.Primary, "") + "_checked.xlsx"
	if err := report.WriteXLSX(o.Output, header, rows); err != nil {
		return Outcome{}, inStage("write", err)
	}
	return o, nil
}

// RTFFiles lists the RTF book files of dir.
func RTFFiles(dir string) ([]pairing.Pair, error) {
	files, err := pairing.List(dir, pairing.Ext(".rtf"))
	if err != nil {
		return nil, err
	}
	pairs := make([]pairing.Pair, len(files))
	for i, f := range files {
		pairs[i] = pairing.Pair{Primary: f}
	}
	return pairs, nil
}

// RunRTF2XLSX converts every RTF file of dir, writing into outDir (dir when
// empty).
func (r *Runner) RunRTF2XLSX(dir, outDir string) (Summary, error) {
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Summary{}, err
	}
	return r.run("rtf2xlsx", func() ([]pairing.Pair, error) { return RTFFiles(dir) }, func(p pairing.Pair) (Outcome, error) {
		return r.RTF2XLSX(p, outDir)
	})
}

// RTF2XLSX splits RTF book p.Primary into verses and writes them to
// "<outDir>/<name>.xlsx" as Reference, Text rows. Nothing is written when no
// verse is found.
func (r *Runner) RTF2XLSX(p pairing.Pair, outDir string) (Outcome, error) {
	data, err := os.ReadFile(p.Primary)
	if err != nil {
		return Outcome{}, inStage("load", openError(p.Primary, err))
	}
	text, err := parser.RTFToText(data)
	if err != nil {
		return Outcome{}, inStage("extract", err)
	}

	book := parser.RTFBookName(p.Primary)
	verses := parser.SplitVerses(text, book)
	if len(verses) == 0 {
		r.Logger.Warn("no verses found", "file", p.Primary, "book", book)
		return Outcome{}, nil
	}

	rows := make([][]interface{}, len(verses))
	for i, v := range verses {
		rows[i] = []interface{}{v.Reference(), v.Text}
	}
	out := filepath.Join(outDir, p.Name()+".xlsx")
	if err := report.WriteXLSX(out, []string{"Reference", "Text"}, rows); err != nil {
		return Outcome{}, inStage("write", err)
	}
	return Outcome{Matched: len(verses), Output: out}, nil
}
