package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/models"
)

// LoadLines reads a UTF-8 text file, one phrase per line. Lines are trimmed
// and blank lines are dropped.
func LoadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// SplitSubheadLine splits a merged "Reference<TAB>Subhead" line. Without a
// tab the line is split on its first space.
func SplitSubheadLine(line string) models.SubheadRef {
	line = strings.Trim(strings.TrimSpace(line), `"`)
	var ref, sub string
	switch {
	case strings.Contains(line, "\t"):
		ref, sub, _ = strings.Cut(line, "\t")
	case strings.Contains(line, " "):
		ref, sub, _ = strings.Cut(line, " ")
	default:
		ref = line
	}
	return models.SubheadRef{Reference: strings.TrimSpace(ref), Subhead: strings.TrimSpace(sub)}
}

// isReportNoise reports banner, not-found and header lines of a subheads
// report.
func isReportNoise(r models.SubheadRef) bool {
	return r.Reference == "ERROR:" || r.Reference == "NOT_FOUND:" || r.Reference == "Reference"
}

// CleanSubheadCSV rewrites a raw subhead report into a two-column
// Reference,Subhead CSV. An existing cleaned file is left alone and
// reported with skipped=true.
func CleanSubheadCSV(rawPath, cleanedPath string) (skipped bool, err error) {
	if _, err := os.Stat(cleanedPath); err == nil {
		return true, nil
	}

	in, err := os.Open(rawPath)
	if err != nil {
		return false, err
	}
	defer in.Close()

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Reference", "Subhead"}); err != nil {
		return false, err
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false, fmt.Errorf("read %s: %w", rawPath, err)
		}
		line := strings.Join(rec, ",")
		if strings.TrimSpace(line) == "" {
			continue
		}
		ref := SplitSubheadLine(line)
		if isReportNoise(ref) {
			continue
		}
		if err := w.Write([]string{ref.Reference, ref.Subhead}); err != nil {
			return false, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, err
	}

	return false, os.WriteFile(cleanedPath, buf.Bytes(), 0o644)
}

// ReadSubheadRefs reads a cleaned Reference,Subhead CSV.
func ReadSubheadRefs(path string) ([]models.SubheadRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	t := NewTable(records)
	if err := t.Require("Reference", "Subhead"); err != nil {
		return nil, err
	}

	refs := make([]models.SubheadRef, 0, len(t.Rows))
	for i := range t.Rows {
		refs = append(refs, models.SubheadRef{
			Reference: t.Get(i, "Reference"),
			Subhead:   t.Get(i, "Subhead"),
		})
	}
	return refs, nil
}
