package margin

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Well-known reference keys.
const (
	KeyCenter     = "Bible Text Area Center Point (in)"
	KeyPageHeight = "Page Height (in)"
)

// Reference maps reference keys to expected measurements in inches.
type Reference map[string]float64

// LineError is a reference file line that could not be parsed.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// LoadReference reads "Key: value" lines. Lines without a colon are ignored;
// lines whose value is not a number are returned as LineErrors and skipped.
func LoadReference(path string) (Reference, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	ref := make(Reference)
	var problems []*LineError

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			problems = append(problems, &LineError{Line: n, Text: line, Reason: "value is not a number"})
			continue
		}
		ref[strings.TrimSpace(key)] = v
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ref, problems, nil
}

// Get returns the value for key, or fallback when the key is absent.
func (r Reference) Get(key string, fallback float64) float64 {
	if v, ok := r[key]; ok {
		return v
	}
	return fallback
}

var sideColumns = map[string]string{
	"Column 1 Left Edge (in)":  "Column 1 Left Edge (in)",
	"Column 1 Right Edge (in)": "Column 1 Right Edge (in)",
	"Column 2 Left Edge (in)":  "Column 2 Left Edge (in)",
	"Column 2 Right Edge (in)": "Column 2 Right Edge (in)",
}

var fixedColumns = map[string]string{
	"Top Scripture Baseline Left (in)":        "Top",
	"Top Scripture Baseline Right (in)":       "Top",
	"Top Scripture Baseline Column 1 (in)":    "Top",
	"Top Scripture Baseline Column 2 (in)":    "Top",
	"Bottom Scripture Baseline Left (in)":     "Bottom",
	"Bottom Scripture Baseline Right (in)":    "Bottom",
	"Bottom Scripture Baseline Column 1 (in)": "Bottom",
	"Bottom Scripture Baseline Column 2 (in)": "Bottom",
	"Footnote Baseline (in)":                  "Footnote",
	"Book Intro Baseline (in)":                "Book Intro",
	"Study Note Baseline (in)":                "Study Note",
	"Article Baseline (in)":                   "Article",
	"Running Head Baseline (in)":              "Running Head",
	"Page Number Baseline (in)":               "Page Number",
	"Column 1 Max Width (in)":                 "Column 1 Max Width (in)",
	"Column 2 Max Width (in)":                 "Column 2 Max Width (in)",
	"Column Gap Width (in)":                   "Column Gap Width (in)",
	"Box Baseline (in)":                       "Box Baseline",
	"Subhead Baseline (in)":                   "Subhead Baseline (in)",
}

// ReferenceKeys returns the reference keys to try for a column, in order.
// Edge columns depend on the page side, e.g. "Left Pages - Column 1 Left
// Edge (in)".
func ReferenceKeys(column, side string) []string {
	var keys []string
	if edge, ok := sideColumns[column]; ok {
		keys = append(keys, fmt.Sprintf("%s Pages - %s", side, edge))
	}
	if key, ok := fixedColumns[column]; ok {
		keys = append(keys, key)
	}
	return keys
}

// Lookup returns the expected value for a column on a page side.
func (r Reference) Lookup(column, side string) (float64, bool) {
	for _, k := range ReferenceKeys(column, side) {
		if v, ok := r[k]; ok {
			return v, true
		}
	}
	return 0, false
}
