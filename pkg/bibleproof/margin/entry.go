package margin

import (
	"fmt"
	"strconv"
	"strings"
)

// Edge is the page edge a measurement is taken from.
type Edge int

const (
	Top Edge = iota
	Bottom
	Side
)

var bottomColumns = map[string]bool{
	"Bottom Scripture Baseline Left (in)":     true,
	"Bottom Scripture Baseline Right (in)":    true,
	"Bottom Scripture Baseline Column 1 (in)": true,
	"Bottom Scripture Baseline Column 2 (in)": true,
	"Footnote Baseline (in)":                  true,
	"Book Intro Baseline (in)":                true,
	"Study Note Baseline (in)":                true,
	"Article Baseline (in)":                   true,
	"Box Baseline (in)":                       true,
}

var sideMeasurements = map[string]bool{
	"Column 1 Left Edge (in)":  true,
	"Column 1 Right Edge (in)": true,
	"Column 2 Left Edge (in)":  true,
	"Column 2 Right Edge (in)": true,
	"Column 1 Max Width (in)":  true,
	"Column 2 Max Width (in)":  true,
	"Column Gap Width (in)":    true,
}

// Anchor returns the edge a column is measured from. Columns not known to
// be bottom or side measurements are measured from the top.
func Anchor(column string) Edge {
	switch {
	case bottomColumns[column]:
		return Bottom
	case sideMeasurements[column]:
		return Side
	default:
		return Top
	}
}

func (e Edge) phrase() string {
	switch e {
	case Bottom:
		return "from the bottom"
	case Side:
		return "from the side"
	default:
		return "from the top"
	}
}

// Entry is one colored measurement cell to annotate.
type Entry struct {
	Page   int
	Side   string
	Column string
	// Value is the cell text as shown in the sheet.
	Value string
	Color Color
	// Expected is the reference value; HasExpected is false when none was found.
	Expected    float64
	HasExpected bool
}

// Comment returns the sticky-note text for e.
func Comment(e Entry) string {
	switch e.Color {
	case Purple:
		return "The two columns on this page do not align and they are not at their typical location."
	case Orange:
		return "This column is not aligned with the other column. The other column is in the correct position."
	}

	s := fmt.Sprintf("%s %s. Text is %s inches %s.", e.Color, e.Column, e.Value, Anchor(e.Column).phrase())
	if e.HasExpected {
		return s + " Normally text is " + formatInches(e.Expected)
	}
	return s + " No reference available"
}

// formatInches prints 1.5 as "1.5" and 2 as "2.0".
func formatInches(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Place returns the note position in points, x from the left edge and y
// from the top edge of the page. x is centerIn, or offsetIn to its left or
// right for "Column 1" or "Column 2" columns. Bottom measurements are
// converted to a distance from the top. y is clamped to the page.
func Place(e Entry, pageHeightPt, centerIn, offsetIn float64) (x, yTop float64, err error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("value %q of %s is not a number", e.Value, e.Column)
	}

	switch {
	case strings.Contains(e.Column, "Column 1"):
		x = InchesToPoints(centerIn - offsetIn)
	case strings.Contains(e.Column, "Column 2"):
		x = InchesToPoints(centerIn + offsetIn)
	default:
		x = InchesToPoints(centerIn)
	}

	if Anchor(e.Column) == Bottom {
		yTop = pageHeightPt - InchesToPoints(v)
	} else {
		yTop = InchesToPoints(v)
	}
	if yTop < 0 {
		yTop = 0
	} else if yTop > pageHeightPt {
		yTop = pageHeightPt
	}
	return x, yTop, nil
}

// Counts tallies expected and written annotations per color.
type Counts struct {
	Expected map[Color]int
	Written  map[Color]int
}

// NewCounts returns zeroed counts.
func NewCounts() *Counts {
	return &Counts{Expected: make(map[Color]int), Written: make(map[Color]int)}
}

// Missing returns how many annotations of c were not written.
func (c *Counts) Missing(col Color) int {
	return c.Expected[col] - c.Written[col]
}

// Complete reports whether every expected annotation was written.
func (c *Counts) Complete() bool {
	for _, col := range Reviewed {
		if c.Missing(col) != 0 {
			return false
		}
	}
	return true
}

// Summary returns the text of the summary note placed on page 1.
func (c *Counts) Summary() string {
	if c.Complete() {
		return "All comments were successfully written into the PDF."
	}

	var b strings.Builder
	b.WriteString("MISSING ANNOTATIONS:\n\nANNOTATION SUMMARY:\n\n")
	for _, col := range Reviewed {
		exp, wrote := c.Expected[col], c.Written[col]
		if exp == wrote {
			fmt.Fprintf(&b, "%s: All %d annotations written successfully\n", col, exp)
			continue
		}
		fmt.Fprintf(&b, "%s: %d expected, %d written, %d missing.\n", col, exp, wrote, exp-wrote)
	}
	return b.String()
}
