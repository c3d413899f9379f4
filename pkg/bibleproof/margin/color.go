package margin

import "strings"

// Color is the review color of a margin measurement cell.
type Color int

const (
	// None means the cell has no fill.
	None Color = iota
	Red
	Yellow
	Purple
	Orange
	// Unknown is a fill that is not in the palette. Callers decide whether to
	// skip or fail.
	Unknown
)

// Reviewed lists the colors that produce annotations, in report order.
var Reviewed = []Color{Red, Yellow, Purple, Orange}

var palette = map[string]Color{
	"FFC7CE": Red,
	"FFEB9C": Yellow,
	"E4DFEC": Purple,
	"FDEADA": Orange,
	// Alternate palette used by some proofing templates.
	"800080": Purple,
	"FFA500": Orange,
}

// Classify maps a fill color to a review color. It accepts "#RRGGBB",
// "RRGGBB" and 8-digit "AARRGGBB" in any case.
func Classify(hex string) Color {
	h := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hex), "#")))
	if h == "" {
		return None
	}
	if len(h) == 8 {
		h = h[2:]
	}
	if c, ok := palette[h]; ok {
		return c
	}
	return Unknown
}

// String returns the upper-case label used in comments, e.g. "RED".
func (c Color) String() string {
	switch c {
	case None:
		return "NONE"
	case Red:
		return "RED"
	case Yellow:
		return "YELLOW"
	case Purple:
		return "PURPLE"
	case Orange:
		return "ORANGE"
	default:
		return "UNKNOWN"
	}
}

// Stroke returns the annotation color as RGB components in [0,1].
func (c Color) Stroke() [3]float64 {
	switch c {
	case Red:
		return [3]float64{1, 0, 0}
	case Yellow:
		return [3]float64{1, 1, 0}
	case Purple:
		return [3]float64{0.5, 0, 0.5}
	case Orange:
		return [3]float64{1, 0.5, 0}
	default:
		return [3]float64{0, 0, 0}
	}
}
