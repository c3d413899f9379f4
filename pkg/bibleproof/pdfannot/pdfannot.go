// Package pdfannot adds text and free-text annotations to an existing PDF.
package pdfannot

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/margin"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Titles shown as the author of each annotation.
const (
	NoteTitle    = "Margin Check"
	SummaryTitle = "Annotation Summary"
)

// noteSize is the icon size of a text annotation in points.
const noteSize = 20

// Document is a PDF opened for annotation. Coordinates passed to its methods
// are points from the top-left corner of the page.
type Document struct {
	ctx *model.Context
}

// Open reads and validates a PDF.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

func (d *Document) page(pageNr int) (types.Dict, *model.InheritedPageAttrs, error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return nil, nil, fmt.Errorf("page %d out of range (1-%d)", pageNr, d.ctx.PageCount)
	}
	pd, _, inh, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, nil, fmt.Errorf("page %d: %w", pageNr, err)
	}
	if pd == nil {
		return nil, nil, fmt.Errorf("page %d: missing page dictionary", pageNr)
	}
	return pd, inh, nil
}

// PageHeight returns the visible height of a page in points.
func (d *Document) PageHeight(pageNr int) (float64, error) {
	_, inh, err := d.page(pageNr)
	if err != nil {
		return 0, err
	}
	if inh == nil {
		return 0, fmt.Errorf("page %d: no page box", pageNr)
	}
	if inh.CropBox != nil {
		return inh.CropBox.Height(), nil
	}
	if inh.MediaBox != nil {
		return inh.MediaBox.Height(), nil
	}
	return 0, fmt.Errorf("page %d: no page box", pageNr)
}

// AddText adds a sticky note whose icon's top-left corner is at (x, yTop).
func (d *Document) AddText(pageNr int, x, yTop float64, text string, c margin.Color) error {
	height, err := d.PageHeight(pageNr)
	if err != nil {
		return err
	}
	y := height - yTop

	rgb := c.Stroke()
	annot := types.Dict{
		"Type":     types.Name("Annot"),
		"Subtype":  types.Name("Text"),
		"Rect":     rect(x, y-noteSize, x+noteSize, y),
		"Contents": literal(text),
		"T":        literal(NoteTitle),
		"NM":       literal(uuid.NewString()),
		"C":        types.Array{types.Float(rgb[0]), types.Float(rgb[1]), types.Float(rgb[2])},
		"F":        types.Integer(4),
		"Name":     types.Name("Comment"),
		"Open":     types.Boolean(false),
	}
	return d.attach(pageNr, annot)
}

// AddFreeText adds a text box. r is left, top, right, bottom.
func (d *Document) AddFreeText(pageNr int, r [4]float64, text string) error {
	height, err := d.PageHeight(pageNr)
	if err != nil {
		return err
	}

	annot := types.Dict{
		"Type":     types.Name("Annot"),
		"Subtype":  types.Name("FreeText"),
		"Rect":     rect(r[0], height-r[3], r[2], height-r[1]),
		"Contents": literal(text),
		"T":        literal(SummaryTitle),
		"NM":       literal(uuid.NewString()),
		"DA":       literal("/Helv 10 Tf 0 g"),
		"F":        types.Integer(4),
	}
	return d.attach(pageNr, annot)
}

func (d *Document) attach(pageNr int, annot types.Dict) error {
	pd, _, err := d.page(pageNr)
	if err != nil {
		return err
	}

	ref, err := d.ctx.IndRefForNewObject(annot)
	if err != nil {
		return fmt.Errorf("add annotation object: %w", err)
	}

	var annots types.Array
	if obj, found := pd.Find("Annots"); found && obj != nil {
		existing, err := d.ctx.DereferenceArray(obj)
		if err != nil {
			return fmt.Errorf("page %d annotations: %w", pageNr, err)
		}
		annots = append(annots, existing...)
	}
	annots = append(annots, *ref)
	pd.Update("Annots", annots)
	return nil
}

// Annotations returns the number of annotations on a page.
func (d *Document) Annotations(pageNr int) (int, error) {
	pd, _, err := d.page(pageNr)
	if err != nil {
		return 0, err
	}
	obj, found := pd.Find("Annots")
	if !found || obj == nil {
		return 0, nil
	}
	arr, err := d.ctx.DereferenceArray(obj)
	if err != nil {
		return 0, err
	}
	return len(arr), nil
}

// Save writes the annotated PDF to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := api.WriteContext(d.ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("pdfcpu write: %w", err)
	}
	return f.Close()
}

func rect(llx, lly, urx, ury float64) types.Array {
	return types.Array{types.Float(llx), types.Float(lly), types.Float(urx), types.Float(ury)}
}

// literal escapes s for a PDF literal string. Text outside ASCII is stored
// as UTF-16BE with a byte order mark, which viewers decode for text strings.
func literal(s string) types.StringLiteral {
	if !isASCII(s) {
		s = types.EncodeUTF16String(s)
	}
	escaped, _ := types.Escape(s)
	return types.StringLiteral(*escaped)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
