package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/books"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/models"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof/textnorm"
	"github.com/xuri/excelize/v2"
)

// Row-type labels, checked as substrings in this order.
const (
	TypeSubhead   = "SUBHEAD"
	TypeChapter   = "CHAPTER NUMBERS"
	TypeVerse     = "VERSE NUMBERS"
	TypeScripture = "SCRIPTURE TEXT"
)

var bookFromFileName = regexp.MustCompile(`(?:^|\D)(\d+)[-\s]*([A-Za-z]+)`)

// DetectBook names the book a structure sheet belongs to from its file name.
// The canonical book table is tried first, then a "NN-Name" pattern, then
// fallback.
func DetectBook(path, fallback string) string {
	if b, ok := books.FromFileName(path); ok {
		return b.Name
	}
	if m := bookFromFileName.FindStringSubmatch(filepath.Base(path)); m != nil {
		return m[2]
	}
	return fallback
}

// Accumulator carries the state of the verse fold between rows.
type Accumulator struct {
	book    string
	chapter int
	verse   int
	// inVerse is set once a verse-number row with digits has been seen.
	inVerse      bool
	verseChapter int
	startRow     int
	lastRow      int
	parts        []string

	verses   []models.Verse
	subheads []models.Subhead
	chapters []models.ChapterMark
}

// NewAccumulator starts a fold for book at chapter 1.
func NewAccumulator(book string) *Accumulator {
	return &Accumulator{book: book, chapter: 1}
}

// Step folds one row into the accumulator.
func (a *Accumulator) Step(r models.TypedRow) {
	a.lastRow = r.Row
	content := r.Content

	switch {
	case strings.Contains(r.Type, TypeSubhead):
		if content == "" {
			return
		}
		if clean := textnorm.Clean(content); clean != "" {
			a.subheads = append(a.subheads, models.Subhead{Row: r.Row, Text: content, Clean: clean})
		}

	case strings.Contains(r.Type, TypeChapter):
		if strings.TrimSpace(content) == "" {
			return
		}
		if n, err := strconv.Atoi(digits(content)); err == nil {
			a.chapter = n
			a.chapters = append(a.chapters, models.ChapterMark{Chapter: n, Row: r.Row})
		}

	case strings.Contains(r.Type, TypeVerse):
		if strings.TrimSpace(content) == "" {
			return
		}
		a.flush(r.Row)
		if n, err := strconv.Atoi(digits(content)); err == nil {
			a.verse = n
			a.inVerse = true
		}
		a.verseChapter = a.chapter
		a.startRow = r.Row
		a.parts = a.parts[:0]

	case strings.Contains(r.Type, TypeScripture):
		if content == "" || content == `""` {
			return
		}
		if clean := textnorm.StripQuotes(content); clean != "" {
			a.parts = append(a.parts, clean)
		}
	}
}

func (a *Accumulator) flush(row int) {
	if !a.inVerse || len(a.parts) == 0 {
		return
	}
	text := strings.TrimSpace(strings.Join(a.parts, " "))
	if text == "" {
		return
	}
	a.verses = append(a.verses, models.Verse{
		Book:     a.book,
		Chapter:  a.verseChapter,
		Verse:    a.verse,
		Text:     text,
		StartRow: a.startRow,
		EndRow:   row,
	})
}

// Finish flushes the pending verse and returns the extracted structure.
func (a *Accumulator) Finish() *models.BookStructure {
	a.flush(a.lastRow)
	a.parts = nil
	return &models.BookStructure{
		BookName: a.book,
		Verses:   a.verses,
		Subheads: a.subheads,
		Chapters: a.chapters,
	}
}

// Fold reconstructs verses, subheads and chapter marks from typed rows.
func Fold(book string, rows []models.TypedRow) *models.BookStructure {
	acc := NewAccumulator(book)
	for _, r := range rows {
		acc.Step(r)
	}
	return acc.Finish()
}

// ExtractStructure reads the active sheet of a book structure workbook.
func ExtractStructure(path, defaultBook string) (*models.BookStructure, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := ActiveSheet(f)
	rows, err := ExtractTypedRows(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return Fold(DetectBook(path, defaultBook), rows), nil
}
