package models

import "fmt"

// Verse is one verse reconstructed from a book structure sheet.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
	// StartRow is the row of the verse-number marker that opened the verse.
	StartRow int `json:"start_row"`
	// EndRow is the row at which the verse was flushed.
	EndRow int `json:"end_row"`
}

// Reference returns the display reference, e.g. "Genesis 1:1".
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// Subhead is a section heading found in a book structure sheet.
type Subhead struct {
	// Row is the sheet row the subhead sits on.
	Row int `json:"row"`
	// Text is the subhead as written in the sheet.
	Text string `json:"text"`
	// Clean is Text after textnorm.Clean.
	Clean string `json:"clean"`
}

// ChapterMark records where a chapter number row was seen.
type ChapterMark struct {
	Chapter int `json:"chapter"`
	Row     int `json:"row"`
}

// BookStructure is everything extracted from one book structure sheet.
type BookStructure struct {
	// BookName is the book the references are tagged with.
	BookName string        `json:"book_name"`
	Verses   []Verse       `json:"verses"`
	Subheads []Subhead     `json:"subheads,omitempty"`
	Chapters []ChapterMark `json:"chapters,omitempty"`
}

// VerseAfter returns the first verse whose marker row comes after row.
func (b *BookStructure) VerseAfter(row int) (Verse, bool) {
	for _, v := range b.Verses {
		if v.StartRow > row {
			return v, true
		}
	}
	return Verse{}, false
}
