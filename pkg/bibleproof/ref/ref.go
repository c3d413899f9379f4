// Package ref parses display scripture references such as "1 Samuel 3:4".
package ref

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Ref is a parsed chapter:verse reference.
type Ref struct {
	// Book is the book name as written (e.g. "1 Samuel", "Song of Solomon").
	Book string `json:"book"`
	// Chapter is the chapter number (1-indexed).
	Chapter int `json:"chapter"`
	// Verse is the verse number (1-indexed).
	Verse int `json:"verse"`
	// VerseEnd is the ending verse for ranges (optional).
	VerseEnd int `json:"verse_end,omitempty"`
}

// refGrammar accepts "Genesis 1:1", "1 Samuel 3:4", "Song of Solomon 2:1-3".
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string   `parser:"@Int?"`
	BookWords  []string `parser:"@Ident+"`
	Chapter    int      `parser:"@Int"`
	Verse      int      `parser:"\":\" @Int"`
	Range      *int     `parser:"( \"-\" @Int )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z']*`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a display reference.
func Parse(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid reference format: %q: %w", s, err)
	}

	book := strings.Join(parsed.BookWords, " ")
	if parsed.BookPrefix != "" {
		book = parsed.BookPrefix + " " + book
	}

	r := &Ref{
		Book:    book,
		Chapter: parsed.Chapter,
		Verse:   parsed.Verse,
	}
	if parsed.Range != nil {
		r.VerseEnd = *parsed.Range
	}
	return r, nil
}

// String returns the display form of the reference.
func (r *Ref) String() string {
	if r.VerseEnd > 0 {
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.Verse, r.VerseEnd)
	}
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// Less orders references by chapter, then verse. References that do not
// parse sort after those that do.
func Less(a, b string) bool {
	return ByPosition(parseOrNil(a), parseOrNil(b))
}

// ByPosition orders parsed references by chapter, then verse. A nil
// reference sorts after any other.
func ByPosition(a, b *Ref) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	case a.Chapter != b.Chapter:
		return a.Chapter < b.Chapter
	default:
		return a.Verse < b.Verse
	}
}

func parseOrNil(s string) *Ref {
	r, err := Parse(s)
	if err != nil {
		return nil
	}
	return r
}
