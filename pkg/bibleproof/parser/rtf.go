package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/models"
	"golang.org/x/text/encoding/charmap"
)

// rtfGroup is the content between a pair of braces.
type rtfGroup struct {
	children []interface{} // *rtfGroup, rtfControl or string
}

type rtfControl struct {
	word  string
	param int
	has   bool
}

type rtfParser struct {
	data []byte
	pos  int
}

// RTFToText converts an RTF document to plain text. Font, color, style,
// info, picture and "\*" destination groups are dropped; \par and \line
// become newlines; \'hh escapes are decoded as Windows-1252.
func RTFToText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", fmt.Errorf("empty RTF data")
	}
	if !bytes.HasPrefix(data, []byte(`{\rtf`)) {
		return "", fmt.Errorf("not a valid RTF document: missing \\rtf header")
	}

	p := &rtfParser{data: data}
	root, err := p.parseGroup()
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	writeRTFText(root, &buf)
	return strings.TrimSpace(buf.String()), nil
}

func (p *rtfParser) parseGroup() (*rtfGroup, error) {
	if p.pos >= len(p.data) || p.data[p.pos] != '{' {
		return nil, fmt.Errorf("expected '{' at position %d", p.pos)
	}
	p.pos++

	group := &rtfGroup{}
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case '}':
			p.pos++
			return group, nil
		case '{':
			nested, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			group.children = append(group.children, nested)
		case '\\':
			child, err := p.parseControl()
			if err != nil {
				return nil, err
			}
			group.children = append(group.children, child)
		case '\r', '\n':
			p.pos++
		default:
			if text := p.parseText(); text != "" {
				group.children = append(group.children, text)
			}
		}
	}
	return nil, fmt.Errorf("unclosed group")
}

// parseControl returns a rtfControl, or a string for escapes that decode to text.
func (p *rtfParser) parseControl() (interface{}, error) {
	p.pos++
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end after backslash")
	}

	ch := p.data[p.pos]
	switch {
	case ch == '{' || ch == '}' || ch == '\\':
		p.pos++
		return string(ch), nil

	case ch == '\'':
		if p.pos+2 >= len(p.data) {
			return nil, fmt.Errorf("truncated hex escape at position %d", p.pos)
		}
		b, err := strconv.ParseUint(string(p.data[p.pos+1:p.pos+3]), 16, 8)
		p.pos += 3
		if err != nil {
			return "", nil
		}
		return string(charmap.Windows1252.DecodeByte(byte(b))), nil

	case isLetter(ch):
		start := p.pos
		for p.pos < len(p.data) && isLetter(p.data[p.pos]) {
			p.pos++
		}
		cw := rtfControl{word: string(p.data[start:p.pos])}

		if p.pos < len(p.data) && (p.data[p.pos] == '-' || isDigit(p.data[p.pos])) {
			numStart := p.pos
			p.pos++
			for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
				p.pos++
			}
			cw.param, _ = strconv.Atoi(string(p.data[numStart:p.pos]))
			cw.has = true
		}
		if p.pos < len(p.data) && p.data[p.pos] == ' ' {
			p.pos++
		}

		if cw.word == "u" && cw.has {
			r := cw.param
			if r < 0 {
				r += 65536
			}
			// Skip the one-character ANSI fallback.
			if p.pos < len(p.data) && !strings.ContainsRune(`\{}`, rune(p.data[p.pos])) {
				p.pos++
			}
			return string(rune(r)), nil
		}
		return cw, nil
	}

	// Control symbol.
	p.pos++
	return rtfControl{word: string(ch)}, nil
}

func (p *rtfParser) parseText() string {
	var buf bytes.Buffer
	for p.pos < len(p.data) {
		ch := p.data[p.pos]
		if ch == '{' || ch == '}' || ch == '\\' {
			break
		}
		if ch != '\r' && ch != '\n' {
			buf.WriteByte(ch)
		}
		p.pos++
	}
	return buf.String()
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func skipGroup(g *rtfGroup) bool {
	for i, c := range g.children {
		cw, ok := c.(rtfControl)
		if !ok {
			continue
		}
		if i == 0 && cw.word == "*" {
			return true
		}
		switch cw.word {
		case "fonttbl", "colortbl", "stylesheet", "info", "pict", "object", "header", "footer":
			return true
		}
	}
	return false
}

func writeRTFText(g *rtfGroup, buf *strings.Builder) {
	for _, child := range g.children {
		switch v := child.(type) {
		case string:
			buf.WriteString(v)
		case rtfControl:
			switch v.word {
			case "par", "line":
				buf.WriteString("\n")
			case "tab":
				buf.WriteString("\t")
			case "~":
				buf.WriteString(" ")
			}
		case *rtfGroup:
			if !skipGroup(v) {
				writeRTFText(v, buf)
			}
		}
	}
}

var (
	rtfBookName    = regexp.MustCompile(`^\d+\.(.+)\.rtf$`)
	verseMarker    = regexp.MustCompile(`(\d+):(\d+)\s+`)
	verseBoundary  = regexp.MustCompile(`\d+:\d+`)
	strayNumber    = regexp.MustCompile(`\b\d{2,}\b`)
	lordArtifact   = regexp.MustCompile(`\bLord\s*16\b`)
	splitPossessiv = regexp.MustCompile(`\b(\w+)\s+s\b`)
	joinedIAm      = regexp.MustCompile(`\bIam\b`)
	huramAbi       = regexp.MustCompile(`Huram-\s*\??\s*abi`)
	spaceRun       = regexp.MustCompile(`\s+`)
)

// RTFBookName returns the book name of an "NN.Book.rtf" file, or the base
// name without extension when the pattern does not match.
func RTFBookName(path string) string {
	base := filepath.Base(path)
	if m := rtfBookName.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HumanReadable removes conversion artifacts from verse text.
func HumanReadable(s string) string {
	s = lordArtifact.ReplaceAllString(s, "Lord")
	s = strayNumber.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "�", "")
	s = splitPossessiv.ReplaceAllString(s, "$1's")
	s = joinedIAm.ReplaceAllString(s, "I am")
	s = huramAbi.ReplaceAllString(s, "Huram-abi")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// SplitVerses splits "C:V text C:V text" into verses. The text of a verse
// runs up to the next "C:V" in the text. Verses whose cleaned text is empty
// are dropped.
func SplitVerses(text, book string) []models.Verse {
	text = spaceRun.ReplaceAllString(text, " ")
	locs := verseMarker.FindAllStringSubmatchIndex(text, -1)
	bounds := verseBoundary.FindAllStringIndex(text, -1)

	var verses []models.Verse
	b := 0
	for _, loc := range locs {
		for b < len(bounds) && bounds[b][0] < loc[1] {
			b++
		}
		end := len(text)
		if b < len(bounds) {
			end = bounds[b][0]
		}
		chapter, _ := strconv.Atoi(text[loc[2]:loc[3]])
		verse, _ := strconv.Atoi(text[loc[4]:loc[5]])
		body := HumanReadable(text[loc[1]:end])
		if body == "" {
			continue
		}
		verses = append(verses, models.Verse{Book: book, Chapter: chapter, Verse: verse, Text: body})
	}
	return verses
}
