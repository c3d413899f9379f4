// Package books holds the canonical book table used to name verse references.
package books

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Book holds metadata for a single book of the Bible.
type Book struct {
	Name     string
	Order    int
	Chapters int
}

// canon lists the books in canonical order.
var canon = []Book{
	{"Genesis", 1, 50},
	{"Exodus", 2, 40},
	{"Leviticus", 3, 27},
	{"Numbers", 4, 36},
	{"Deuteronomy", 5, 34},
	{"Joshua", 6, 24},
	{"Judges", 7, 21},
	{"Ruth", 8, 4},
	{"1 Samuel", 9, 31},
	{"2 Samuel", 10, 24},
	{"1 Kings", 11, 22},
	{"2 Kings", 12, 25},
	{"1 Chronicles", 13, 29},
	{"2 Chronicles", 14, 36},
	{"Ezra", 15, 10},
	{"Nehemiah", 16, 13},
	{"Esther", 17, 10},
	{"Job", 18, 42},
	{"Psalms", 19, 150},
	{"Proverbs", 20, 31},
	{"Ecclesiastes", 21, 12},
	{"Song of Solomon", 22, 8},
	{"Isaiah", 23, 66},
	{"Jeremiah", 24, 52},
	{"Lamentations", 25, 5},
	{"Ezekiel", 26, 48},
	{"Daniel", 27, 12},
	{"Hosea", 28, 14},
	{"Joel", 29, 3},
	{"Amos", 30, 9},
	{"Obadiah", 31, 1},
	{"Jonah", 32, 4},
	{"Micah", 33, 7},
	{"Nahum", 34, 3},
	{"Habakkuk", 35, 3},
	{"Zephaniah", 36, 3},
	{"Haggai", 37, 2},
	{"Zechariah", 38, 14},
	{"Malachi", 39, 4},
	{"Matthew", 40, 28},
	{"Mark", 41, 16},
	{"Luke", 42, 24},
	{"John", 43, 21},
	{"Acts", 44, 28},
	{"Romans", 45, 16},
	{"1 Corinthians", 46, 16},
	{"2 Corinthians", 47, 13},
	{"Galatians", 48, 6},
	{"Ephesians", 49, 6},
	{"Philippians", 50, 4},
	{"Colossians", 51, 4},
	{"1 Thessalonians", 52, 5},
	{"2 Thessalonians", 53, 3},
	{"1 Timothy", 54, 6},
	{"2 Timothy", 55, 4},
	{"Titus", 56, 3},
	{"Philemon", 57, 1},
	{"Hebrews", 58, 13},
	{"James", 59, 5},
	{"1 Peter", 60, 5},
	{"2 Peter", 61, 3},
	{"1 John", 62, 5},
	{"2 John", 63, 1},
	{"3 John", 64, 1},
	{"Jude", 65, 1},
	{"Revelation", 66, 22},
}

// orderPrefix matches the "01-" style ordering prefix of book files.
var orderPrefix = regexp.MustCompile(`^\d+[\s._-]+`)

// byCompactLen is canon ordered longest compact name first, so "1 John"
// is tried before "John".
var byCompactLen []Book

func init() {
	byCompactLen = append([]Book(nil), canon...)
	sort.SliceStable(byCompactLen, func(i, j int) bool {
		return len(compact(byCompactLen[i].Name)) > len(compact(byCompactLen[j].Name))
	})
}

// All returns the canonical books in order.
func All() []Book {
	return append([]Book(nil), canon...)
}

// Lookup finds a book by name, ignoring case and spacing ("1samuel", "1 Samuel").
func Lookup(name string) (Book, bool) {
	key := compact(name)
	if key == "" {
		return Book{}, false
	}
	for _, b := range canon {
		if compact(b.Name) == key {
			return b, true
		}
	}
	return Book{}, false
}

// FromFileName detects the book a file belongs to, e.g. "01-Genesis Body - 217.txt".
func FromFileName(path string) (Book, bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	key := compact(orderPrefix.ReplaceAllString(base, ""))

	// The name found earliest wins; at equal positions the longer one does.
	best, bestAt := Book{}, -1
	for _, b := range byCompactLen {
		at := strings.Index(key, compact(b.Name))
		if at >= 0 && (bestAt < 0 || at < bestAt) {
			best, bestAt = b, at
		}
	}
	return best, bestAt >= 0
}

func compact(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
