// Package textnorm provides the text cleaning rules shared by every matcher.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// apostropheVariants are the single-quote forms seen in typesetting exports.
var apostropheVariants = []string{
	"‘", "’", "`", "´", "ʼ",
	"′", "՚", "׳", "＇",
}

// doubleQuoteVariants are the double-quote forms seen in typesetting exports.
var doubleQuoteVariants = []string{
	"“", "”", "„", "‟", "″", "＂",
}

var (
	apostropheReplacer  = newReplacer(apostropheVariants, "'")
	doubleQuoteReplacer = newReplacer(doubleQuoteVariants, `"`)
	quoteReplacer       = strings.NewReplacer(append(pairsTo(apostropheVariants, "'"), pairsTo(doubleQuoteVariants, `"`)...)...)
)

func newReplacer(variants []string, to string) *strings.Replacer {
	return strings.NewReplacer(pairsTo(variants, to)...)
}

func pairsTo(variants []string, to string) []string {
	pairs := make([]string, 0, len(variants)*2)
	for _, v := range variants {
		pairs = append(pairs, v, to)
	}
	return pairs
}

var verseNumberPrefix = regexp.MustCompile(`^\d+\s*`)

// Normalize unifies quote and apostrophe variants, collapses whitespace and
// trims the result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = quoteReplacer.Replace(s)
	return CollapseSpace(s)
}

// Strict is Normalize followed by a whitelist strip. It builds comparison
// keys only; never use it on text that is written back out.
func Strict(s string) string {
	return CollapseSpace(norm.NFC.String(strings.Map(keepRune, Normalize(s))))
}

// Clean maps double-quote variants to " and applies the Strict whitelist,
// but leaves apostrophe variants as they are, so a later apostrophe pass
// still has something to unify.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = doubleQuoteReplacer.Replace(norm.NFC.String(s))
	return CollapseSpace(norm.NFC.String(strings.Map(keepRune, s)))
}

// UnifyApostrophes maps every apostrophe variant to '.
func UnifyApostrophes(s string) string {
	return apostropheReplacer.Replace(s)
}

// StripQuotes removes straight double quotes.
func StripQuotes(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// StripVerseNumber removes a leading verse number such as "12 In the".
func StripVerseNumber(s string) string {
	return strings.TrimSpace(verseNumberPrefix.ReplaceAllString(s, ""))
}

// CollapseSpace folds whitespace runs into one space and trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Words splits s on whitespace into a set.
func Words(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func keepRune(r rune) rune {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '_':
		return r
	case unicode.IsSpace(r):
		return r
	case strings.ContainsRune("-–—:;,.!?()'\"", r):
		return r
	}
	for _, v := range apostropheVariants {
		if string(r) == v {
			return r
		}
	}
	return -1
}
