// Package match resolves free-text phrases against a corpus of references.
//
// Every call site (subheads, phrases, lines, spans) uses the same pass order:
// exact, apostrophe-insensitive exact, containment, then word-overlap fuzzy.
// The first strategy that succeeds wins and later strategies are not tried.
package match

import (
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/textnorm"
)

// Strategy identifies a matching pass.
type Strategy int

const (
	// None means the phrase was not matched.
	None Strategy = iota
	// Exact compares keys for equality.
	Exact
	// Apostrophe compares keys for equality after unifying apostrophes.
	Apostrophe
	// Contains accepts either key being a substring of the other.
	Contains
	// Fuzzy accepts the first candidate whose word-overlap ratio exceeds the threshold.
	Fuzzy
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Exact:
		return "exact"
	case Apostrophe:
		return "apostrophe"
	case Contains:
		return "contains"
	case Fuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Candidate is one corpus entry.
type Candidate struct {
	// Ref is the display reference, e.g. "Genesis 1:1".
	Ref string
	// Text is the text matched against.
	Text string
}

// Config parameterizes a matching run.
type Config struct {
	// Key builds the comparison key for corpus text. Nil means textnorm.Normalize.
	Key func(string) string
	// PhraseKey builds the comparison key for phrases. Nil means Key.
	PhraseKey func(string) string
	// FoldCase lowercases both keys.
	FoldCase bool
	// Strategies lists the passes to run, in priority order.
	Strategies []Strategy
	// Threshold is the exclusive lower bound for a fuzzy match.
	Threshold float64
}

// Matched is a phrase that resolved to a candidate.
type Matched struct {
	// Index is the position of Phrase in the input.
	Index     int
	Phrase    string
	Ref       string
	Text      string
	Strategy  Strategy
	Candidate int
}

// Result holds one entry per input phrase: either in Matches or in Unmatched.
type Result struct {
	Matches   []Matched
	Unmatched []string
}

// ByPhrase returns one slot per input phrase, nil where the phrase did not
// match. n is the number of phrases passed to Match.
func (r Result) ByPhrase(n int) []*Matched {
	slots := make([]*Matched, n)
	for i := range r.Matches {
		m := &r.Matches[i]
		if m.Index >= 0 && m.Index < n {
			slots[m.Index] = m
		}
	}
	return slots
}

// SubheadConfig matches subhead titles against the subheads of a book sheet.
func SubheadConfig() Config {
	return Config{
		Key:        textnorm.Clean,
		Strategies: []Strategy{Exact, Apostrophe, Contains, Fuzzy},
		Threshold:  0.7,
	}
}

// PhraseConfig matches verse-body fragments against verse text.
func PhraseConfig() Config {
	return Config{
		Key: textnorm.Clean,
		PhraseKey: func(s string) string {
			return textnorm.Clean(textnorm.StripVerseNumber(s))
		},
		FoldCase:   true,
		Strategies: []Strategy{Exact, Apostrophe, Contains, Fuzzy},
		Threshold:  0.6,
	}
}

// LineConfig matches whole text lines against verse text.
func LineConfig() Config {
	return Config{
		Key:        textnorm.Normalize,
		Strategies: []Strategy{Exact, Apostrophe},
	}
}

// SpanConfig matches cleaned subheads against PDF span content.
func SpanConfig() Config {
	return Config{
		Key:        textnorm.Normalize,
		Strategies: []Strategy{Exact, Apostrophe},
	}
}

type index struct {
	keys       []string
	unified    []string
	words      []map[string]struct{}
	exact      map[string]int
	apostrophe map[string]int
}

func (c Config) corpusKey(s string) string {
	key := textnorm.Normalize
	if c.Key != nil {
		key = c.Key
	}
	k := key(s)
	if c.FoldCase {
		k = strings.ToLower(k)
	}
	return k
}

func (c Config) phraseKey(s string) string {
	if c.PhraseKey == nil {
		return c.corpusKey(s)
	}
	k := c.PhraseKey(s)
	if c.FoldCase {
		k = strings.ToLower(k)
	}
	return k
}

func buildIndex(corpus []Candidate, cfg Config) *index {
	idx := &index{
		keys:       make([]string, len(corpus)),
		unified:    make([]string, len(corpus)),
		words:      make([]map[string]struct{}, len(corpus)),
		exact:      make(map[string]int, len(corpus)),
		apostrophe: make(map[string]int, len(corpus)),
	}
	for i, c := range corpus {
		k := cfg.corpusKey(c.Text)
		u := textnorm.UnifyApostrophes(k)
		idx.keys[i] = k
		idx.unified[i] = u
		idx.words[i] = textnorm.Words(u)
		if k == "" {
			continue
		}
		// First occurrence wins for duplicate keys.
		if _, ok := idx.exact[k]; !ok {
			idx.exact[k] = i
		}
		if _, ok := idx.apostrophe[u]; !ok {
			idx.apostrophe[u] = i
		}
	}
	return idx
}

// Match resolves every phrase against corpus. It never fails: a phrase that
// no strategy accepts is appended to Unmatched.
func Match(phrases []string, corpus []Candidate, cfg Config) Result {
	idx := buildIndex(corpus, cfg)
	res := Result{}

	for n, phrase := range phrases {
		key := cfg.phraseKey(phrase)
		i, strategy := idx.find(key, cfg)
		if strategy == None {
			res.Unmatched = append(res.Unmatched, phrase)
			continue
		}
		res.Matches = append(res.Matches, Matched{
			Index:     n,
			Phrase:    phrase,
			Ref:       corpus[i].Ref,
			Text:      corpus[i].Text,
			Strategy:  strategy,
			Candidate: i,
		})
	}
	return res
}

func (idx *index) find(key string, cfg Config) (int, Strategy) {
	if key == "" {
		return -1, None
	}
	for _, s := range cfg.Strategies {
		switch s {
		case Exact:
			if i, ok := idx.exact[key]; ok {
				return i, Exact
			}
		case Apostrophe:
			if i, ok := idx.apostrophe[textnorm.UnifyApostrophes(key)]; ok {
				return i, Apostrophe
			}
		case Contains:
			u := textnorm.UnifyApostrophes(key)
			for i, k := range idx.unified {
				if k == "" {
					continue
				}
				if strings.Contains(k, u) || strings.Contains(u, k) {
					return i, Contains
				}
			}
		case Fuzzy:
			pw := textnorm.Words(textnorm.UnifyApostrophes(key))
			for i, k := range idx.unified {
				if k == "" {
					continue
				}
				if Ratio(pw, idx.words[i]) > cfg.Threshold {
					return i, Fuzzy
				}
			}
		}
	}
	return -1, None
}

// Ratio is |a∩b| / max(|a|,|b|). Two empty sets score 0.
func Ratio(a, b map[string]struct{}) float64 {
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	common := 0
	for w := range small {
		if _, ok := large[w]; ok {
			common++
		}
	}
	return float64(common) / float64(denom)
}
