// Package pairing discovers the input file pairs of a batch run.
package pairing

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Pair is one unit of batch work.
type Pair struct {
	// Primary drives the job (e.g. the PDF or the phrase list).
	Primary string
	// Companion is the file matched to Primary.
	Companion string
}

// Name is the base name of the primary file without its extension.
func (p Pair) Name() string {
	base := filepath.Base(p.Primary)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Filter selects directory entries by file name.
type Filter func(name string) bool

// Ext matches any of the given extensions, case-insensitively.
func Ext(exts ...string) Filter {
	return func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				return true
			}
		}
		return false
	}
}

// Contains matches names containing sub, case-insensitively.
func Contains(sub string) Filter {
	sub = strings.ToLower(sub)
	return func(name string) bool {
		return strings.Contains(strings.ToLower(name), sub)
	}
}

// All matches names that pass every filter.
func All(filters ...Filter) Filter {
	return func(name string) bool {
		for _, f := range filters {
			if !f(name) {
				return false
			}
		}
		return true
	}
}

// List returns the sorted paths of regular files in dir that pass filter.
func List(dir string, filter Filter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !filter(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// ByBaseName pairs every primaryExt file with the companionExt file of the
// same base name. Primaries without a companion are logged and skipped.
func ByBaseName(dir, primaryExt, companionExt string, logger *slog.Logger) ([]Pair, error) {
	if logger == nil {
		logger = slog.Default()
	}
	primaries, err := List(dir, Ext(primaryExt))
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for _, p := range primaries {
		companion := strings.TrimSuffix(p, filepath.Ext(p)) + companionExt
		if _, err := os.Stat(companion); err != nil {
			logger.Warn("no matching companion file", "file", p, "expected", companion)
			continue
		}
		pairs = append(pairs, Pair{Primary: p, Companion: companion})
		logger.Info("found pair", "primary", p, "companion", companion)
	}
	return pairs, nil
}

var firstNumber = regexp.MustCompile(`\d+`)

// ByNumericPrefix pairs each primary with the first companion sharing its
// first run of digits, e.g. "01-Genesis body.txt" with "01-Genesis.xlsx".
// When nothing pairs, the first primary is paired with the first companion.
func ByNumericPrefix(dir string, primary, companion Filter) ([]Pair, error) {
	primaries, err := List(dir, primary)
	if err != nil {
		return nil, err
	}
	companions, err := List(dir, companion)
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for _, p := range primaries {
		num := firstNumber.FindString(filepath.Base(p))
		if num == "" {
			continue
		}
		for _, c := range companions {
			if firstNumber.FindString(filepath.Base(c)) == num {
				pairs = append(pairs, Pair{Primary: p, Companion: c})
				break
			}
		}
	}

	if len(pairs) == 0 && len(primaries) > 0 && len(companions) > 0 {
		pairs = append(pairs, Pair{Primary: primaries[0], Companion: companions[0]})
	}
	return pairs, nil
}

// ByPrefix pairs each primary with the first companion whose name starts
// with the first n characters of the primary's name.
func ByPrefix(dir string, n int, primary, companion Filter) ([]Pair, []string, error) {
	primaries, err := List(dir, primary)
	if err != nil {
		return nil, nil, err
	}
	companions, err := List(dir, companion)
	if err != nil {
		return nil, nil, err
	}

	var pairs []Pair
	var unpaired []string
	for _, p := range primaries {
		prefix := Prefix(p, n)
		found := false
		for _, c := range companions {
			if strings.HasPrefix(filepath.Base(c), prefix) {
				pairs = append(pairs, Pair{Primary: p, Companion: c})
				found = true
				break
			}
		}
		if !found {
			unpaired = append(unpaired, p)
		}
	}
	return pairs, unpaired, nil
}

// Prefix returns the first n bytes of the base name of path.
func Prefix(path string, n int) string {
	base := filepath.Base(path)
	if len(base) < n {
		return base
	}
	return base[:n]
}
