package bibleproof

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pairing"
	"github.com/zeebo/blake3"
)

// Outcome is what processing one pair produced.
type Outcome struct {
	Matched  int
	NotFound int
	// Output is the written file, empty when nothing was written.
	Output string
}

// Summary totals a batch run.
type Summary struct {
	Processed int
	Failed    int
	Matched   int
	NotFound  int
	Outputs   []string
	Errors    []*PairError
}

// PairFunc processes one pair.
type PairFunc func(p pairing.Pair) (Outcome, error)

// RunBatch processes pairs one after another. A failing or panicking pair is
// logged and counted, and the run moves on.
func RunBatch(pairs []pairing.Pair, logger *slog.Logger, fn PairFunc) Summary {
	if logger == nil {
		logger = slog.Default()
	}

	var s Summary
	for i, p := range pairs {
		logger.Info("processing pair", "n", i+1, "of", len(pairs),
			"primary", p.Primary, "companion", p.Companion)
		logFingerprints(logger, p)

		out, err := runPair(p, fn)
		if err != nil {
			s.Failed++
			s.Errors = append(s.Errors, err)
			logger.Error("pair failed", "pair", p.Name(), "stage", err.Stage, "error", err.Err)
			continue
		}

		s.Processed++
		s.Matched += out.Matched
		s.NotFound += out.NotFound
		if out.Output != "" {
			s.Outputs = append(s.Outputs, out.Output)
		}
		logger.Info("pair done", "pair", p.Name(),
			"matched", out.Matched, "not_found", out.NotFound, "output", out.Output)
	}

	logger.Info("batch complete", "processed", s.Processed, "failed", s.Failed,
		"matched", s.Matched, "not_found", s.NotFound)
	return s
}

func runPair(p pairing.Pair, fn PairFunc) (out Outcome, perr *PairError) {
	defer func() {
		if r := recover(); r != nil {
			perr = NewPairError(p, "panic", fmt.Errorf("%v", r))
		}
	}()

	out, err := fn(p)
	if err == nil {
		return out, nil
	}
	var se *stageError
	if errors.As(err, &se) {
		return out, NewPairError(p, se.stage, se.err)
	}
	return out, NewPairError(p, "process", err)
}

func logFingerprints(logger *slog.Logger, p pairing.Pair) {
	for _, path := range []string{p.Primary, p.Companion} {
		if path == "" {
			continue
		}
		sum, err := Fingerprint(path)
		if err != nil {
			continue
		}
		logger.Debug("input fingerprint", "file", path, "blake3", sum)
	}
}

// Fingerprint returns the hex BLAKE3-256 digest of a file.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
