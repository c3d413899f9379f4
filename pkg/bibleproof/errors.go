package bibleproof

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pairing"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates an input file cannot be parsed.
var ErrInvalidFormat = errors.New("invalid format")

// ErrNoPairs indicates a job found nothing to process.
var ErrNoPairs = errors.New("no input files found")

// PairError represents a failure while processing one file pair.
type PairError struct {
	Pair  pairing.Pair
	Stage string // "load", "extract", "match", "write", "annotate"
	Err   error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%s failed for %q (%s): %v", e.Stage, e.Pair.Name(), e.Pair.Primary, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}

// NewPairError creates a new PairError.
func NewPairError(p pairing.Pair, stage string, err error) *PairError {
	return &PairError{
		Pair:  p,
		Stage: stage,
		Err:   err,
	}
}

// stageError tags err with a stage; runPair turns it into a PairError.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

func inStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &stageError{stage: stage, err: err}
}

// openError maps a missing file to ErrFileNotFound.
func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}
