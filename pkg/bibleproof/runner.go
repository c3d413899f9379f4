package bibleproof

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Sirius1616/Bible-code/pkg/bibleproof/pairing"
)

// Runner runs the jobs with one configuration.
type Runner struct {
	Config *Config
	Logger *slog.Logger
}

// NewRunner creates a Runner. Nil arguments fall back to DefaultConfig and
// slog.Default.
func NewRunner(cfg *Config, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Config: cfg, Logger: logger}
}

// run discovers pairs and processes them.
func (r *Runner) run(job string, discover func() ([]pairing.Pair, error), fn PairFunc) (Summary, error) {
	pairs, err := discover()
	if err != nil {
		return Summary{}, err
	}
	if len(pairs) == 0 {
		return Summary{}, ErrNoPairs
	}
	r.Logger.Info("starting job", "job", job, "pairs", len(pairs))
	return RunBatch(pairs, r.Logger.With("job", job), fn), nil
}

// resolve joins a relative path onto dir.
func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// withExt replaces the extension of path.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
