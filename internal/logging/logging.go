// Package logging sets up the slog logger shared by every job.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format represents a log output format.
type Format string

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = "text"
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = "json"
)

// Options configures Init.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is text or json.
	Format Format
	// Dir receives a timestamped log file when non-empty.
	Dir string
	// Prefix names the log file, e.g. "pdf_margin_annotator".
	Prefix string
	// Stdout overrides os.Stdout, for tests.
	Stdout io.Writer
	// Now overrides time.Now, for tests.
	Now func() time.Time
}

// Session is an installed logger and the file it writes to, if any.
type Session struct {
	Logger *slog.Logger
	// Path is the log file path, empty when logging to stdout only.
	Path string
	file *os.File
}

// Close closes the log file.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Init builds a logger writing to stdout and, when opts.Dir is set, to
// <Dir>/<Prefix>_<YYYYMMDD_HHMMSS>.log, and installs it as the slog default.
func Init(opts Options) (*Session, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	if opts.Stdout != nil {
		out = opts.Stdout
	}

	s := &Session{}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "bibleproof"
		}
		s.Path = filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", prefix, now().Format("20060102_150405")))
		s.file, err = os.Create(s.Path)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		out = io.MultiWriter(out, s.file)
	}

	handlerOpts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if opts.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	s.Logger = slog.New(handler)
	slog.SetDefault(s.Logger)
	if s.Path != "" {
		s.Logger.Info("logging started", "file", s.Path)
	}
	return s, nil
}
