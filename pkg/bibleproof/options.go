// Package bibleproof runs the proofing jobs over a directory of book files.
package bibleproof

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is read from the working directory when no --config is given.
const DefaultConfigFile = "bibleproof.toml"

// Config holds every tunable of a run.
type Config struct {
	Match  MatchConfig  `toml:"match"`
	Margin MarginConfig `toml:"margin"`
	Books  BooksConfig  `toml:"books"`
	Report ReportConfig `toml:"report"`
	XCheck XCheckConfig `toml:"xcheck"`
	Log    LogConfig    `toml:"log"`
}

// MatchConfig holds the fuzzy thresholds.
type MatchConfig struct {
	SubheadThreshold float64 `toml:"subhead_threshold"`
	PhraseThreshold  float64 `toml:"phrase_threshold"`
}

// MarginConfig configures the margin annotator. CenterInches and
// PageHeightInches are fallbacks for keys missing from the reference file.
type MarginConfig struct {
	ReferenceFile    string  `toml:"reference_file"`
	CenterInches     float64 `toml:"center_inches"`
	PageHeightInches float64 `toml:"page_height_inches"`
	OffsetInches     float64 `toml:"offset_inches"`
}

// BooksConfig holds the book used when a file name names none.
type BooksConfig struct {
	Default string `toml:"default"`
}

// ReportConfig controls delimited reports.
type ReportConfig struct {
	// SortByReference orders matched rows by chapter and verse.
	SortByReference bool `toml:"sort_by_reference"`
}

// XCheckConfig configures the x-coordinate check.
type XCheckConfig struct {
	StandardsFile string `toml:"standards_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			SubheadThreshold: 0.7,
			PhraseThreshold:  0.6,
		},
		Margin: MarginConfig{
			ReferenceFile:    "margin_baseline_reference.txt",
			CenterInches:     3.766,
			PageHeightInches: 10.5,
			OffsetInches:     1.5,
		},
		Books: BooksConfig{
			Default: "Genesis",
		},
		Report: ReportConfig{
			SortByReference: true,
		},
		XCheck: XCheckConfig{
			StandardsFile: "Standards.txt",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Dir:    "logs",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return cfg, nil
}
