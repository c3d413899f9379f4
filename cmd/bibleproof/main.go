// Package main provides the CLI entry point for bibleproof.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Sirius1616/Bible-code/internal/logging"
	"github.com/Sirius1616/Bible-code/pkg/bibleproof"
	"github.com/spf13/cobra"
)

var (
	configPath       string
	dir              string
	outDir           string
	logLevel         string
	logFormat        string
	logDir           string
	defaultBook      string
	referenceFile    string
	standardsFile    string
	subheadThreshold float64
	phraseThreshold  float64
	noSort           bool
)

var (
	cfg     *bibleproof.Config
	session *logging.Session
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bibleproof",
		Short: "Proof typeset Bible text against its source spreadsheets",
		Long: `bibleproof cross-references typeset Bible text with the spreadsheets it
was set from. Each subcommand processes every matching file pair in a
directory and writes its report next to the inputs.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if session != nil {
				session.Close()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", bibleproof.DefaultConfigFile, "Config file (TOML)")
	pf.StringVarP(&dir, "dir", "d", ".", "Directory holding the input files")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text, json")
	pf.StringVar(&logDir, "log-dir", "", "Directory for log files (empty string disables the log file)")
	pf.StringVar(&defaultBook, "book", "", "Book name used when a file name names none")

	subheadsCmd := jobCommand("subheads", "Map subhead titles to the verse that follows them", "bibleproof_subheads",
		func(r *bibleproof.Runner) (bibleproof.Summary, error) { return r.RunSubheads(dir) })
	subheadsCmd.Flags().Float64Var(&subheadThreshold, "threshold", 0, "Fuzzy match threshold (default from config)")
	subheadsCmd.Flags().BoolVar(&noSort, "no-sort", false, "Keep matched rows in input order")

	phrasesCmd := jobCommand("phrases", "Find the verse containing each body phrase", "bibleproof_phrases",
		func(r *bibleproof.Runner) (bibleproof.Summary, error) { return r.RunPhrases(dir) })
	phrasesCmd.Flags().Float64Var(&phraseThreshold, "threshold", 0, "Fuzzy match threshold (default from config)")
	phrasesCmd.Flags().BoolVar(&noSort, "no-sort", false, "Keep matched rows in input order")

	linesCmd := jobCommand("lines", "Match text lines exactly against a verse workbook", "bibleproof_lines",
		func(r *bibleproof.Runner) (bibleproof.Summary, error) { return r.RunLines(dir) })

	spansCmd := jobCommand("spans", "Locate subheads among the spans of a PDF export", "bibleproof_spans",
		func(r *bibleproof.Runner) (bibleproof.Summary, error) { return r.RunSpans(dir) })

	xcheckCmd := jobCommand("xcheck", "Check span x-coordinates against a standards file", "bibleproof_xcheck",
		func(r *bibleproof.Runner) (bibleproof.Summary, error) { return r.RunXCheck(dir) })
	xcheckCmd.Flags().StringVar(&standardsFile, "standards", "", "Standards file (default from config)")

	rtfCmd := jobCommand("rtf2xlsx", "Convert RTF book files to verse workbooks", "bibleproof_rtf2xlsx",
		func(r *bibleproof.Runner) (bibleproof.Summary, error) { return r.RunRTF2XLSX(dir, outDir) })
	rtfCmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory (default: input directory)")

	annotateCmd := jobCommand("annotate", "Annotate PDFs with their colored margin measurements", "pdf_margin_annotator",
		func(r *bibleproof.Runner) (bibleproof.Summary, error) { return r.RunAnnotate(dir) })
	annotateCmd.Flags().StringVar(&referenceFile, "reference", "", "Margin reference file (default from config)")

	rootCmd.AddCommand(subheadsCmd, phrasesCmd, linesCmd, spansCmd, xcheckCmd, rtfCmd, annotateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// jobCommand builds a subcommand that runs one batch job. logPrefix names
// the job's log file.
func jobCommand(use, short, logPrefix string, job func(*bibleproof.Runner) (bibleproof.Summary, error)) *cobra.Command {
	return &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"logPrefix": logPrefix},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := bibleproof.NewRunner(cfg, session.Logger)
			summary, err := job(runner)
			if errors.Is(err, bibleproof.ErrNoPairs) {
				return fmt.Errorf("%s: no input files found in %s", use, dir)
			}
			if err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}

			fmt.Printf("%s: %d processed, %d failed, %d matched, %d not found\n",
				use, summary.Processed, summary.Failed, summary.Matched, summary.NotFound)
			for _, out := range summary.Outputs {
				fmt.Printf("  wrote %s\n", out)
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d pairs failed", summary.Failed, summary.Processed+summary.Failed)
			}
			return nil
		},
	}
}

// setup loads the config file, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = bibleproof.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("log-dir") {
		cfg.Log.Dir = logDir
	}
	if flags.Changed("book") {
		cfg.Books.Default = defaultBook
	}
	if flags.Changed("threshold") {
		if cmd.Name() == "subheads" {
			cfg.Match.SubheadThreshold = subheadThreshold
		} else {
			cfg.Match.PhraseThreshold = phraseThreshold
		}
	}
	if flags.Changed("no-sort") {
		cfg.Report.SortByReference = !noSort
	}
	if flags.Changed("reference") {
		cfg.Margin.ReferenceFile = referenceFile
	}
	if flags.Changed("standards") {
		cfg.XCheck.StandardsFile = standardsFile
	}

	format := logging.FormatText
	if cfg.Log.Format == string(logging.FormatJSON) {
		format = logging.FormatJSON
	}
	session, err = logging.Init(logging.Options{
		Level:  cfg.Log.Level,
		Format: format,
		Dir:    cfg.Log.Dir,
		Prefix: cmd.Annotations["logPrefix"],
	})
	if err != nil {
		return fmt.Errorf("failed to start logging: %w", err)
	}
	return nil
}
