package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ai_text_analyzer/internal/aidetect"
	"ai_text_analyzer/internal/db"
	"ai_text_analyzer/internal/ingest"
	"ai_text_analyzer/internal/output"
	"ai_text_analyzer/internal/workspace"
)

type analyzeOptions struct {
	format   string
	output   string
	noColor  bool
	noJitter bool
	save     bool
	split    int
	jobs     int
}

func newAnalyzeCommand(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Score one or more texts",
		Long: `Analyze scores each input and prints a report. Inputs may be .txt, .md,
.docx or .pdf files, doublestar globs such as "docs/**/*.md", or "-" for
standard input. With no arguments the text is read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, global, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", output.FormatText, "Output format: "+strings.Join(output.Formats(), ", "))
	f.StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored text output")
	f.BoolVar(&opts.noJitter, "no-jitter", false, "Disable the random jitter on the overall score")
	f.BoolVar(&opts.save, "save", false, "Store the reports in the workspace database")
	f.IntVar(&opts.split, "split", 0, "Also analyze paragraph windows of about N words")
	f.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "Number of files read concurrently")
	f.Int64("seed", -1, "Jitter seed; negative seeds from the clock")
	f.Bool("parallel", false, "Run heuristics concurrently")
	f.Int("workers", 0, "Worker count for --parallel and --split (0 = number of CPUs)")
	f.Int("min-words", 0, "Minimum word count for analysis")
	return cmd
}

var analyzeBindings = map[string]string{
	"seed":             "seed",
	"parallel":         "parallel",
	"workers":          "workers",
	"limits.min_words": "min-words",
}

func runAnalyze(cmd *cobra.Command, global *globalOptions, opts *analyzeOptions, args []string) error {
	if opts.split < 0 {
		return fmt.Errorf("--split must not be negative")
	}
	formatter, err := output.New(opts.format, !opts.noColor && opts.output == "")
	if err != nil {
		return err
	}
	cfg, err := global.loadConfig(cmd, analyzeBindings)
	if err != nil {
		return err
	}
	if opts.noJitter {
		cfg.RandomnessFactor = 0
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	docs, err := readInputs(cmd.Context(), paths, cmd.InOrStdin(), opts.jobs)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := ingest.CheckSize(doc.Text, cfg.Limits.MaxChars, cfg.Limits.MaxWords); err != nil {
			return fmt.Errorf("%s: %w", doc.SourcePath, err)
		}
	}

	var analyzerOpts []aidetect.Option
	if opts.noJitter {
		analyzerOpts = append(analyzerOpts, aidetect.WithNoise(aidetect.NoNoise{}))
	}
	analyzer, err := aidetect.New(cfg, analyzerOpts...)
	if err != nil {
		return err
	}

	results := make([]output.Document, len(docs))
	for i, doc := range docs {
		in := aidetect.Input{DocumentID: doc.Title, Text: doc.Text}
		results[i] = output.Document{Source: doc.SourcePath, Report: analyzer.Analyze(in)}
		if opts.split > 0 {
			results[i].Windows = analyzer.AnalyzeWindows(in, opts.split)
		}
	}

	if opts.save {
		if err := saveReports(cmd, global, docs, results); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		w = file
	}
	if err := formatter.Format(w, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// expandPaths resolves glob arguments. No arguments means standard input.
func expandPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{ingest.StdinName}, nil
	}
	var out []string
	seen := map[string]bool{}
	for _, arg := range args {
		matches := []string{arg}
		if arg != ingest.StdinName && strings.ContainsAny(arg, "*?[{") {
			var err error
			matches, err = doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", arg)
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// readInputs parses every path with at most jobs files in flight, keeping the argument order.
func readInputs(ctx context.Context, paths []string, stdin io.Reader, jobs int) ([]*ingest.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	docs := make([]*ingest.Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var doc *ingest.Document
			var err error
			if path == ingest.StdinName {
				doc, err = ingest.ParseReader(path, stdin)
			} else {
				doc, err = ingest.ParseFile(path)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			slog.Debug("input parsed", "path", path, "format", doc.Format, "chars", len(doc.Text))
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func saveReports(cmd *cobra.Command, global *globalOptions, docs []*ingest.Document, results []output.Document) error {
	base, err := global.workspaceRoot()
	if err != nil {
		return err
	}
	root, err := workspace.EnsureAt(base)
	if err != nil {
		return err
	}
	var errs []error
	for i, doc := range docs {
		id, err := db.SaveReport(workspace.DBPath(root), db.Source{Path: doc.SourcePath, SHA256: doc.SHA256}, results[i].Report)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", doc.SourcePath, err))
			continue
		}
		archive, err := workspace.ArchiveReport(root, doc.Title, results[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", doc.SourcePath, err))
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved %s as %s (%s)\n", doc.SourcePath, id, archive.ReportPath)
	}
	return errors.Join(errs...)
}
