// Package aidetect runs the heuristic library over a text and folds the
// results into one AI-likelihood score with a confidence estimate.
package aidetect

import (
	"fmt"
	"log/slog"
	"time"

	"ai_text_analyzer/internal/chunk"
	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/heuristics"
	"ai_text_analyzer/internal/normalize"
	"ai_text_analyzer/internal/pipeline"
	"ai_text_analyzer/internal/segment"
	"ai_text_analyzer/internal/textstat"
	"ai_text_analyzer/internal/types"
)

type Input struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
}

type ErrorEntry struct {
	Stage     string `json:"stage" yaml:"stage"`
	Message   string `json:"message" yaml:"message"`
	Type      string `json:"type" yaml:"type"`
	Retryable bool   `json:"retryable" yaml:"retryable"`
}

type SpanTrace struct {
	Name       string `json:"name" yaml:"name"`
	DurationMs int64  `json:"duration_ms" yaml:"duration_ms"`
	Status     string `json:"status" yaml:"status"`
}

// Report is the outcome of one Analyze call. When Error is set no analysis
// was performed: Message explains why and OverallScore is the neutral 50.
type Report struct {
	DocumentID               string         `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	Error                    bool           `json:"error" yaml:"error"`
	Message                  string         `json:"message,omitempty" yaml:"message,omitempty"`
	Results                  []types.Result `json:"results" yaml:"results"`
	OverallScore             float64        `json:"overall_score" yaml:"overall_score"`
	Verdict                  Verdict        `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Confidence               Confidence     `json:"confidence" yaml:"confidence"`
	WordCount                int            `json:"word_count" yaml:"word_count"`
	SentenceCount            int            `json:"sentence_count" yaml:"sentence_count"`
	ParagraphCount           int            `json:"paragraph_count" yaml:"paragraph_count"`
	ParagraphAnalysisSkipped bool           `json:"paragraph_analysis_skipped" yaml:"paragraph_analysis_skipped"`
	WeightApplied            float64        `json:"weight_applied" yaml:"weight_applied"`
	DurationMs               int64          `json:"duration_ms" yaml:"duration_ms"`
	Errors                   []ErrorEntry   `json:"errors" yaml:"errors"`
	Traces                   []SpanTrace    `json:"traces" yaml:"traces"`
}

// WindowReport is the analysis of one paragraph window of a longer document.
type WindowReport struct {
	Index     int    `json:"index" yaml:"index"`
	StartWord int    `json:"start_word" yaml:"start_word"`
	EndWord   int    `json:"end_word" yaml:"end_word"`
	Report    Report `json:"report" yaml:"report"`
}

type Analyzer struct {
	cfg    config.Config
	defs   []heuristics.Definition
	noise  Noise
	logger *slog.Logger
}

type Option func(*Analyzer)

func WithNoise(n Noise) Option {
	return func(a *Analyzer) { a.noise = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithDefinitions replaces the heuristic registry.
func WithDefinitions(defs []heuristics.Definition) Option {
	return func(a *Analyzer) { a.defs = defs }
}

// New validates cfg and builds an Analyzer. Invalid configuration is the
// only error it reports.
func New(cfg config.Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Analyzer{
		cfg:  cfg.Clone(),
		defs: heuristics.All(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.noise == nil {
		a.noise = NewRandomNoise(cfg.Seed)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a, nil
}

func (a *Analyzer) Config() config.Config { return a.cfg.Clone() }

// Analyze never fails: degenerate input yields an error report, a failing
// heuristic is dropped and recorded in Report.Errors.
func (a *Analyzer) Analyze(in Input) Report {
	startAll := time.Now()
	report := Report{
		DocumentID: in.DocumentID,
		Results:    []types.Result{},
		Errors:     []ErrorEntry{},
		Traces:     []SpanTrace{},
	}

	var sample *heuristics.Sample
	withSpan(&report, "segment", func() error {
		sample = heuristics.NewSample(segment.Segment(in.Text), a.cfg.Lexicon)
		return nil
	})
	report.WordCount = sample.WordCount()
	report.SentenceCount = sample.SentenceCount()
	report.ParagraphCount = sample.ParagraphCount()

	if report.WordCount < a.cfg.Limits.MinWords {
		report.Error = true
		report.Message = fmt.Sprintf("Text is too short (minimum %d words required). Analysis may be unreliable.", a.cfg.Limits.MinWords)
		report.OverallScore = normalize.Neutral
		report.Confidence = Confidence{Score: 0, Level: VeryLow}
		report.DurationMs = time.Since(startAll).Milliseconds()
		a.logger.Warn("text too short for analysis", "document_id", in.DocumentID, "words", report.WordCount, "min_words", a.cfg.Limits.MinWords)
		return report
	}

	a.logger.Info("analysis started", "document_id", in.DocumentID, "words", report.WordCount,
		"sentences", report.SentenceCount, "paragraphs", report.ParagraphCount)

	report.ParagraphAnalysisSkipped = paragraphsLookBroken(report.WordCount, report.ParagraphCount, report.SentenceCount, a.cfg.ParagraphCheck)
	if report.ParagraphAnalysisSkipped {
		a.logger.Warn("paragraph splitting looks broken, skipping paragraph heuristics",
			"document_id", in.DocumentID, "paragraphs", report.ParagraphCount,
			"avg_paragraph_words", float64(report.WordCount)/float64(max(1, report.ParagraphCount)))
	}

	withSpan(&report, "heuristics", func() error {
		report.Results = a.runHeuristics(&report, sample)
		if len(report.Results) == 0 {
			return fmt.Errorf("no heuristic produced a result")
		}
		return nil
	})

	var agg aggregation
	withSpan(&report, "aggregate", func() error {
		agg = aggregate(report.Results, a.cfg.Weight)
		if agg.Fallback {
			a.logger.Warn("no weight applied, using unweighted mean", "document_id", in.DocumentID, "results", len(report.Results))
		}
		jitter := a.noise.Jitter(a.cfg.RandomnessFactor * 100)
		report.OverallScore = textstat.Clamp(agg.Score+jitter, 0, 100)
		report.WeightApplied = agg.WeightApplied
		return nil
	})

	withSpan(&report, "confidence", func() error {
		report.Confidence = EstimateConfidence(report.OverallScore, report.WordCount, report.ParagraphAnalysisSkipped)
		report.Verdict = VerdictFor(report.OverallScore)
		return nil
	})

	report.DurationMs = time.Since(startAll).Milliseconds()
	a.logger.Info("analysis completed", "document_id", in.DocumentID, "overall_score", report.OverallScore,
		"confidence", report.Confidence.Score, "level", report.Confidence.Level,
		"paragraphs_skipped", report.ParagraphAnalysisSkipped, "errors", len(report.Errors),
		"duration_ms", report.DurationMs)
	return report
}

// AnalyzeWindows splits a long document into paragraph windows of about
// windowWords words and analyzes each on its own.
func (a *Analyzer) AnalyzeWindows(in Input, windowWords int) []WindowReport {
	windows := chunk.Paragraphs(in.Text, windowWords)
	out := make([]WindowReport, len(windows))
	pipeline.AnalyzeWindows(windows, a.workers(), func(w chunk.Window) error {
		out[w.Index] = WindowReport{
			Index:     w.Index,
			StartWord: w.StartWord,
			EndWord:   w.EndWord,
			Report: a.Analyze(Input{
				DocumentID: fmt.Sprintf("%s#w-%03d", in.DocumentID, w.Index),
				Text:       w.Text,
			}),
		}
		return nil
	})
	return out
}

// paragraphsLookBroken flags input whose paragraphs are implausibly long
// and few, or a single block holding many sentences.
func paragraphsLookBroken(words, paragraphs, sentences int, pc config.ParagraphCheck) bool {
	if paragraphs == 0 {
		return false
	}
	avg := float64(words) / float64(paragraphs)
	if avg > float64(pc.MaxAvgWords) && paragraphs <= pc.MaxCount {
		return true
	}
	return pc.SingleBlockSentences > 0 && paragraphs == 1 && sentences > pc.SingleBlockSentences
}

type outcome struct {
	result types.Result
	err    error
	ok     bool
}

func (a *Analyzer) runHeuristics(report *Report, sample *heuristics.Sample) []types.Result {
	outcomes := make([]outcome, len(a.defs))
	run := func(i int) error {
		outcomes[i] = a.runOne(a.defs[i], sample, report.ParagraphAnalysisSkipped)
		return nil
	}
	if a.cfg.Parallel {
		pipeline.Run(len(a.defs), a.workers(), run)
	} else {
		for i := range a.defs {
			_ = run(i)
		}
	}

	results := make([]types.Result, 0, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			key := a.defs[i].Key
			a.logger.Error("heuristic failed", "heuristic", key, "error", o.err)
			report.Errors = append(report.Errors, ErrorEntry{
				Stage:     "heuristic:" + string(key),
				Message:   o.err.Error(),
				Type:      "exception",
				Retryable: false,
			})
			continue
		}
		if o.ok {
			results = append(results, o.result)
		}
	}
	return results
}

// runOne isolates one heuristic: a panic is recovered into an error.
func (a *Analyzer) runOne(d heuristics.Definition, sample *heuristics.Sample, paragraphsSkipped bool) (out outcome) {
	if paragraphsSkipped && d.ParagraphDependent {
		return outcome{result: d.Skipped(), ok: true}
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("%s: panic: %v", d.Key, r)}
		}
		a.logger.Debug("heuristic finished", "heuristic", d.Key, "duration", time.Since(start), "ok", out.ok)
	}()
	if d.Measure == nil {
		return outcome{err: fmt.Errorf("%s: no measurement", d.Key)}
	}
	res, err := d.Evaluate(sample, a.cfg)
	if err != nil {
		return outcome{err: err}
	}
	if !res.Valid() {
		return outcome{err: fmt.Errorf("%s: invalid score", d.Key)}
	}
	return outcome{result: res, ok: true}
}

func (a *Analyzer) workers() int {
	return a.cfg.Workers
}

func withSpan(report *Report, name string, fn func() error) {
	start := time.Now()
	status := "ok"
	if err := fn(); err != nil {
		status = "error"
		report.Errors = append(report.Errors, ErrorEntry{
			Stage:     name,
			Message:   err.Error(),
			Type:      "exception",
			Retryable: false,
		})
	}
	report.Traces = append(report.Traces, SpanTrace{
		Name:       name,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     status,
	})
}
