package aidetect

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/heuristics"
	"ai_text_analyzer/internal/types"
)

const scenarioA = "I can't find my old keys.\n\n" +
	"Yesterday we searched every drawer, closet, and pocket before finally giving up around midnight. " +
	"Maybe our dog buried them somewhere out back? She digs holes near the fence whenever nobody watches her closely enough.\n\n" +
	"Mom never believed that theory. Tomorrow I'll borrow a metal detector from Jake, then sweep each muddy flower bed twice."

func scenarioB() string {
	return strings.TrimSpace(strings.Repeat("The quick brown fox jumps over lazy dogs. ", 40))
}

type fixedNoise float64

func (f fixedNoise) Jitter(float64) float64 { return float64(f) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAnalyzer(t *testing.T, cfg config.Config, opts ...Option) *Analyzer {
	t.Helper()
	opts = append([]Option{WithNoise(NoNoise{}), WithLogger(quietLogger())}, opts...)
	a, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}
	return a
}

func findResult(t *testing.T, report Report, k types.Key) types.Result {
	t.Helper()
	for _, r := range report.Results {
		if r.Key == k {
			return r
		}
	}
	t.Fatalf("result %s missing", k)
	return types.Result{}
}

func tokens(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("tok%03d", i)
	}
	return strings.Join(words, " ")
}

func TestScenarioHumanLeaning(t *testing.T) {
	report := newAnalyzer(t, config.Default()).Analyze(Input{DocumentID: "a", Text: scenarioA})
	if report.Error {
		t.Fatalf("unexpected error report: %s", report.Message)
	}
	if report.WordCount != 60 || report.ParagraphCount != 3 || report.SentenceCount != 6 {
		t.Fatalf("unexpected counts: words=%d sentences=%d paragraphs=%d", report.WordCount, report.SentenceCount, report.ParagraphCount)
	}
	if report.ParagraphAnalysisSkipped {
		t.Fatalf("paragraph analysis should not be skipped")
	}
	if report.OverallScore >= 50 {
		t.Fatalf("expected human-leaning score, got %.2f", report.OverallScore)
	}
	if len(report.Results) != len(heuristics.All()) {
		t.Fatalf("expected %d results, got %d", len(heuristics.All()), len(report.Results))
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", report.Errors)
	}
	if got := findResult(t, report, types.KeyContractionRatio); got.Interpretation != types.Human {
		t.Fatalf("expected contractions to lean human, got %s", got.Interpretation)
	}
}

func TestScenarioRepeatedSentence(t *testing.T) {
	report := newAnalyzer(t, config.Default()).Analyze(Input{Text: scenarioB()})
	if report.Error {
		t.Fatalf("unexpected error report: %s", report.Message)
	}
	if report.WordCount != 320 || report.ParagraphCount != 1 {
		t.Fatalf("unexpected counts: words=%d paragraphs=%d", report.WordCount, report.ParagraphCount)
	}
	for _, k := range []types.Key{types.KeyWordRepetition, types.KeyBigramRepetition, types.KeyTrigramRepetition} {
		if r := findResult(t, report, k); r.Score <= 70 {
			t.Fatalf("expected high %s score, got %.2f", k, r.Score)
		}
	}
	if !report.ParagraphAnalysisSkipped {
		t.Fatalf("expected paragraph analysis to be skipped")
	}
	if report.Confidence.Level != VeryLow {
		t.Fatalf("expected Very Low confidence, got %s", report.Confidence.Level)
	}
	pv := findResult(t, report, types.KeyParagraphLengthVariance)
	if !pv.Skipped || pv.Score != 50 || !math.IsNaN(pv.Value) {
		t.Fatalf("expected skipped paragraph variance placeholder, got %+v", pv)
	}
}

func TestParagraphSkipOnHugeBlocks(t *testing.T) {
	text := tokens(5000) + "\n\n" + tokens(5000)
	report := newAnalyzer(t, config.Default()).Analyze(Input{Text: text})
	if report.WordCount < 10000 || report.ParagraphCount != 2 {
		t.Fatalf("unexpected counts: words=%d paragraphs=%d", report.WordCount, report.ParagraphCount)
	}
	if !report.ParagraphAnalysisSkipped {
		t.Fatalf("expected paragraph analysis to be skipped")
	}
	if got := findResult(t, report, types.KeyParagraphLengthVariance).Score; got != 50 {
		t.Fatalf("expected paragraph variance score 50, got %.2f", got)
	}
	if got := findResult(t, report, types.KeyAvgParagraphLength); !got.Skipped {
		t.Fatalf("expected average paragraph length to be skipped")
	}
}

func TestSingleParagraphAtSentenceLimitIsAnalyzed(t *testing.T) {
	sentences := make([]string, 15)
	for i := range sentences {
		sentences[i] = fmt.Sprintf("Line tok%03d was written today.", i)
	}
	text := strings.Join(sentences, " ")
	report := newAnalyzer(t, config.Default()).Analyze(Input{Text: text})
	if report.ParagraphCount != 1 || report.SentenceCount != 15 {
		t.Fatalf("unexpected counts: sentences=%d paragraphs=%d", report.SentenceCount, report.ParagraphCount)
	}
	if report.ParagraphAnalysisSkipped {
		t.Fatalf("a single paragraph of 15 sentences should not be skipped")
	}
	if got := findResult(t, report, types.KeyAvgParagraphLength); got.Skipped {
		t.Fatalf("expected average paragraph length to run")
	}

	cfg := config.Default()
	cfg.ParagraphCheck.SingleBlockSentences = 0
	long := strings.TrimSpace(strings.Repeat(text+" ", 2))
	if newAnalyzer(t, cfg).Analyze(Input{Text: long}).ParagraphAnalysisSkipped {
		t.Fatalf("single-block check should be disabled at 0")
	}
}

func TestShortInputBoundary(t *testing.T) {
	a := newAnalyzer(t, config.Default())

	short := a.Analyze(Input{Text: tokens(49)})
	if !short.Error {
		t.Fatalf("expected error report for 49 words")
	}
	if short.Message != "Text is too short (minimum 50 words required). Analysis may be unreliable." {
		t.Fatalf("unexpected message: %q", short.Message)
	}
	if short.OverallScore != 50 || len(short.Results) != 0 {
		t.Fatalf("expected neutral empty report, got score %.2f with %d results", short.OverallScore, len(short.Results))
	}

	enough := a.Analyze(Input{Text: tokens(50)})
	if enough.Error {
		t.Fatalf("expected analysis for 50 words: %s", enough.Message)
	}
}

func TestFallbackToUnweightedMean(t *testing.T) {
	cfg := config.Default()
	cfg.Weights = map[string]float64{}
	report := newAnalyzer(t, cfg).Analyze(Input{Text: scenarioA})

	sum := 0.0
	for _, r := range report.Results {
		sum += r.Score
	}
	mean := sum / float64(len(report.Results))
	if math.Abs(report.OverallScore-mean) > 1e-9 {
		t.Fatalf("expected unweighted mean %.4f, got %.4f", mean, report.OverallScore)
	}
	if report.WeightApplied != 0 {
		t.Fatalf("expected no weight applied, got %.2f", report.WeightApplied)
	}
}

func TestScoreClampedUnderJitter(t *testing.T) {
	for _, n := range []fixedNoise{1000, -1000} {
		report := newAnalyzer(t, config.Default(), WithNoise(n)).Analyze(Input{Text: scenarioB()})
		if report.OverallScore < 0 || report.OverallScore > 100 {
			t.Fatalf("score escaped clamp: %.2f", report.OverallScore)
		}
		if n > 0 && report.OverallScore != 100 {
			t.Fatalf("expected 100, got %.2f", report.OverallScore)
		}
		if n < 0 && report.OverallScore != 0 {
			t.Fatalf("expected 0, got %.2f", report.OverallScore)
		}
	}
}

func TestHeuristicFailuresAreIsolated(t *testing.T) {
	ttr, _ := heuristics.Lookup(types.KeyTTR)
	panicky := heuristics.Definition{Key: types.KeyGunningFog, Name: "Panics", Measure: func(*heuristics.Sample) (float64, error) {
		panic("index out of range")
	}}
	failing := heuristics.Definition{Key: types.KeyFleschReadingEase, Name: "Fails", Measure: func(*heuristics.Sample) (float64, error) {
		return 0, errors.New("bad measurement")
	}}

	a := newAnalyzer(t, config.Default(), WithDefinitions([]heuristics.Definition{panicky, ttr, failing}))
	report := a.Analyze(Input{Text: scenarioA})
	if len(report.Results) != 1 || report.Results[0].Key != types.KeyTTR {
		t.Fatalf("expected only the ttr result, got %+v", report.Results)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("expected 2 error entries, got %+v", report.Errors)
	}
	if report.Errors[0].Stage != "heuristic:gunning_fog" || !strings.Contains(report.Errors[0].Message, "panic") {
		t.Fatalf("unexpected first error: %+v", report.Errors[0])
	}
	// ttr alone scores 0, which saturates below the band
	if report.OverallScore != 0 {
		t.Fatalf("expected score 0, got %.2f", report.OverallScore)
	}
}

func TestTotalFailureIsNeutral(t *testing.T) {
	broken := heuristics.Definition{Key: types.KeyTTR, Measure: func(*heuristics.Sample) (float64, error) {
		return 0, errors.New("nope")
	}}
	report := newAnalyzer(t, config.Default(), WithDefinitions([]heuristics.Definition{broken})).Analyze(Input{Text: scenarioA})
	if report.Error {
		t.Fatalf("total heuristic failure should not be an input error")
	}
	if report.OverallScore != 50 {
		t.Fatalf("expected neutral 50, got %.2f", report.OverallScore)
	}
	if report.Confidence.Score != 0 {
		t.Fatalf("expected zero confidence, got %.2f", report.Confidence.Score)
	}
	stages := map[string]bool{}
	for _, e := range report.Errors {
		stages[e.Stage] = true
	}
	if !stages["heuristic:ttr"] || !stages["heuristics"] {
		t.Fatalf("expected heuristic and stage errors, got %+v", report.Errors)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq := newAnalyzer(t, config.Default()).Analyze(Input{Text: scenarioA})

	cfg := config.Default()
	cfg.Parallel = true
	cfg.Workers = 4
	par := newAnalyzer(t, cfg).Analyze(Input{Text: scenarioA})

	if len(seq.Results) != len(par.Results) {
		t.Fatalf("result count differs: %d vs %d", len(seq.Results), len(par.Results))
	}
	for i := range seq.Results {
		if seq.Results[i] != par.Results[i] {
			t.Fatalf("result %d differs: %+v vs %+v", i, seq.Results[i], par.Results[i])
		}
	}
	if seq.OverallScore != par.OverallScore {
		t.Fatalf("score differs: %.4f vs %.4f", seq.OverallScore, par.OverallScore)
	}
}

func TestSeededJitterIsRepeatable(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 7
	run := func() float64 {
		a, err := New(cfg, WithLogger(quietLogger()))
		if err != nil {
			t.Fatalf("new analyzer: %v", err)
		}
		return a.Analyze(Input{Text: scenarioA}).OverallScore
	}
	first, second := run(), run()
	if first != second {
		t.Fatalf("expected identical seeded scores, got %.4f and %.4f", first, second)
	}
	base := newAnalyzer(t, config.Default()).Analyze(Input{Text: scenarioA}).OverallScore
	if math.Abs(first-base) > 5 {
		t.Fatalf("jitter exceeded 5 points: %.4f vs %.4f", first, base)
	}
}

func TestTracesRecorded(t *testing.T) {
	report := newAnalyzer(t, config.Default()).Analyze(Input{Text: scenarioA})
	want := []string{"segment", "heuristics", "aggregate", "confidence"}
	if len(report.Traces) != len(want) {
		t.Fatalf("expected %d traces, got %+v", len(want), report.Traces)
	}
	for i, name := range want {
		if report.Traces[i].Name != name || report.Traces[i].Status != "ok" {
			t.Fatalf("unexpected trace %d: %+v", i, report.Traces[i])
		}
	}
	if report.Verdict == "" {
		t.Fatalf("expected a verdict")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RandomnessFactor = 3
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestAnalyzeWindows(t *testing.T) {
	paras := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		paras = append(paras, scenarioA)
	}
	text := strings.Join(paras, "\n\n")
	windows := newAnalyzer(t, config.Default()).AnalyzeWindows(Input{DocumentID: "doc", Text: text}, 120)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	for i, w := range windows {
		if w.Index != i || w.Report.Error {
			t.Fatalf("unexpected window %d: %+v", i, w)
		}
		if w.Report.DocumentID != fmt.Sprintf("doc#w-%03d", i) {
			t.Fatalf("unexpected document id %q", w.Report.DocumentID)
		}
		if w.Report.WordCount != w.EndWord-w.StartWord {
			t.Fatalf("window %d word count %d does not match bounds %d-%d", i, w.Report.WordCount, w.StartWord, w.EndWord)
		}
	}
}
