// Package heuristics is the library of independent text measurements.
// Each Definition turns a Sample into one raw value, which Evaluate maps to
// a 0-100 lean score (above 50 leans AI) and an interpretation.
package heuristics

import (
	"errors"
	"fmt"
	"math"

	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/normalize"
	"ai_text_analyzer/internal/textstat"
	"ai_text_analyzer/internal/types"
)

// ErrInsufficientText means the input is too degenerate for a measurement.
// Evaluate turns it into a neutral result instead of failing.
var ErrInsufficientText = errors.New("insufficient text")

// SkippedDescription replaces the description of a heuristic that was not run.
const SkippedDescription = "Skipped due to suspected paragraph splitting failure."

type Definition struct {
	Key         types.Key
	Name        string
	Description string
	// Range is the expected domain of the (scaled) value. Invert means a
	// higher value leans human.
	Range normalize.Range
	// Precision is the number of decimals kept in the reported value.
	Precision int
	// ParagraphDependent heuristics are skipped when paragraph splitting looks broken.
	ParagraphDependent bool
	Measure            func(*Sample) (float64, error)
	// Scale optionally maps the raw value to the input of Range, for
	// presence detectors whose score is coarser than their value.
	Scale func(float64) float64
}

// Evaluate runs the measurement and builds the result. Errors other than
// ErrInsufficientText are returned to the caller.
func (d Definition) Evaluate(s *Sample, cfg config.Config) (types.Result, error) {
	value, err := d.Measure(s)
	if errors.Is(err, ErrInsufficientText) {
		return d.neutral(), nil
	}
	if err != nil {
		return types.Result{}, fmt.Errorf("%s: %w", d.Key, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return types.Result{}, fmt.Errorf("%s: measurement is not finite", d.Key)
	}

	input := value
	if d.Scale != nil {
		input = d.Scale(value)
	}
	interp := types.Neutral
	if band, ok := cfg.Band(d.Key); ok {
		interp = d.interpret(normalize.Categorize(value, band))
	}
	return types.Result{
		Key:            d.Key,
		Name:           d.Name,
		Description:    d.Description,
		Value:          textstat.Round(value, d.Precision),
		Score:          d.Range.Apply(input),
		Interpretation: interp,
	}, nil
}

// Skipped is the placeholder reported instead of running d.
func (d Definition) Skipped() types.Result {
	return types.Result{
		Key:            d.Key,
		Name:           d.Name,
		Description:    SkippedDescription,
		Value:          math.NaN(),
		Score:          normalize.Neutral,
		Interpretation: types.Neutral,
		Skipped:        true,
	}
}

func (d Definition) neutral() types.Result {
	return types.Result{
		Key:            d.Key,
		Name:           d.Name,
		Description:    d.Description,
		Value:          0,
		Score:          normalize.Neutral,
		Interpretation: types.Neutral,
	}
}

// interpret follows the normalization direction: on a direct range a high
// value leans AI, on an inverted range it leans human.
func (d Definition) interpret(c types.Category) types.Interpretation {
	switch c {
	case types.Low:
		if d.Range.Invert {
			return types.AI
		}
		return types.Human
	case types.High:
		if d.Range.Invert {
			return types.Human
		}
		return types.AI
	}
	return types.Neutral
}

var registry = []Definition{
	ttr,
	avgWordLength,
	fleschReadingEase,
	gunningFog,
	avgSentenceLength,
	sentenceLengthVariance,
	paragraphLengthVariance,
	declarativeRatio,
	questionRatio,
	exclamationRatio,
	wordRepetition,
	phraseRepetition(types.KeyBigramRepetition, 2),
	phraseRepetition(types.KeyTrigramRepetition, 3),
	sentenceStartDiversity,
	categoryRatio(types.KeyTransitionWordRatio, "Transition Word Ratio",
		"Share of words that are transitions (furthermore, moreover, however). Heavy use of connectors is typical of generated prose.",
		func(s *Sample) map[string]struct{} { return s.transitions }, normalize.Range{Min: 0, Max: 0.05}),
	passiveVoiceRatio,
	categoryRatio(types.KeyModalVerbRatio, "Modal Verb Ratio",
		"Share of words that are modal verbs (can, should, would).",
		func(s *Sample) map[string]struct{} { return s.modals }, normalize.Range{Min: 0, Max: 0.05}),
	categoryRatio(types.KeyPersonalPronounRatio, "Personal Pronoun Ratio",
		"Share of first and second person pronouns. Frequent I/we/you leans human.",
		func(s *Sample) map[string]struct{} { return s.pronouns }, normalize.Range{Min: 0, Max: 0.08, Invert: true}),
	contractionRatio,
	categoryRatio(types.KeyHedgeWordRatio, "Hedging Word Ratio",
		"Share of hedging words (perhaps, likely, seems).",
		func(s *Sample) map[string]struct{} { return s.hedges }, normalize.Range{Min: 0, Max: 0.05}),
	categoryRatio(types.KeyBoosterWordRatio, "Booster Word Ratio",
		"Share of booster words (very, clearly, certainly).",
		func(s *Sample) map[string]struct{} { return s.boosters }, normalize.Range{Min: 0, Max: 0.04}),
	nominalizationRatio,
	categoryRatio(types.KeyCommonWordRatio, "Common Word Ratio",
		"Share of very common function words. A high share suggests plain, predictable wording.",
		func(s *Sample) map[string]struct{} { return s.common }, normalize.Range{Min: 0.3, Max: 0.6}),
	predictabilityProxy,
	avgParagraphLength,
	listUsage,
	quoteUsage,
}

// All returns every heuristic in registry order.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds the heuristic registered under k.
func Lookup(k types.Key) (Definition, bool) {
	for _, d := range registry {
		if d.Key == k {
			return d, true
		}
	}
	return Definition{}, false
}
