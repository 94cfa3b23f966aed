// Package types holds the identifiers and value types shared by the scoring
// packages. It sits at the bottom of the import graph so config, heuristics
// and aidetect can all depend on it without cycles.
package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// Key identifies one heuristic. Weights and threshold bands are looked up by Key.
type Key string

const (
	KeyTTR                     Key = "ttr"
	KeyAvgWordLength           Key = "avg_word_length"
	KeyFleschReadingEase       Key = "flesch_reading_ease"
	KeyGunningFog              Key = "gunning_fog"
	KeyAvgSentenceLength       Key = "avg_sentence_length"
	KeySentenceLengthVariance  Key = "sentence_length_variance"
	KeyParagraphLengthVariance Key = "paragraph_length_variance"
	KeyDeclarativeRatio        Key = "declarative_ratio"
	KeyQuestionRatio           Key = "question_ratio"
	KeyExclamationRatio        Key = "exclamation_ratio"
	KeyWordRepetition          Key = "word_repetition"
	KeyBigramRepetition        Key = "bigram_repetition"
	KeyTrigramRepetition       Key = "trigram_repetition"
	KeySentenceStartDiversity  Key = "sentence_start_diversity"
	KeyTransitionWordRatio     Key = "transition_word_ratio"
	KeyPassiveVoiceRatio       Key = "passive_voice_ratio"
	KeyModalVerbRatio          Key = "modal_verb_ratio"
	KeyPersonalPronounRatio    Key = "personal_pronoun_ratio"
	KeyContractionRatio        Key = "contraction_ratio"
	KeyHedgeWordRatio          Key = "hedge_word_ratio"
	KeyBoosterWordRatio        Key = "booster_word_ratio"
	KeyNominalizationRatio     Key = "nominalization_ratio"
	KeyCommonWordRatio         Key = "common_word_ratio"
	KeyPredictabilityProxy     Key = "predictability_proxy"
	KeyAvgParagraphLength      Key = "avg_paragraph_length"
	KeyListUsage               Key = "list_usage"
	KeyQuoteUsage              Key = "quote_usage"
)

var allKeys = []Key{
	KeyTTR, KeyAvgWordLength, KeyFleschReadingEase, KeyGunningFog,
	KeyAvgSentenceLength, KeySentenceLengthVariance, KeyParagraphLengthVariance,
	KeyDeclarativeRatio, KeyQuestionRatio, KeyExclamationRatio,
	KeyWordRepetition, KeyBigramRepetition, KeyTrigramRepetition, KeySentenceStartDiversity,
	KeyTransitionWordRatio, KeyPassiveVoiceRatio, KeyModalVerbRatio, KeyPersonalPronounRatio,
	KeyContractionRatio, KeyHedgeWordRatio, KeyBoosterWordRatio, KeyNominalizationRatio,
	KeyCommonWordRatio, KeyPredictabilityProxy,
	KeyAvgParagraphLength, KeyListUsage, KeyQuoteUsage,
}

// AllKeys returns every known heuristic key in registry order.
func AllKeys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys)
	return out
}

// ParseKey returns the Key named by s, or an error if s is not a known heuristic.
func ParseKey(s string) (Key, error) {
	for _, k := range allKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown heuristic key %q", s)
}

// Interpretation is the qualitative lean of a single result.
type Interpretation string

const (
	Human   Interpretation = "human"
	AI      Interpretation = "ai"
	Neutral Interpretation = "neutral"
)

// Category is the position of a raw value relative to a Band.
type Category string

const (
	Low    Category = "low"
	Medium Category = "medium"
	High   Category = "high"
)

// Band is a {low, high} threshold pair for a heuristic's raw value.
type Band struct {
	Low  float64 `mapstructure:"low" yaml:"low" json:"low"`
	High float64 `mapstructure:"high" yaml:"high" json:"high"`
}

// Result is the output of one heuristic.
//
// Score is always within [0, 100]. Value is NaN only for a skipped
// heuristic, in which case Score is 50.
type Result struct {
	Key            Key            `json:"key" yaml:"key"`
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description" yaml:"description"`
	Value          float64        `json:"value" yaml:"value"`
	Score          float64        `json:"score" yaml:"score"`
	Interpretation Interpretation `json:"interpretation" yaml:"interpretation"`
	Skipped        bool           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Valid reports whether r may take part in aggregation.
func (r Result) Valid() bool {
	return !math.IsNaN(r.Score) && !math.IsInf(r.Score, 0)
}

// MarshalJSON encodes a NaN value as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		Value *float64 `json:"value"`
	}{plain: plain(r)}
	if !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0) {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}
