package heuristics

import (
	"regexp"
	"strings"

	"ai_text_analyzer/internal/normalize"
	"ai_text_analyzer/internal/textstat"
	"ai_text_analyzer/internal/types"
)

var avgSentenceLength = Definition{
	Key:         types.KeyAvgSentenceLength,
	Name:        "Average Sentence Length",
	Description: "Mean words per sentence. Moderate lengths (15-25 words) are common in AI text.",
	Range:       normalize.Range{Min: 10, Max: 30},
	Precision:   2,
	Measure: func(s *Sample) (float64, error) {
		if s.SentenceCount() == 0 {
			return 0, ErrInsufficientText
		}
		return float64(s.WordCount()) / float64(s.SentenceCount()), nil
	},
}

var sentenceLengthVariance = Definition{
	Key:         types.KeySentenceLengthVariance,
	Name:        "Sentence Length Variance ('Burstiness')",
	Description: "Standard deviation of sentence lengths in words. High variation (above ~15) is characteristic of human writing; low (below ~5) may suggest AI.",
	Range:       normalize.Range{Min: 2, Max: 20, Invert: true},
	Precision:   2,
	Measure: func(s *Sample) (float64, error) {
		if s.SentenceCount() < 2 {
			return 0, ErrInsufficientText
		}
		lengths := make([]float64, len(s.sentenceWords))
		for i, words := range s.sentenceWords {
			lengths[i] = float64(len(words))
		}
		return textstat.StdDev(lengths), nil
	},
}

var paragraphLengthVariance = Definition{
	Key:                types.KeyParagraphLengthVariance,
	Name:               "Paragraph Length Variance",
	Description:        "Standard deviation of paragraph lengths in words, using blank-line splits. Higher variation may indicate human writing.",
	Range:              normalize.Range{Min: 10, Max: 100, Invert: true},
	Precision:          2,
	ParagraphDependent: true,
	Measure: func(s *Sample) (float64, error) {
		if s.ParagraphCount() < 2 {
			return 0, ErrInsufficientText
		}
		return textstat.StdDev(s.paragraphCounts), nil
	},
}

var avgParagraphLength = Definition{
	Key:                types.KeyAvgParagraphLength,
	Name:               "Average Paragraph Length",
	Description:        "Mean words per blank-line separated paragraph.",
	Range:              normalize.Range{Min: 30, Max: 250},
	Precision:          1,
	ParagraphDependent: true,
	Measure: func(s *Sample) (float64, error) {
		if s.ParagraphCount() == 0 {
			return 0, ErrInsufficientText
		}
		return float64(s.WordCount()) / float64(s.ParagraphCount()), nil
	},
}

func endingRatio(s *Sample, match func(string) bool) (float64, error) {
	if s.SentenceCount() == 0 {
		return 0, ErrInsufficientText
	}
	n := 0
	for _, sent := range s.Text.Sentences {
		if match(strings.TrimSpace(sent)) {
			n++
		}
	}
	return float64(n) / float64(s.SentenceCount()), nil
}

var declarativeRatio = Definition{
	Key:         types.KeyDeclarativeRatio,
	Name:        "Declarative Sentence Ratio (Approx.)",
	Description: "Share of sentences ending with a single period. A ratio near 100% may lean AI.",
	Range:       normalize.Range{Min: 0.5, Max: 1.0},
	Precision:   4,
	Measure: func(s *Sample) (float64, error) {
		return endingRatio(s, func(sent string) bool {
			return strings.HasSuffix(sent, ".") && !strings.HasSuffix(sent, "..")
		})
	},
}

var questionRatio = Definition{
	Key:         types.KeyQuestionRatio,
	Name:        "Question Mark Ratio",
	Description: "Share of sentences ending with a question mark. A higher share leans human.",
	Range:       normalize.Range{Min: 0, Max: 0.1, Invert: true},
	Precision:   4,
	Measure: func(s *Sample) (float64, error) {
		return endingRatio(s, func(sent string) bool { return strings.HasSuffix(sent, "?") })
	},
}

var exclamationRatio = Definition{
	Key:         types.KeyExclamationRatio,
	Name:        "Exclamation Mark Ratio",
	Description: "Share of sentences ending with an exclamation mark. A higher share leans human.",
	Range:       normalize.Range{Min: 0, Max: 0.1, Invert: true},
	Precision:   4,
	Measure: func(s *Sample) (float64, error) {
		return endingRatio(s, func(sent string) bool { return strings.HasSuffix(sent, "!") })
	},
}

var sentenceStartDiversity = Definition{
	Key:         types.KeySentenceStartDiversity,
	Name:        "Sentence Start Diversity",
	Description: "Unique first words across sentences divided by sentences. Little variety (below ~10%) suggests formulaic structure.",
	Range:       normalize.Range{Min: 0.1, Max: 0.8, Invert: true},
	Precision:   3,
	Measure: func(s *Sample) (float64, error) {
		if s.SentenceCount() < 5 {
			return 0, ErrInsufficientText
		}
		starters := map[string]struct{}{}
		total := 0
		for _, words := range s.sentenceWords {
			if len(words) == 0 {
				continue
			}
			starters[words[0]] = struct{}{}
			total++
		}
		if total == 0 {
			return 0, ErrInsufficientText
		}
		return float64(len(starters)) / float64(total), nil
	},
}

var (
	passivePattern = regexp.MustCompile(`(?i)\b(am|is|are|was|were|be|being|been)\s+\w+?([aeiou]d|ed|en|t|ne|wn)\b`)
	beVerbPattern  = regexp.MustCompile(`(?i)\b(am|is|are|was|were|be|being|been)\s+`)
)

var irregularParticiples = map[string]struct{}{
	"taken": {}, "given": {}, "made": {}, "seen": {}, "known": {}, "written": {},
	"found": {}, "brought": {}, "thought": {}, "caught": {}, "done": {},
}

// passiveVoiceRatio is a rough pattern match with many false positives and negatives.
var passiveVoiceRatio = Definition{
	Key:         types.KeyPassiveVoiceRatio,
	Name:        "Passive Voice Ratio (Approx.)",
	Description: "Estimated share of sentences in passive voice (was taken, is known). Above ~15% may correlate with formal AI text. Detection is approximate.",
	Range:       normalize.Range{Min: 0, Max: 0.25},
	Precision:   3,
	Measure: func(s *Sample) (float64, error) {
		if s.SentenceCount() == 0 {
			return 0, ErrInsufficientText
		}
		n := 0
		for _, sent := range s.Text.Sentences {
			if isPassive(sent) {
				n++
			}
		}
		return float64(n) / float64(s.SentenceCount()), nil
	},
}

func isPassive(sentence string) bool {
	if passivePattern.MatchString(sentence) {
		return true
	}
	loc := beVerbPattern.FindStringIndex(sentence)
	if loc == nil {
		return false
	}
	rest := strings.Fields(sentence[loc[1]:])
	if len(rest) == 0 {
		return false
	}
	next := strings.TrimRight(strings.ToLower(rest[0]), ".,!?;:")
	_, ok := irregularParticiples[next]
	return ok
}

var listMarker = regexp.MustCompile(`^\s*([*•-])\s+|^\s*(\d+\.)\s+`)

var listUsage = Definition{
	Key:         types.KeyListUsage,
	Name:        "List Usage Score",
	Description: "Paragraphs whose first line starts with a bullet or number marker. Presence leans human.",
	Range:       normalize.Range{Min: 0, Max: 1, Invert: true},
	Measure: func(s *Sample) (float64, error) {
		if s.ParagraphCount() == 0 {
			return 0, ErrInsufficientText
		}
		n := 0
		for _, p := range s.Text.Paragraphs {
			first, _, _ := strings.Cut(strings.ReplaceAll(p, "\r", "\n"), "\n")
			if listMarker.MatchString(first) {
				n++
			}
		}
		return float64(n), nil
	},
	Scale: func(count float64) float64 {
		switch {
		case count > 2:
			return 1
		case count > 0:
			return 0.5
		}
		return 0
	},
}

var quoteUsage = Definition{
	Key:         types.KeyQuoteUsage,
	Name:        "Quotation Mark Usage",
	Description: "Count of double quotation marks. Direct quotes are more often human.",
	Range:       normalize.Range{Min: 0, Max: 1, Invert: true},
	Measure: func(s *Sample) (float64, error) {
		if s.Text.Raw == "" {
			return 0, ErrInsufficientText
		}
		return float64(strings.Count(s.Text.Raw, `"`) + strings.Count(s.Text.Raw, "“") + strings.Count(s.Text.Raw, "”")), nil
	},
	Scale: func(count float64) float64 {
		if count >= 2 {
			return 1
		}
		return 0
	},
}
