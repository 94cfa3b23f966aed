package heuristics

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"ai_text_analyzer/internal/normalize"
	"ai_text_analyzer/internal/textstat"
	"ai_text_analyzer/internal/types"
)

var ttr = Definition{
	Key:         types.KeyTTR,
	Name:        "Vocabulary Richness (TTR)",
	Description: "Type-token ratio (unique words / total words). Low lexical diversity (below ~0.4) is associated with some AI output.",
	Range:       normalize.Range{Min: 0.3, Max: 0.7, Invert: true},
	Precision:   3,
	Measure: func(s *Sample) (float64, error) {
		if s.WordCount() == 0 {
			return 0, ErrInsufficientText
		}
		return float64(len(s.freq)) / float64(s.WordCount()), nil
	},
}

var avgWordLength = Definition{
	Key:         types.KeyAvgWordLength,
	Name:        "Average Word Length",
	Description: "Mean characters per word. Longer words (above ~5.5) lean slightly human, shorter (below ~4.0) slightly AI.",
	Range:       normalize.Range{Min: 3.5, Max: 6.0, Invert: true},
	Precision:   2,
	Measure: func(s *Sample) (float64, error) {
		if s.WordCount() == 0 {
			return 0, ErrInsufficientText
		}
		total := 0
		for _, w := range s.Text.Words {
			total += utf8.RuneCountInString(w)
		}
		return float64(total) / float64(s.WordCount()), nil
	},
}

func categoryRatio(key types.Key, name, description string, set func(*Sample) map[string]struct{}, r normalize.Range) Definition {
	return Definition{
		Key:         key,
		Name:        name,
		Description: description,
		Range:       r,
		Precision:   4,
		Measure: func(s *Sample) (float64, error) {
			if s.WordCount() == 0 {
				return 0, ErrInsufficientText
			}
			words := set(s)
			n := 0
			for _, w := range s.Text.Words {
				if _, ok := words[w]; ok {
					n++
				}
			}
			return float64(n) / float64(s.WordCount()), nil
		},
	}
}

var contractionPattern = regexp.MustCompile(`(?i)\b(i'm|i've|i'll|i'd|you're|you've|you'll|you'd|he's|he'll|he'd|she's|she'll|she'd|it's|it'll|it'd|we're|we've|we'll|we'd|they're|they've|they'll|they'd|can't|won't|shan't|shouldn't|wouldn't|couldn't|mustn't|isn't|aren't|wasn't|weren't|hasn't|haven't|hadn't|doesn't|don't|didn't)\b`)

var contractionRatio = Definition{
	Key:         types.KeyContractionRatio,
	Name:        "Contraction Ratio",
	Description: "Contractions (don't, it's) per word, matched on the raw text. Above ~2% is typical of informal human writing.",
	Range:       normalize.Range{Min: 0, Max: 0.05, Invert: true},
	Precision:   4,
	Measure: func(s *Sample) (float64, error) {
		if s.WordCount() == 0 || s.Text.Raw == "" {
			return 0, ErrInsufficientText
		}
		raw := strings.ReplaceAll(s.Text.Raw, "’", "'")
		n := len(contractionPattern.FindAllStringIndex(raw, -1))
		return float64(n) / float64(s.WordCount()), nil
	},
}

var nominalizationRatio = Definition{
	Key:         types.KeyNominalizationRatio,
	Name:        "Nominalization Ratio (Approx.)",
	Description: "Share of words longer than five letters ending in a nominalizing suffix (-tion, -ment, -ness). Above ~10% is typical of formal, abstract text.",
	Range:       normalize.Range{Min: 0, Max: 0.1},
	Precision:   4,
	Measure: func(s *Sample) (float64, error) {
		if s.WordCount() == 0 {
			return 0, ErrInsufficientText
		}
		n := 0
		for _, w := range s.Text.Words {
			if utf8.RuneCountInString(w) <= 5 {
				continue
			}
			for _, suf := range s.suffixes {
				if strings.HasSuffix(w, suf) {
					n++
					break
				}
			}
		}
		return float64(n) / float64(s.WordCount()), nil
	},
}

var wordRepetition = Definition{
	Key:         types.KeyWordRepetition,
	Name:        "Word Repetition Score",
	Description: "Combined relative frequency of the five most repeated content words. High repetition (above ~5%) can indicate AI.",
	Range:       normalize.Range{Min: 0, Max: 0.1},
	Precision:   4,
	Measure: func(s *Sample) (float64, error) {
		if s.WordCount() < 10 {
			return 0, ErrInsufficientText
		}
		top := textstat.TopN(s.freq, 5, func(w string) bool {
			_, stop := s.common[w]
			return !stop && utf8.RuneCountInString(w) > 2
		})
		sum := 0.0
		for _, c := range top {
			sum += float64(c.Count) / float64(s.WordCount())
		}
		return sum, nil
	},
}

func phraseRepetition(key types.Key, n int) Definition {
	names := map[int]string{2: "2-Gram Phrase Repetition", 3: "3-Gram Phrase Repetition"}
	return Definition{
		Key:         key,
		Name:        names[n],
		Description: "Excess occurrences of repeated word sequences relative to all sequences of the same length. High repetition (above ~3%) can indicate AI.",
		Range:       normalize.Range{Min: 0, Max: 0.2},
		Precision:   4,
		Measure: func(s *Sample) (float64, error) {
			if s.WordCount() < n*2 {
				return 0, ErrInsufficientText
			}
			grams := textstat.NGrams(s.Text.Words, n)
			if len(grams) == 0 {
				return 0, ErrInsufficientText
			}
			excess := 0
			for _, c := range textstat.Frequency(grams) {
				if c > 1 {
					excess += c - 1
				}
			}
			return float64(excess) / float64(len(grams)), nil
		},
	}
}

// predictabilityProxy averages the log2 of Laplace-smoothed bigram
// probabilities estimated from the text itself. It is not a language-model
// perplexity.
var predictabilityProxy = Definition{
	Key:         types.KeyPredictabilityProxy,
	Name:        "Predictability Proxy (Simplified)",
	Description: "Average log2 probability of each word pair using the text's own word and pair counts. Values closer to zero mean more predictable text. Not a true perplexity.",
	Range:       normalize.Range{Min: -15, Max: -5},
	Precision:   3,
	Measure: func(s *Sample) (float64, error) {
		words := s.Text.Words
		if len(words) < 10 {
			return 0, ErrInsufficientText
		}
		pairs := textstat.Frequency(textstat.NGrams(words, 2))
		vocab := float64(len(s.freq))
		total := 0.0
		n := 0
		for i := 0; i+1 < len(words); i++ {
			unigram := s.freq[words[i]]
			if unigram == 0 {
				unigram = 1
			}
			p := float64(pairs[words[i]+" "+words[i+1]]+1) / (float64(unigram) + vocab)
			if p > 0 {
				total += math.Log2(p)
				n++
			}
		}
		if n == 0 {
			return 0, ErrInsufficientText
		}
		return total / float64(n), nil
	},
}
