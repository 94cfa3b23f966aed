package heuristics

import (
	"ai_text_analyzer/internal/normalize"
	"ai_text_analyzer/internal/textstat"
	"ai_text_analyzer/internal/types"
)

var fleschReadingEase = Definition{
	Key:         types.KeyFleschReadingEase,
	Name:        "Flesch Reading Ease",
	Description: "206.835 - 1.015*(words/sentences) - 84.6*(syllables/words). Very easy text (above ~70) can correlate with simpler AI output; difficult text (below ~50) leans human.",
	Range:       normalize.Range{Min: 0, Max: 100},
	Precision:   2,
	Measure: func(s *Sample) (float64, error) {
		words, sentences := s.WordCount(), s.SentenceCount()
		syllables := 0
		for _, w := range s.Text.Words {
			syllables += textstat.Syllables(w)
		}
		if words == 0 || sentences == 0 || syllables == 0 {
			return 0, ErrInsufficientText
		}
		return 206.835 -
			1.015*float64(words)/float64(sentences) -
			84.6*float64(syllables)/float64(words), nil
	},
}

// gunningFog treats simpler text (a lower index) as leaning AI.
var gunningFog = Definition{
	Key:         types.KeyGunningFog,
	Name:        "Gunning Fog Index",
	Description: "0.4*((words/sentences) + 100*(complex words/words)). Lower scores (below ~10, simpler text) lean AI under this rule; higher scores (above ~15) lean human.",
	Range:       normalize.Range{Min: 5, Max: 20, Invert: true},
	Precision:   2,
	Measure: func(s *Sample) (float64, error) {
		words, sentences := s.WordCount(), s.SentenceCount()
		if words == 0 || sentences == 0 {
			return 0, ErrInsufficientText
		}
		complexWords := 0
		for _, w := range s.Text.Words {
			if textstat.IsComplex(w) {
				complexWords++
			}
		}
		avgSentence := float64(words) / float64(sentences)
		percentComplex := float64(complexWords) / float64(words) * 100
		return 0.4 * (avgSentence + percentComplex), nil
	},
}
