package heuristics

import (
	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/segment"
	"ai_text_analyzer/internal/textstat"
)

// Sample is the read-only input shared by every heuristic in one run.
// Everything is computed up front so heuristics may run concurrently.
type Sample struct {
	Text *segment.Text

	freq            map[string]int
	sentenceWords   [][]string
	paragraphCounts []float64

	transitions map[string]struct{}
	modals      map[string]struct{}
	pronouns    map[string]struct{}
	hedges      map[string]struct{}
	boosters    map[string]struct{}
	common      map[string]struct{}
	suffixes    []string
}

func NewSample(text *segment.Text, lex config.Lexicon) *Sample {
	s := &Sample{
		Text:        text,
		freq:        textstat.Frequency(text.Words),
		transitions: wordSet(lex.Transitions),
		modals:      wordSet(lex.Modals),
		pronouns:    wordSet(lex.Pronouns),
		hedges:      wordSet(lex.Hedges),
		boosters:    wordSet(lex.Boosters),
		common:      wordSet(lex.Common),
		suffixes:    lex.NominalSuffixes,
	}
	s.sentenceWords = make([][]string, len(text.Sentences))
	for i, sent := range text.Sentences {
		s.sentenceWords[i] = segment.Words(sent)
	}
	s.paragraphCounts = make([]float64, len(text.Paragraphs))
	for i, p := range text.Paragraphs {
		s.paragraphCounts[i] = float64(len(segment.Words(p)))
	}
	return s
}

func (s *Sample) WordCount() int      { return len(s.Text.Words) }
func (s *Sample) SentenceCount() int  { return len(s.Text.Sentences) }
func (s *Sample) ParagraphCount() int { return len(s.Text.Paragraphs) }

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
