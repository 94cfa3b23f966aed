// Package segment splits raw text into words, sentences and paragraphs.
package segment

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text is the segmented view of one input. It is never mutated after Segment returns.
type Text struct {
	Raw        string
	Words      []string
	Sentences  []string
	Paragraphs []string
}

// Segment normalizes raw to NFC and splits it with each independent rule.
func Segment(raw string) *Text {
	raw = norm.NFC.String(raw)
	return &Text{
		Raw:        raw,
		Words:      Words(raw),
		Sentences:  Sentences(raw),
		Paragraphs: Paragraphs(raw),
	}
}

const strippedPunct = ".,!?;:\"“”‘’()[]{}"

// Words lowercases text, drops punctuation and splits on whitespace.
// Apostrophes are kept, so contractions stay one token.
func Words(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedPunct, r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)
	return strings.Fields(cleaned)
}

var paragraphBreak = regexp.MustCompile(`[\r\n]\s*[\r\n]+`)

// Paragraphs splits on blank lines. A single line break never starts a new paragraph.
func Paragraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := paragraphBreak.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
