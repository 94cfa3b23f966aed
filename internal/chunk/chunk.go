// Package chunk groups whole paragraphs into windows of roughly equal word count.
package chunk

import (
	"strings"

	"ai_text_analyzer/internal/segment"
)

type Window struct {
	Index     int
	StartWord int
	EndWord   int
	Text      string
}

// Paragraphs packs consecutive paragraphs into windows of at least
// windowWords words. A paragraph is never split, so a single long paragraph
// forms its own window and the last window may be short. Paragraph breaks
// inside a window are kept as blank lines.
func Paragraphs(text string, windowWords int) []Window {
	if windowWords <= 0 {
		return nil
	}
	paras := segment.Paragraphs(text)
	if len(paras) == 0 {
		return nil
	}

	var windows []Window
	var buf []string
	start, pos := 0, 0
	flush := func() {
		if len(buf) == 0 {
			return
		}
		windows = append(windows, Window{
			Index:     len(windows),
			StartWord: start,
			EndWord:   pos,
			Text:      strings.Join(buf, "\n\n"),
		})
		buf = buf[:0]
		start = pos
	}

	for _, p := range paras {
		buf = append(buf, p)
		pos += len(segment.Words(p))
		if pos-start >= windowWords {
			flush()
		}
	}
	flush()
	return windows
}
