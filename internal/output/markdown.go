package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"ai_text_analyzer/internal/aidetect"
	"ai_text_analyzer/internal/types"
)

type MarkdownFormatter struct{}

func (MarkdownFormatter) Format(w io.Writer, docs []Document) error {
	var b strings.Builder
	b.WriteString("# AI Text Analysis Report\n\n")
	for _, doc := range docs {
		writeMarkdownReport(&b, "## "+doc.Source, doc.Report)
		for _, win := range doc.Windows {
			title := fmt.Sprintf("### Window %d (words %d-%d)", win.Index+1, win.StartWord, win.EndWord)
			writeMarkdownReport(&b, title, win.Report)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownReport(b *strings.Builder, heading string, r aidetect.Report) {
	b.WriteString(heading + "\n\n")
	if r.Error {
		fmt.Fprintf(b, "> %s\n\n", r.Message)
		return
	}

	fmt.Fprintf(b, "**%s**\n\n", r.Verdict)
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| AI likelihood | %.1f%% |\n", r.OverallScore)
	fmt.Fprintf(b, "| Confidence | %.1f%% (%s) |\n", r.Confidence.Score, r.Confidence.Level)
	fmt.Fprintf(b, "| Words | %d |\n", r.WordCount)
	fmt.Fprintf(b, "| Sentences | %d |\n", r.SentenceCount)
	fmt.Fprintf(b, "| Paragraphs | %d |\n", r.ParagraphCount)
	fmt.Fprintf(b, "| Paragraph analysis skipped | %t |\n\n", r.ParagraphAnalysisSkipped)

	results := append([]types.Result(nil), r.Results...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	b.WriteString("| Heuristic | Value | Score | Lean |\n")
	b.WriteString("|-----------|-------|-------|------|\n")
	for _, res := range results {
		fmt.Fprintf(b, "| %s | %s | %.1f | %s |\n", res.Name, formatValue(res.Value), res.Score, res.Interpretation)
	}
	b.WriteString("\n")

	if len(r.Errors) > 0 {
		b.WriteString("#### Errors\n\n")
		for _, e := range r.Errors {
			fmt.Fprintf(b, "- `%s`: %s\n", e.Stage, e.Message)
		}
		b.WriteString("\n")
	}
}
