package output

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"ai_text_analyzer/internal/aidetect"
	"ai_text_analyzer/internal/types"
)

// TextFormatter prints a human readable report, results sorted by name.
type TextFormatter struct {
	colorize bool
}

func NewTextFormatter(colorize bool) *TextFormatter {
	return &TextFormatter{colorize: colorize}
}

func (f *TextFormatter) style(color string) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (f *TextFormatter) bold() lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true)
}

func (f *TextFormatter) Format(w io.Writer, docs []Document) error {
	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		f.writeReport(&b, doc.Source, doc.Report)
		for _, win := range doc.Windows {
			b.WriteString("\n")
			title := fmt.Sprintf("%s [window %d, words %s-%s]", doc.Source, win.Index+1,
				humanize.Comma(int64(win.StartWord)), humanize.Comma(int64(win.EndWord)))
			f.writeReport(&b, title, win.Report)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TextFormatter) writeReport(b *strings.Builder, source string, r aidetect.Report) {
	b.WriteString(f.bold().Render(source) + "\n")
	if r.Error {
		b.WriteString("  " + f.style("9").Render(r.Message) + "\n")
		return
	}

	fmt.Fprintf(b, "  %s\n", f.verdictStyle(r.Verdict).Render(string(r.Verdict)))
	fmt.Fprintf(b, "  AI likelihood: %.1f%%   Confidence: %.1f%% (%s)\n", r.OverallScore, r.Confidence.Score, r.Confidence.Level)
	fmt.Fprintf(b, "  Words: %s   Sentences: %s   Paragraphs: %s   Time: %dms\n",
		humanize.Comma(int64(r.WordCount)), humanize.Comma(int64(r.SentenceCount)),
		humanize.Comma(int64(r.ParagraphCount)), r.DurationMs)
	if r.ParagraphAnalysisSkipped {
		b.WriteString("  " + f.style("3").Render("Paragraph analysis skipped: paragraph breaks look unreliable.") + "\n")
	}

	results := append([]types.Result(nil), r.Results...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	width := 0
	for _, res := range results {
		width = max(width, len(res.Name))
	}
	for _, res := range results {
		fmt.Fprintf(b, "  %-*s  %10s  %5.1f  %s\n", width, res.Name, formatValue(res.Value),
			res.Score, f.interpretationStyle(res.Interpretation).Render(string(res.Interpretation)))
	}
	for _, e := range r.Errors {
		b.WriteString("  " + f.style("9").Render(fmt.Sprintf("error [%s]: %s", e.Stage, e.Message)) + "\n")
	}
}

func (f *TextFormatter) verdictStyle(v aidetect.Verdict) lipgloss.Style {
	switch v {
	case aidetect.VerdictAI:
		return f.style("9").Bold(f.colorize)
	case aidetect.VerdictHuman:
		return f.style("10").Bold(f.colorize)
	default:
		return f.style("3").Bold(f.colorize)
	}
}

func (f *TextFormatter) interpretationStyle(i types.Interpretation) lipgloss.Style {
	switch i {
	case types.AI:
		return f.style("9")
	case types.Human:
		return f.style("10")
	default:
		return f.style("7")
	}
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", v)
}
