package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/db"
	"ai_text_analyzer/internal/heuristics"
	"ai_text_analyzer/internal/types"
)

// History prints stored analyses, newest first, with times relative to now.
func History(w io.Writer, analyses []db.Analysis, now time.Time) error {
	if len(analyses) == 0 {
		_, err := fmt.Fprintln(w, "No saved analyses.")
		return err
	}
	t := newTable("ID", "SOURCE", "WORDS", "SCORE", "CONFIDENCE", "SAVED")
	for _, a := range analyses {
		score := fmt.Sprintf("%.1f", a.OverallScore)
		if a.Error {
			score = "error"
		}
		t.Row(a.ID, a.SourcePath, humanize.Comma(int64(a.WordCount)), score,
			fmt.Sprintf("%.1f (%s)", a.Confidence, a.ConfidenceLevel),
			humanize.RelTime(a.CreatedAt, now, "ago", "from now"))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// Results prints stored heuristic rows in the order given.
func Results(w io.Writer, results []types.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No heuristic results.")
		return err
	}
	t := newTable("KEY", "NAME", "VALUE", "SCORE", "LEAN")
	for _, r := range results {
		name := r.Name
		if r.Skipped {
			name += " (skipped)"
		}
		t.Row(string(r.Key), name, formatValue(r.Value), fmt.Sprintf("%.1f", r.Score), string(r.Interpretation))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// Heuristics prints the registry with the weight and band cfg assigns to each entry.
func Heuristics(w io.Writer, defs []heuristics.Definition, cfg config.Config) error {
	t := newTable("KEY", "NAME", "WEIGHT", "BAND", "RANGE")
	for _, d := range defs {
		band := "-"
		if b, ok := cfg.Band(d.Key); ok {
			band = fmt.Sprintf("%g..%g", b.Low, b.High)
		}
		direction := "higher leans AI"
		if d.Range.Invert {
			direction = "higher leans human"
		}
		flags := []string{direction}
		if d.ParagraphDependent {
			flags = append(flags, "paragraph")
		}
		t.Row(string(d.Key), d.Name, fmt.Sprintf("%g", cfg.Weight(d.Key)), band,
			fmt.Sprintf("[%g, %g] %s", d.Range.Min, d.Range.Max, strings.Join(flags, ", ")))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}
