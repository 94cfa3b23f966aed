// Package output renders analysis reports for the terminal and for files.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"ai_text_analyzer/internal/aidetect"
)

// Document is the rendered unit: one input and its analysis.
type Document struct {
	Source  string                  `json:"source" yaml:"source"`
	Report  aidetect.Report         `json:"report" yaml:"report"`
	Windows []aidetect.WindowReport `json:"windows,omitempty" yaml:"windows,omitempty"`
}

type Formatter interface {
	Format(w io.Writer, docs []Document) error
}

const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// Formats lists the accepted --format values.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown}
}

// New returns the formatter for name. colorize only affects text output.
func New(name string, colorize bool) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatText, "":
		return NewTextFormatter(colorize), nil
	case FormatJSON:
		return JSONFormatter{Indent: true}, nil
	case FormatYAML, "yml":
		return YAMLFormatter{}, nil
	case FormatMarkdown, "md":
		return MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats(), ", "))
	}
}

type JSONFormatter struct {
	Indent bool
}

// Format writes a single object for one document and an array otherwise.
func (f JSONFormatter) Format(w io.Writer, docs []Document) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	var v any = docs
	if len(docs) == 1 {
		v = docs[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

type YAMLFormatter struct{}

func (YAMLFormatter) Format(w io.Writer, docs []Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	var v any = docs
	if len(docs) == 1 {
		v = docs[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
