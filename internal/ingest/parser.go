// Package ingest turns input files into plain text with paragraph breaks
// kept as blank lines.
package ingest

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"ai_text_analyzer/internal/segment"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("input too large")
)

// StdinName is the path argument that selects standard input.
const StdinName = "-"

type Document struct {
	Title      string
	SourcePath string
	Format     string
	SHA256     string
	Text       string
}

func ParseFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(path, raw)
}

// ParseReader reads r to the end and treats the content as plain text.
func ParseReader(name string, r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return build(name, "txt", raw, string(raw)), nil
}

// Parse picks a decoder from the extension of name.
func Parse(name string, raw []byte) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(name))
	var (
		text   string
		format string
		err    error
	)
	switch ext {
	case ".txt", ".text", "":
		text, format = string(raw), "txt"
	case ".md", ".markdown":
		text, format = parseMarkdown(raw), "md"
	case ".docx":
		format = "docx"
		text, err = parseDOCX(raw)
	case ".pdf":
		format = "pdf"
		text, err = parsePDF(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return nil, err
	}
	return build(name, format, raw, text), nil
}

func build(name, format string, raw []byte, text string) *Document {
	sum := sha256.Sum256(raw)
	title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == StdinName {
		title = "stdin"
	}
	return &Document{
		Title:      title,
		SourcePath: name,
		Format:     format,
		SHA256:     hex.EncodeToString(sum[:]),
		Text:       normalizeWhitespace(text),
	}
}

// CheckSize rejects text longer than maxChars characters or maxWords words.
// A non-positive limit is not enforced.
func CheckSize(text string, maxChars, maxWords int) error {
	if n := len([]rune(text)); maxChars > 0 && n > maxChars {
		return fmt.Errorf("%w: %d characters exceeds the limit of %d", ErrTooLarge, n, maxChars)
	}
	if n := len(segment.Words(text)); maxWords > 0 && n > maxWords {
		return fmt.Errorf("%w: %d words exceeds the limit of %d", ErrTooLarge, n, maxWords)
	}
	return nil
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, openErr := f.Open()
		if openErr != nil {
			return "", fmt.Errorf("open document.xml: %w", openErr)
		}
		xmlData, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if len(xmlData) == 0 {
		return "", fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var b strings.Builder
	inText := false
	for {
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return "", fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "p":
				if b.Len() > 0 {
					b.WriteString("\n\n")
				}
			case "br":
				b.WriteString("\n")
			case "tab":
				b.WriteString(" ")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func parsePDF(raw []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

// normalizeWhitespace collapses runs of spaces inside lines and runs of
// blank lines to a single blank line.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
