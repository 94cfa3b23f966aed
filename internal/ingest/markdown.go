package ingest

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// parseMarkdown keeps the prose of a Markdown document. Headings and
// paragraphs become blank-line separated blocks, list items keep a marker
// on their own line, and code and raw HTML are dropped.
func parseMarkdown(raw []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(raw))
	return strings.Join(childBlocks(doc, raw), "\n\n")
}

func childBlocks(n ast.Node, src []byte) []string {
	var blocks []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if b := blockText(c, src); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func blockText(n ast.Node, src []byte) string {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		return inlineText(node, src)
	case *ast.List:
		var items []string
		i := node.Start
		for li := node.FirstChild(); li != nil; li = li.NextSibling() {
			body := strings.Join(childBlocks(li, src), " ")
			if body == "" {
				continue
			}
			marker := "- "
			if node.IsOrdered() {
				marker = fmt.Sprintf("%d. ", i)
				i++
			}
			items = append(items, marker+body)
		}
		return strings.Join(items, "\n")
	case *ast.Blockquote:
		return strings.Join(childBlocks(node, src), "\n\n")
	default:
		return ""
	}
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
