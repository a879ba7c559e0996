// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package render turns markdown bodies into HTML: GFM parsing, syntax
// highlighted code fences, deduplicated heading anchors, and a table of
// contents extracted from the document structure.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/zuhairmbj123/zws/internal/content"
)

// Result is the output of rendering one markdown document.
type Result struct {
	HTML template.HTML
	TOC  []TOCEntry
}

// TOCEntry is one table-of-contents node. Children holds the next heading
// level down (h3 under h2).
type TOCEntry struct {
	ID       string
	Text     string
	Level    int
	Children []TOCEntry
}

// Markdown renders markdown bodies to HTML. It is safe for concurrent use;
// per-document state (the slug deduper) is created per Render call.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown constructs the markdown renderer. chromaStyle selects the
// syntax highlighting theme; an unknown name falls back to chroma's default.
func NewMarkdown(chromaStyle string) *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(newCodeBlockRenderer(chromaStyle), 100),
			),
		),
	)
	return &Markdown{md: md}
}

// Render parses the body, assigns deduplicated IDs to every heading,
// extracts the table of contents (h2/h3), and renders HTML.
func (m *Markdown) Render(body []byte) (*Result, error) {
	reader := text.NewReader(body)
	doc := m.md.Parser().Parse(reader)

	toc, err := anchorHeadings(doc, body)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, fmt.Errorf("markdown render failed: %w", err)
	}

	return &Result{HTML: template.HTML(buf.String()), TOC: toc}, nil
}

// anchorHeadings walks the document, claims a unique slug for each heading,
// sets it as the heading's id attribute, and returns the nested table of
// contents for levels 2 and 3.
func anchorHeadings(doc ast.Node, source []byte) ([]TOCEntry, error) {
	deduper := content.NewSlugDeduper()
	var toc []TOCEntry

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		headingText := nodeText(heading, source)
		id := deduper.Claim(headingText)
		heading.SetAttribute([]byte("id"), []byte(id))

		switch heading.Level {
		case 2:
			toc = append(toc, TOCEntry{ID: id, Text: headingText, Level: 2})
		case 3:
			if len(toc) == 0 {
				// h3 before any h2: promote to a top-level entry.
				toc = append(toc, TOCEntry{ID: id, Text: headingText, Level: 3})
			} else {
				last := &toc[len(toc)-1]
				last.Children = append(last.Children, TOCEntry{ID: id, Text: headingText, Level: 3})
			}
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return toc, nil
}

// nodeText collects the plain text of a node's inline children.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
