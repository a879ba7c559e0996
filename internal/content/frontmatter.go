// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package content loads markdown source documents: frontmatter parsing,
// slug derivation, and discovery of the content tree.
package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// frontmatterDelimiter separates the YAML header from the markdown body.
var frontmatterDelimiter = []byte("---")

// utf8BOM is the byte order mark some Windows editors prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Frontmatter is the YAML header of a markdown source file. Unknown keys
// are ignored so content authored for other generators keeps working.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Slug        string   `yaml:"slug"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
	Draft       bool     `yaml:"draft"`
}

// Document is a parsed markdown source file: its frontmatter and the raw
// markdown body that follows it.
type Document struct {
	Meta Frontmatter
	Body []byte
}

// ParseDocument splits raw file content into frontmatter and body.
// The file must begin with a `---` line; a missing or unterminated header
// is an error so malformed content fails loudly at build time.
func ParseDocument(raw []byte) (*Document, error) {
	trimmed := bytes.TrimPrefix(raw, utf8BOM) // tolerate a UTF-8 BOM
	if !bytes.HasPrefix(trimmed, frontmatterDelimiter) {
		return nil, fmt.Errorf("missing frontmatter: file does not start with '---'")
	}

	rest := trimmed[len(frontmatterDelimiter):]
	// The opening delimiter must be a line of its own.
	if len(rest) > 0 && rest[0] != '\n' && !bytes.HasPrefix(rest, []byte("\r\n")) {
		return nil, fmt.Errorf("missing frontmatter: file does not start with a '---' line")
	}

	end := closingDelimiterIndex(rest)
	if end < 0 {
		return nil, fmt.Errorf("unterminated frontmatter: no closing '---' line")
	}
	header := rest[:end]
	body := rest[end+len("\n---"):]
	// Drop the remainder of the closing delimiter line.
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}

	var meta Frontmatter
	if err := yaml.Unmarshal(header, &meta); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if strings.TrimSpace(meta.Title) == "" {
		return nil, fmt.Errorf("invalid frontmatter: title is required")
	}

	return &Document{Meta: meta, Body: body}, nil
}

// closingDelimiterIndex finds the offset of the "\n---" that closes the
// header. The delimiter must be a bare `---` line; a header value that
// merely begins with three dashes (say, `summary: ---draft---`) does not
// close the block.
func closingDelimiterIndex(rest []byte) int {
	search := 0
	for {
		i := bytes.Index(rest[search:], []byte("\n---"))
		if i < 0 {
			return -1
		}
		i += search
		tail := rest[i+len("\n---"):]
		if len(tail) == 0 || tail[0] == '\n' || bytes.HasPrefix(tail, []byte("\r\n")) {
			return i
		}
		search = i + 1
	}
}

// ParseDate accepts a frontmatter date as either 2006-01-02 or RFC3339.
// An empty value returns the zero time without error.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want 2006-01-02 or RFC3339", s)
}
