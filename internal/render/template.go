// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/model"
)

// defaultTemplateFS embeds the fallback site templates so a bare content
// directory renders without any theme files on disk.
//
//go:embed templates/*.tmpl
var defaultTemplateFS embed.FS

// template names looked up in the templates dir (and the embedded defaults).
const (
	pageTemplateName  = "page.html.tmpl"
	indexTemplateName = "index.html.tmpl"
)

// PageData is the data passed to the page template.
type PageData struct {
	Site      config.SiteConfig
	Page      model.Page
	Content   template.HTML
	TOC       []TOCEntry
	Canonical string
}

// IndexData is the data passed to the site index template.
type IndexData struct {
	Site      config.SiteConfig
	Pages     []model.Page
	Canonical string
}

// Templates holds the parsed site templates.
type Templates struct {
	page  *template.Template
	index *template.Template
}

// LoadTemplates parses the site templates. Files found in templatesDir
// override the embedded defaults; an empty or missing dir renders with the
// defaults alone.
func LoadTemplates(templatesDir string) (*Templates, error) {
	page, err := loadTemplate(templatesDir, pageTemplateName)
	if err != nil {
		return nil, err
	}
	index, err := loadTemplate(templatesDir, indexTemplateName)
	if err != nil {
		return nil, err
	}
	return &Templates{page: page, index: index}, nil
}

func loadTemplate(templatesDir, name string) (*template.Template, error) {
	if templatesDir != "" {
		onDisk := filepath.Join(templatesDir, name)
		if _, err := os.Stat(onDisk); err == nil {
			t, err := template.ParseFiles(onDisk)
			if err != nil {
				return nil, fmt.Errorf("failed to parse template %s: %w", onDisk, err)
			}
			return t, nil
		}
	}
	t, err := template.ParseFS(defaultTemplateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template %s: %w", name, err)
	}
	return t, nil
}

// RenderPage executes the page template.
func (t *Templates) RenderPage(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.page.ExecuteTemplate(&buf, pageTemplateName, data); err != nil {
		return nil, fmt.Errorf("failed to render page %s: %w", data.Page.Slug, err)
	}
	return buf.Bytes(), nil
}

// RenderIndex executes the index template.
func (t *Templates) RenderIndex(data IndexData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.index.ExecuteTemplate(&buf, indexTemplateName, data); err != nil {
		return nil, fmt.Errorf("failed to render index: %w", err)
	}
	return buf.Bytes(), nil
}
