// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/model"
)

var testSite = config.SiteConfig{
	Title:       "Acme",
	BaseURL:     "https://acme.example",
	Description: "Widgets for everyone",
	Author:      "Acme Inc",
	Language:    "en",
}

func TestRenderPage_EmbeddedDefaults(t *testing.T) {
	tpl, err := LoadTemplates("")
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}

	out, err := tpl.RenderPage(PageData{
		Site: testSite,
		Page: model.Page{
			Slug:        "launch",
			Title:       "Launch Day",
			Description: "We are live",
			Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Content:   template.HTML("<p>body</p>"),
		TOC:       []TOCEntry{{ID: "features", Text: "Features", Level: 2}},
		Canonical: "https://acme.example/launch/",
	})
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		"<title>Launch Day &middot; Acme</title>",
		`<meta name="description" content="We are live">`,
		`<link rel="canonical" href="https://acme.example/launch/">`,
		`<a href="#features">Features</a>`,
		"<p>body</p>",
		`datetime="2026-03-01"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page output missing %q", want)
		}
	}
}

func TestRenderPage_NoTOCOmitsNav(t *testing.T) {
	tpl, err := LoadTemplates("")
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	out, err := tpl.RenderPage(PageData{
		Site:    testSite,
		Page:    model.Page{Slug: "about", Title: "About"},
		Content: template.HTML("<p>hi</p>"),
	})
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if strings.Contains(string(out), `class="toc"`) {
		t.Error("expected no TOC nav when TOC is empty")
	}
}

func TestRenderIndex_ListsPages(t *testing.T) {
	tpl, err := LoadTemplates("")
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	out, err := tpl.RenderIndex(IndexData{
		Site: testSite,
		Pages: []model.Page{
			{Slug: "launch", Title: "Launch Day"},
			{Slug: "pricing", Title: "Pricing"},
		},
		Canonical: "https://acme.example/",
	})
	if err != nil {
		t.Fatalf("RenderIndex failed: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<a href="/launch/">Launch Day</a>`) {
		t.Errorf("index output missing launch link: %q", html)
	}
	if !strings.Contains(html, `<a href="/pricing/">Pricing</a>`) {
		t.Error("index output missing pricing link")
	}
}

func TestLoadTemplates_DiskOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "CUSTOM {{ .Page.Title }}"
	if err := os.WriteFile(filepath.Join(dir, "page.html.tmpl"), []byte(custom), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	tpl, err := LoadTemplates(dir)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	out, err := tpl.RenderPage(PageData{Site: testSite, Page: model.Page{Title: "Hello"}})
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if string(out) != "CUSTOM Hello" {
		t.Errorf("expected disk template to win, got %q", out)
	}

	// index was not overridden on disk, so it falls back to the embedded one
	idx, err := tpl.RenderIndex(IndexData{Site: testSite})
	if err != nil {
		t.Fatalf("RenderIndex failed: %v", err)
	}
	if !strings.Contains(string(idx), "<h1>Acme</h1>") {
		t.Error("expected embedded index template fallback")
	}
}
