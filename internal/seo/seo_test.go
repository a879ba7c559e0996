// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package seo

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/zuhairmbj123/zws/internal/model"
)

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		base, route, want string
	}{
		{"https://acme.example", "/", "https://acme.example/"},
		{"https://acme.example/", "/", "https://acme.example/"},
		{"https://acme.example/", "/launch/", "https://acme.example/launch/"},
	}
	for _, c := range cases {
		if got := AbsoluteURL(c.base, c.route); got != c.want {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", c.base, c.route, got, c.want)
		}
	}
}

func TestSitemap_RootFirstAndDraftsSkipped(t *testing.T) {
	pages := []model.Page{
		{Slug: "launch", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "secret", Draft: true},
		{Slug: "about"},
	}
	out, err := Sitemap("https://acme.example", pages)
	if err != nil {
		t.Fatalf("Sitemap failed: %v", err)
	}
	s := string(out)

	rootIdx := strings.Index(s, "<loc>https://acme.example/</loc>")
	launchIdx := strings.Index(s, "<loc>https://acme.example/launch/</loc>")
	if rootIdx < 0 || launchIdx < 0 {
		t.Fatalf("missing expected loc entries:\n%s", s)
	}
	if rootIdx > launchIdx {
		t.Error("expected site root before page entries")
	}
	if strings.Contains(s, "secret") {
		t.Error("draft pages must not appear in the sitemap")
	}
	if !strings.Contains(s, "<lastmod>2026-03-01</lastmod>") {
		t.Error("expected lastmod for dated page")
	}
	if strings.Contains(s, "changefreq") || strings.Contains(s, "priority") {
		t.Error("sitemap must not emit changefreq or priority")
	}
	// undated pages carry no lastmod
	aboutEntry := s[strings.Index(s, "about"):]
	if start := strings.Index(aboutEntry, "<lastmod>"); start >= 0 && start < strings.Index(aboutEntry, "</url>") {
		t.Error("expected no lastmod for undated page")
	}
}

func TestGzipArtifact_RoundTrip(t *testing.T) {
	plain := []byte("<urlset>payload</urlset>")
	packed, err := GzipArtifact(plain)
	if err != nil {
		t.Fatalf("GzipArtifact failed: %v", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(packed))
	if err != nil {
		t.Fatalf("gzip.NewReader failed: %v", err)
	}
	got, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read gzip: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestRobots(t *testing.T) {
	out := string(Robots("https://acme.example/"))
	if !strings.Contains(out, "User-agent: *") {
		t.Error("missing user-agent line")
	}
	if !strings.Contains(out, "Sitemap: https://acme.example/sitemap.xml") {
		t.Errorf("missing sitemap pointer:\n%s", out)
	}
}

func TestFeed_LimitAndDrafts(t *testing.T) {
	info := FeedInfo{
		Title:       "Acme",
		BaseURL:     "https://acme.example",
		Description: "Widgets",
		Language:    "en",
	}
	pages := []model.Page{
		{Slug: "c", Title: "C", Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)},
		{Slug: "hidden", Title: "Hidden", Draft: true},
		{Slug: "b", Title: "B", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{Slug: "a", Title: "A", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	out, err := Feed(info, pages, 2)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	s := string(out)
	if strings.Count(s, "<item>") != 2 {
		t.Errorf("expected 2 items, got:\n%s", s)
	}
	if strings.Contains(s, "Hidden") {
		t.Error("draft pages must not appear in the feed")
	}
	if !strings.Contains(s, "<title>C</title>") || !strings.Contains(s, "<title>B</title>") {
		t.Error("expected newest two published pages")
	}
	if !strings.Contains(s, `version="2.0"`) {
		t.Error("expected RSS 2.0 version attribute")
	}
	if !strings.Contains(s, "<guid>https://acme.example/c/</guid>") {
		t.Error("expected guid matching the item link")
	}
}

func TestFeed_DefaultLimit(t *testing.T) {
	var pages []model.Page
	for i := 0; i < DefaultFeedLimit+5; i++ {
		pages = append(pages, model.Page{Slug: "p" + string(rune('a'+i)), Title: "P"})
	}
	out, err := Feed(FeedInfo{Title: "Acme", BaseURL: "https://acme.example"}, pages, 0)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if got := strings.Count(string(out), "<item>"); got != DefaultFeedLimit {
		t.Errorf("expected %d items, got %d", DefaultFeedLimit, got)
	}
}
