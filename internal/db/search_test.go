// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"reflect"
	"testing"

	"github.com/zuhairmbj123/zws/internal/model"
)

func TestTokenizeSearchQuery(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"Pricing", []string{"pricing"}},
		{"  Launch   Day ", []string{"launch", "day"}},
		{"SEO sitemap", []string{"seo", "sitemap"}},
	}
	for _, c := range cases {
		got := TokenizeSearchQuery(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("TokenizeSearchQuery(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSearchPages_Uninitialized(t *testing.T) {
	prev := GetStore()
	SetStore(nil)
	t.Cleanup(func() { SetStore(prev) })

	if _, err := SearchPages("anything"); err != ErrNotInitialized {
		t.Fatalf("SearchPages before InitDB returned %v, want ErrNotInitialized", err)
	}
}

func TestSearchPages(t *testing.T) {
	_ = newTestDB(t)

	pages := []model.Page{
		{SourcePath: "pricing.md", Slug: "pricing", Title: "Pricing Plans", Tags: "product,sales", SourceHash: "1"},
		{SourcePath: "blog/launch.md", Slug: "launch-day", Title: "Launch Day", Description: "The product is live", Tags: "news", SourceHash: "2"},
		{SourcePath: "about.md", Slug: "about", Title: "About Us", SourceHash: "3"},
	}
	for i := range pages {
		if err := UpsertPage(&pages[i]); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	got, err := SearchPages("launch")
	if err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "launch-day" {
		t.Fatalf("SearchPages(launch) = %+v, want launch-day", got)
	}

	// Multiple tokens must all match (AND semantics).
	got, err = SearchPages("product live")
	if err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "launch-day" {
		t.Fatalf("SearchPages(product live) = %+v, want launch-day only", got)
	}

	// Tag matches count too.
	got, err = SearchPages("sales")
	if err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "pricing" {
		t.Fatalf("SearchPages(sales) = %+v, want pricing", got)
	}

	// Empty query returns everything.
	got, err = SearchPages("  ")
	if err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("SearchPages(empty) returned %d pages, want 3", len(got))
	}
}
