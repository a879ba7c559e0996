// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestScan_DiscoversAndOrders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blog/second.md", "---\ntitle: Second\n---\nbody\n")
	writeFile(t, dir, "about.md", "---\ntitle: About\n---\nbody\n")
	writeFile(t, dir, "notes.txt", "not markdown")
	writeFile(t, dir, ".hidden/secret.md", "---\ntitle: Secret\n---\nbody\n")

	sources, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Page.SourcePath != "about.md" || sources[1].Page.SourcePath != "blog/second.md" {
		t.Errorf("unexpected order: %s, %s", sources[0].Page.SourcePath, sources[1].Page.SourcePath)
	}
}

func TestScan_DraftsExcludedByDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "live.md", "---\ntitle: Live\n---\nbody\n")
	writeFile(t, dir, "wip.md", "---\ntitle: WIP\ndraft: true\n---\nbody\n")

	sources, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(sources) != 1 || sources[0].Page.Slug != "live" {
		t.Fatalf("expected only the live page, got %+v", sources)
	}

	sources, err = Scan(dir, ScanOptions{IncludeDrafts: true})
	if err != nil {
		t.Fatalf("Scan with drafts failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources with drafts, got %d", len(sources))
	}
}

func TestScan_DuplicateSlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: Same\nslug: same\n---\nbody\n")
	writeFile(t, dir, "b.md", "---\ntitle: Also Same\nslug: same\n---\nbody\n")

	if _, err := Scan(dir, ScanOptions{}); err == nil {
		t.Fatalf("expected duplicate slug error")
	}
}

func TestLoad_DerivesMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blog/launch.md", `---
title: "Launch Day"
tags: [News, Product]
date: 2026-03-01
---
content here
`)

	src, err := Load(dir, "blog/launch.md")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p := src.Page
	if p.Slug != "launch-day" {
		t.Errorf("slug = %q, want launch-day (derived from title)", p.Slug)
	}
	if p.Tags != "news,product" {
		t.Errorf("tags = %q, want normalized lowercase csv", p.Tags)
	}
	if p.SourceHash == "" || len(p.SourceHash) != 64 {
		t.Errorf("source hash = %q, want 64 hex chars", p.SourceHash)
	}
	if p.Date.Year() != 2026 || p.Date.Month() != 3 {
		t.Errorf("date = %v", p.Date)
	}
	if string(src.Body) != "content here\n" {
		t.Errorf("body = %q", string(src.Body))
	}
}

func TestLoad_HashChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "p.md", "---\ntitle: P\n---\none\n")
	first, err := Load(dir, "p.md")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	writeFile(t, dir, "p.md", "---\ntitle: P\n---\ntwo\n")
	second, err := Load(dir, "p.md")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if first.Page.SourceHash == second.Page.SourceHash {
		t.Errorf("expected hash to change when content changes")
	}
}
