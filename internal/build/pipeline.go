// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package build orchestrates a site build: content scan, incremental
// rendering, static asset copy, SEO artifact emission, and bookkeeping in
// the content index.
package build

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/content"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/logging"
	"github.com/zuhairmbj123/zws/internal/model"
	"github.com/zuhairmbj123/zws/internal/render"
	"github.com/zuhairmbj123/zws/internal/seo"
)

// defaultChromaStyle is the syntax highlighting theme for code fences.
const defaultChromaStyle = "github"

// Options controls one build run.
type Options struct {
	Config config.Config
	Drafts bool   // include draft pages
	Force  bool   // ignore stored hashes and re-render everything
	Output string // overrides Config.Paths.Output when non-empty
}

// Summary reports what a build run did.
type Summary struct {
	Record    model.BuildRecord
	OutputDir string
	Pages     []model.Page
}

// Run executes a build. The content index must be initialized (db.InitDB)
// before calling; rendered pages whose stored source hash is unchanged are
// skipped unless Force is set.
func Run(opts Options) (*Summary, error) {
	start := time.Now()
	cfg := opts.Config

	if err := config.ValidateBaseURL(cfg.Site.BaseURL); err != nil {
		return nil, err
	}

	outDir := cfg.Paths.Output
	if opts.Output != "" {
		outDir = opts.Output
	}
	if outDir == "" {
		outDir = "public"
	}

	sources, err := content.Scan(cfg.Paths.Content, content.ScanOptions{IncludeDrafts: opts.Drafts})
	if err != nil {
		return nil, err
	}

	templates, err := render.LoadTemplates(cfg.Paths.Templates)
	if err != nil {
		return nil, err
	}
	md := render.NewMarkdown(defaultChromaStyle)

	built, skipped := 0, 0
	pages := make([]model.Page, 0, len(sources))
	scannedPaths := make([]string, 0, len(sources))

	for i := range sources {
		src := &sources[i]
		page := src.Page
		page.OutputPath = path.Join(page.Slug, "index.html")
		scannedPaths = append(scannedPaths, page.SourcePath)

		stored, err := db.GetPageBySourcePath(page.SourcePath)
		if err != nil {
			return nil, fmt.Errorf("failed to look up %s in the content index: %w", page.SourcePath, err)
		}

		outPath := filepath.Join(outDir, filepath.FromSlash(page.OutputPath))
		upToDate := !opts.Force &&
			stored != nil &&
			stored.SourceHash == page.SourceHash &&
			fileExists(outPath)

		if upToDate {
			skipped++
		} else {
			result, err := md.Render(src.Body)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", page.SourcePath, err)
			}
			html, err := templates.RenderPage(render.PageData{
				Site:      cfg.Site,
				Page:      page,
				Content:   result.HTML,
				TOC:       result.TOC,
				Canonical: seo.AbsoluteURL(cfg.Site.BaseURL, page.Route()),
			})
			if err != nil {
				return nil, err
			}
			if err := WriteFileAtomic(outPath, html, 0644); err != nil {
				return nil, err
			}
			built++
			logging.Debugf("built %s -> %s", page.SourcePath, page.OutputPath)
		}

		if err := db.UpsertPage(&page); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", page.SourcePath, err)
		}
		pages = append(pages, page)
	}

	// Drop index rows for sources that no longer exist.
	if pruned, err := db.DeletePagesNotIn(scannedPaths); err != nil {
		return nil, fmt.Errorf("failed to prune stale pages: %w", err)
	} else if pruned > 0 {
		logging.Infof("pruned %d stale page(s) from the content index", pruned)
	}

	// Static assets.
	if n, err := CopyTree(cfg.Paths.Static, outDir); err != nil {
		return nil, fmt.Errorf("failed to copy static assets: %w", err)
	} else if n > 0 {
		logging.Debugf("copied %d static file(s)", n)
	}

	// Site index and SEO artifacts always regenerate: they are cheap and
	// depend on the full page set.
	published := publishedNewestFirst(pages)
	if err := writeIndexAndSEO(cfg, outDir, templates, published); err != nil {
		return nil, err
	}

	mode := "incremental"
	if opts.Force {
		mode = "full"
	}
	record := model.BuildRecord{
		StartedAt:    start.UTC(),
		Duration:     time.Since(start),
		Mode:         mode,
		PagesBuilt:   built,
		PagesSkipped: skipped,
		Drafts:       opts.Drafts,
	}
	if _, err := db.AddBuildRecord(&record); err != nil {
		return nil, fmt.Errorf("failed to record build: %w", err)
	}

	logging.Infof("build complete: %d built, %d skipped in %s", built, skipped, record.Duration.Round(time.Millisecond))
	return &Summary{Record: record, OutputDir: outDir, Pages: pages}, nil
}

// writeIndexAndSEO renders the site index page and the crawl artifacts.
func writeIndexAndSEO(cfg config.Config, outDir string, templates *render.Templates, published []model.Page) error {
	indexHTML, err := templates.RenderIndex(render.IndexData{
		Site:      cfg.Site,
		Pages:     published,
		Canonical: seo.AbsoluteURL(cfg.Site.BaseURL, "/"),
	})
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(filepath.Join(outDir, "index.html"), indexHTML, 0644); err != nil {
		return err
	}

	sitemap, err := seo.Sitemap(cfg.Site.BaseURL, published)
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(filepath.Join(outDir, "sitemap.xml"), sitemap, 0644); err != nil {
		return err
	}
	gz, err := seo.GzipArtifact(sitemap)
	if err != nil {
		return fmt.Errorf("failed to gzip sitemap: %w", err)
	}
	if err := WriteFileAtomic(filepath.Join(outDir, "sitemap.xml.gz"), gz, 0644); err != nil {
		return err
	}

	if err := WriteFileAtomic(filepath.Join(outDir, "robots.txt"), seo.Robots(cfg.Site.BaseURL), 0644); err != nil {
		return err
	}

	feed, err := seo.Feed(seo.FeedInfo{
		Title:       cfg.Site.Title,
		BaseURL:     cfg.Site.BaseURL,
		Description: cfg.Site.Description,
		Language:    cfg.Site.Language,
	}, published, seo.DefaultFeedLimit)
	if err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(outDir, "feed.xml"), feed, 0644)
}

// publishedNewestFirst filters drafts out and sorts by date descending,
// falling back to slug order for undated pages so output is deterministic.
func publishedNewestFirst(pages []model.Page) []model.Page {
	out := make([]model.Page, 0, len(pages))
	for _, p := range pages {
		if !p.Draft {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
