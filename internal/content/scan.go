// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zuhairmbj123/zws/internal/model"
)

// Source is one discovered markdown file: its parsed document, derived
// page metadata, and the raw body for rendering.
type Source struct {
	Page model.Page
	Body []byte
}

// ScanOptions controls content discovery.
type ScanOptions struct {
	IncludeDrafts bool
}

// Scan walks contentDir for .md files, parses each one, and returns the
// sources ordered by relative path. Duplicate page slugs across files are an
// error: two documents cannot claim the same URL.
func Scan(contentDir string, opts ScanOptions) ([]Source, error) {
	var relPaths []string
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git or editor state.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		relPaths = append(relPaths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan content dir %s: %w", contentDir, err)
	}
	sort.Strings(relPaths)

	seenSlugs := make(map[string]string) // slug -> first source path
	var sources []Source
	for _, rel := range relPaths {
		src, err := Load(contentDir, rel)
		if err != nil {
			return nil, err
		}
		if src.Page.Draft && !opts.IncludeDrafts {
			continue
		}
		if first, dup := seenSlugs[src.Page.Slug]; dup {
			return nil, fmt.Errorf("duplicate slug %q: %s and %s", src.Page.Slug, first, rel)
		}
		seenSlugs[src.Page.Slug] = rel
		sources = append(sources, *src)
	}
	return sources, nil
}

// Load reads and parses a single markdown file, returning the source with
// its derived page metadata and source hash.
func Load(contentDir, relPath string) (*Source, error) {
	raw, err := os.ReadFile(filepath.Join(contentDir, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", relPath, err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}

	date, err := ParseDate(doc.Meta.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}

	slug := doc.Meta.Slug
	if slug == "" {
		slug = Slugify(doc.Meta.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%s: cannot derive a slug from title %q", relPath, doc.Meta.Title)
	}

	sum := sha256.Sum256(raw)

	page := model.Page{
		SourcePath:  relPath,
		Slug:        slug,
		Title:       doc.Meta.Title,
		Description: doc.Meta.Description,
		Tags:        strings.ToLower(strings.Join(doc.Meta.Tags, ",")),
		Date:        date,
		Draft:       doc.Meta.Draft,
		SourceHash:  hex.EncodeToString(sum[:]),
	}

	return &Source{Page: page, Body: doc.Body}, nil
}
