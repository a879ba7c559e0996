// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package seo generates the crawl-facing artifacts of the site: the XML
// sitemap (plain and gzipped), robots.txt, and the RSS feed. Generators
// return bytes; the build pipeline owns writing them to disk.
package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/zuhairmbj123/zws/internal/model"
)

// sitemapNamespace is the sitemaps.org protocol namespace.
const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// urlSet is the root element of a sitemap document.
type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap renders sitemap.xml for the published pages. The site root is
// always the first entry. Only <lastmod> is emitted per URL; changefreq and
// priority are ignored by the major crawlers.
func Sitemap(baseURL string, pages []model.Page) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNamespace}
	set.URLs = append(set.URLs, sitemapURL{Loc: AbsoluteURL(baseURL, "/")})

	for _, p := range pages {
		if p.Draft {
			continue
		}
		u := sitemapURL{Loc: AbsoluteURL(baseURL, p.Route())}
		if !p.Date.IsZero() {
			u.LastMod = p.Date.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// GzipArtifact compresses an artifact for the .gz sibling the build writes
// next to sitemap.xml.
func GzipArtifact(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AbsoluteURL joins a site-relative route onto the configured base URL.
func AbsoluteURL(baseURL, route string) string {
	return strings.TrimRight(baseURL, "/") + route
}
