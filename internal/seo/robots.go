// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package seo

import (
	"fmt"
	"strings"
)

// Robots renders robots.txt: allow everything and point crawlers at the
// sitemap.
func Robots(baseURL string) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow:\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", AbsoluteURL(baseURL, "/sitemap.xml"))
	return []byte(b.String())
}
