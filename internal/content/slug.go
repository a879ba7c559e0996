// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugTransformer decomposes to NFD and strips combining marks, so
// "Résumé" slugs as "resume" rather than dropping the accented runes.
var slugTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts arbitrary text into a URL-safe slug: lower-case ASCII
// letters and digits with single hyphens between words. Returns "" when
// nothing survives the transformation.
func Slugify(s string) string {
	if t, _, err := transform.String(slugTransformer, s); err == nil {
		s = t
	}
	s = strings.ToLower(s)

	var b strings.Builder
	prevHyphen := true // suppress a leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugDeduper hands out document-unique slugs. The first request for a slug
// gets it verbatim; later requests get a numeric suffix. Generated names are
// reserved too, so a literal "overview-2" heading cannot collide with the
// suffix generated for the second "Overview".
type SlugDeduper struct {
	taken map[string]int
}

// NewSlugDeduper returns an empty deduper.
func NewSlugDeduper() *SlugDeduper {
	return &SlugDeduper{taken: make(map[string]int)}
}

// Claim returns a unique slug for the given text. Empty input claims the
// slug "section".
func (d *SlugDeduper) Claim(text string) string {
	base := Slugify(text)
	if base == "" {
		base = "section"
	}

	if _, exists := d.taken[base]; !exists {
		d.taken[base] = 1
		return base
	}

	// Probe suffixes until a free name appears, starting where the last
	// claim for this base left off.
	n := d.taken[base] + 1
	for {
		candidate := base + "-" + strconv.Itoa(n)
		if _, exists := d.taken[candidate]; !exists {
			d.taken[base] = n
			d.taken[candidate] = 1
			return candidate
		}
		n++
	}
}
