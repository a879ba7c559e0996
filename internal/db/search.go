// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"strings"

	"github.com/uptrace/bun"
	"github.com/zuhairmbj123/zws/internal/model"
)

// TokenizeSearchQuery splits a query into lower-cased tokens, trimming whitespace.
// Returns nil for empty input.
func TokenizeSearchQuery(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	parts := strings.Fields(q)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SearchPages returns pages whose title, slug, description or tags contain
// every token of the query (case-insensitive). An empty query returns all
// pages.
func (s *bunStore) SearchPages(query string) ([]model.Page, error) {
	tokens := TokenizeSearchQuery(query)
	if len(tokens) == 0 {
		return s.GetAllPages()
	}

	ctx := context.Background()
	q := s.bun.NewSelect().Model((*PageModel)(nil)).Order("source_path ASC")
	for _, tok := range tokens {
		like := "%" + tok + "%"
		q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				Where("LOWER(title) LIKE ?", like).
				WhereOr("LOWER(slug) LIKE ?", like).
				WhereOr("LOWER(description) LIKE ?", like).
				WhereOr("LOWER(tags) LIKE ?", like)
		})
	}

	var rows []PageModel
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]model.Page, 0, len(rows))
	for _, r := range rows {
		out = append(out, pageModelToModel(r))
	}
	return out, nil
}

// SearchPages searches the package store. See Store.SearchPages.
func SearchPages(query string) ([]model.Page, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.SearchPages(query)
}
