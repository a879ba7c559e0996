// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Bun-backed implementation of the Store interface, shared by all three
// supported database engines. Dialect differences are confined to the
// migrations and to createBunDB.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os/user"
	"time"

	"github.com/uptrace/bun"
	"github.com/zuhairmbj123/zws/internal/model"
)

// bunStore implements Store on top of a *bun.DB.
type bunStore struct {
	bun    *bun.DB
	dbType string
}

// PageModel maps the `pages` table for Bun queries.
type PageModel struct {
	bun.BaseModel `bun:"table:pages"`
	ID            int            `bun:"id,pk,autoincrement"`
	SourcePath    string         `bun:"source_path"`
	Slug          string         `bun:"slug"`
	Title         string         `bun:"title"`
	Description   sql.NullString `bun:"description"`
	Tags          sql.NullString `bun:"tags"`
	Date          time.Time      `bun:"date"`
	Draft         bool           `bun:"draft"`
	SourceHash    string         `bun:"source_hash"`
	OutputPath    sql.NullString `bun:"output_path"`
	UpdatedAt     time.Time      `bun:"updated_at"`
}

// BuildModel maps the `builds` table.
type BuildModel struct {
	bun.BaseModel `bun:"table:builds"`
	ID            int       `bun:"id,pk,autoincrement"`
	StartedAt     time.Time `bun:"started_at"`
	DurationMs    int64     `bun:"duration_ms"`
	Mode          string    `bun:"mode"`
	PagesBuilt    int       `bun:"pages_built"`
	PagesSkipped  int       `bun:"pages_skipped"`
	Drafts        bool      `bun:"drafts"`
}

// KnownHostModel maps the `known_hosts` table.
type KnownHostModel struct {
	bun.BaseModel `bun:"table:known_hosts"`
	Hostname      string `bun:"hostname,pk"`
	Key           string `bun:"key"`
}

// AuditLogModel maps the `audit_log` table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp"`
	Username      string `bun:"username"`
	Action        string `bun:"action"`
	Details       string `bun:"details"`
}

// --- Mapping helpers (centralized conversions) ---

func pageModelToModel(pm PageModel) model.Page {
	p := model.Page{
		ID:         pm.ID,
		SourcePath: pm.SourcePath,
		Slug:       pm.Slug,
		Title:      pm.Title,
		Date:       pm.Date,
		Draft:      pm.Draft,
		SourceHash: pm.SourceHash,
		UpdatedAt:  pm.UpdatedAt,
	}
	if pm.Description.Valid {
		p.Description = pm.Description.String
	}
	if pm.Tags.Valid {
		p.Tags = pm.Tags.String
	}
	if pm.OutputPath.Valid {
		p.OutputPath = pm.OutputPath.String
	}
	return p
}

func pageToModelRow(p *model.Page) PageModel {
	return PageModel{
		ID:          p.ID,
		SourcePath:  p.SourcePath,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: sql.NullString{String: p.Description, Valid: p.Description != ""},
		Tags:        sql.NullString{String: p.Tags, Valid: p.Tags != ""},
		Date:        p.Date,
		Draft:       p.Draft,
		SourceHash:  p.SourceHash,
		OutputPath:  sql.NullString{String: p.OutputPath, Valid: p.OutputPath != ""},
		UpdatedAt:   time.Now().UTC(),
	}
}

func buildModelToModel(bm BuildModel) model.BuildRecord {
	return model.BuildRecord{
		ID:           bm.ID,
		StartedAt:    bm.StartedAt,
		Duration:     time.Duration(bm.DurationMs) * time.Millisecond,
		Mode:         bm.Mode,
		PagesBuilt:   bm.PagesBuilt,
		PagesSkipped: bm.PagesSkipped,
		Drafts:       bm.Drafts,
	}
}

func auditModelToModel(am AuditLogModel) model.AuditLogEntry {
	return model.AuditLogEntry{
		ID:        am.ID,
		Timestamp: am.Timestamp,
		Username:  am.Username,
		Action:    am.Action,
		Details:   am.Details,
	}
}

// --- Page methods ---

// UpsertPage inserts the page or, when a row for the same source path
// exists, updates it in place. The select-then-write runs in a transaction
// so both branches are dialect-neutral.
func (s *bunStore) UpsertPage(p *model.Page) error {
	ctx := context.Background()

	tx, err := s.bun.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var existing PageModel
	err = tx.NewSelect().Model(&existing).Where("source_path = ?", p.SourcePath).Limit(1).Scan(ctx)
	row := pageToModelRow(p)
	switch {
	case err == sql.ErrNoRows:
		row.ID = 0
		if _, err := tx.NewInsert().Model(&row).Exec(ctx); err != nil {
			return MapDBError(err)
		}
	case err != nil:
		return err
	default:
		row.ID = existing.ID
		if _, err := tx.NewUpdate().Model(&row).WherePK().Exec(ctx); err != nil {
			return MapDBError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	p.ID = row.ID
	return nil
}

// GetAllPages retrieves all pages ordered by source path.
func (s *bunStore) GetAllPages() ([]model.Page, error) {
	ctx := context.Background()
	var rows []PageModel
	if err := s.bun.NewSelect().Model(&rows).Order("source_path ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Page, 0, len(rows))
	for _, r := range rows {
		out = append(out, pageModelToModel(r))
	}
	return out, nil
}

// GetPublishedPages retrieves non-draft pages ordered by date, newest first.
func (s *bunStore) GetPublishedPages() ([]model.Page, error) {
	ctx := context.Background()
	var rows []PageModel
	err := s.bun.NewSelect().Model(&rows).Where("draft = ?", false).Order("date DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Page, 0, len(rows))
	for _, r := range rows {
		out = append(out, pageModelToModel(r))
	}
	return out, nil
}

// GetPageBySlug retrieves a single page by its slug.
func (s *bunStore) GetPageBySlug(slug string) (*model.Page, error) {
	ctx := context.Background()
	var pm PageModel
	err := s.bun.NewSelect().Model(&pm).Where("slug = ?", slug).Limit(1).Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := pageModelToModel(pm)
	return &p, nil
}

// GetPageBySourcePath retrieves a single page by its source path.
// A missing row returns (nil, nil): absence is a state, not an error, for
// the incremental build's hash comparison.
func (s *bunStore) GetPageBySourcePath(sourcePath string) (*model.Page, error) {
	ctx := context.Background()
	var pm PageModel
	err := s.bun.NewSelect().Model(&pm).Where("source_path = ?", sourcePath).Limit(1).Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := pageModelToModel(pm)
	return &p, nil
}

// DeletePagesNotIn removes index rows whose source file no longer exists,
// returning the number of rows pruned.
func (s *bunStore) DeletePagesNotIn(sourcePaths []string) (int, error) {
	ctx := context.Background()

	q := s.bun.NewDelete().Model((*PageModel)(nil))
	if len(sourcePaths) == 0 {
		// Every indexed page is stale. Bun requires a WHERE clause on
		// deletes, so match all rows explicitly.
		q = q.Where("1 = 1")
	} else {
		q = q.Where("source_path NOT IN (?)", bun.In(sourcePaths))
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		_ = s.LogAction("PRUNE_PAGES", fmt.Sprintf("removed: %d", n))
	}
	return int(n), nil
}

// CountPages returns the number of indexed pages.
func (s *bunStore) CountPages() (int, error) {
	ctx := context.Background()
	return s.bun.NewSelect().Model((*PageModel)(nil)).Count(ctx)
}

// --- Build record methods ---

// AddBuildRecord stores a build run and returns its ID.
func (s *bunStore) AddBuildRecord(r *model.BuildRecord) (int, error) {
	ctx := context.Background()
	bm := BuildModel{
		StartedAt:    r.StartedAt,
		DurationMs:   r.Duration.Milliseconds(),
		Mode:         r.Mode,
		PagesBuilt:   r.PagesBuilt,
		PagesSkipped: r.PagesSkipped,
		Drafts:       r.Drafts,
	}
	if _, err := s.bun.NewInsert().Model(&bm).Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	_ = s.LogAction("BUILD", fmt.Sprintf("mode: %s, built: %d, skipped: %d", r.Mode, r.PagesBuilt, r.PagesSkipped))
	return bm.ID, nil
}

// GetRecentBuilds returns the most recent build runs, newest first.
func (s *bunStore) GetRecentBuilds(limit int) ([]model.BuildRecord, error) {
	ctx := context.Background()
	var rows []BuildModel
	err := s.bun.NewSelect().Model(&rows).Order("started_at DESC").Limit(limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.BuildRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, buildModelToModel(r))
	}
	return out, nil
}

// GetLastBuild returns the most recent build run, or nil when none exists.
func (s *bunStore) GetLastBuild() (*model.BuildRecord, error) {
	builds, err := s.GetRecentBuilds(1)
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, nil
	}
	return &builds[0], nil
}

// --- Host key methods ---

// GetKnownHostKey retrieves the pinned public key for a given hostname.
// No key found is not an error, it's a state.
func (s *bunStore) GetKnownHostKey(hostname string) (string, error) {
	ctx := context.Background()
	var km KnownHostModel
	err := s.bun.NewSelect().Model(&km).Where("hostname = ?", hostname).Limit(1).Scan(ctx)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return km.Key, nil
}

// AddKnownHostKey pins a host key, replacing any previous pin. Replacement
// covers legitimately re-provisioned hosts.
func (s *bunStore) AddKnownHostKey(hostname, key string) error {
	ctx := context.Background()

	tx, err := s.bun.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NewDelete().Model((*KnownHostModel)(nil)).Where("hostname = ?", hostname).Exec(ctx); err != nil {
		return err
	}
	if _, err := tx.NewInsert().Model(&KnownHostModel{Hostname: hostname, Key: key}).Exec(ctx); err != nil {
		return MapDBError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	_ = s.LogAction("TRUST_HOST", fmt.Sprintf("hostname: %s", hostname))
	return nil
}

// --- Audit log methods ---

// GetAllAuditLogEntries retrieves the audit log, newest first.
func (s *bunStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	var rows []AuditLogModel
	if err := s.bun.NewSelect().Model(&rows).Order("id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, auditModelToModel(r))
	}
	return out, nil
}

// GetRecentAuditLogEntries retrieves the newest entries up to limit.
func (s *bunStore) GetRecentAuditLogEntries(limit int) ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	var rows []AuditLogModel
	if err := s.bun.NewSelect().Model(&rows).Order("id DESC").Limit(limit).Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, auditModelToModel(r))
	}
	return out, nil
}

// LogAction writes an audit entry attributed to the current OS user.
func (s *bunStore) LogAction(action string, details string) error {
	ctx := context.Background()
	username := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	}
	am := AuditLogModel{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Username:  username,
		Action:    action,
		Details:   details,
	}
	_, err := s.bun.NewInsert().Model(&am).Exec(ctx)
	return err
}
