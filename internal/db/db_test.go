// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/zuhairmbj123/zws/internal/model"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	dsn := "file:test_" + t.Name() + "?mode=memory&cache=shared"
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return dsn
}

func TestInitDB_Migrations_Applied(t *testing.T) {
	dsn := newTestDB(t)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sql.DB for inspection: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	rows, err := sqlDB.Query("PRAGMA table_info(schema_migrations)")
	if err != nil {
		t.Fatalf("failed to query schema_migrations table info: %v", err)
	}
	defer func() { _ = rows.Close() }()

	foundAppliedAt := false
	for rows.Next() {
		var cid int
		var name string
		var typ string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("failed scanning pragma row: %v", err)
		}
		if name == "applied_at" {
			foundAppliedAt = true
			break
		}
	}
	if !foundAppliedAt {
		t.Fatalf("expected schema_migrations.applied_at column to exist after migrations")
	}
}

func TestUpsertPage_InsertThenUpdate(t *testing.T) {
	_ = newTestDB(t)

	p := &model.Page{
		SourcePath: "blog/hello.md",
		Slug:       "hello",
		Title:      "Hello",
		SourceHash: "aaaa",
		Date:       time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := UpsertPage(p); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected ID to be set after insert")
	}
	firstID := p.ID

	p.Title = "Hello, World"
	p.SourceHash = "bbbb"
	if err := UpsertPage(p); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if p.ID != firstID {
		t.Fatalf("upsert created a new row: id %d != %d", p.ID, firstID)
	}

	got, err := GetPageBySourcePath("blog/hello.md")
	if err != nil {
		t.Fatalf("GetPageBySourcePath failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected page, got nil")
	}
	if got.Title != "Hello, World" || got.SourceHash != "bbbb" {
		t.Errorf("update not persisted: %+v", got)
	}

	count, err := CountPages()
	if err != nil {
		t.Fatalf("CountPages failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 page, got %d", count)
	}
}

func TestGetPageBySourcePath_Missing(t *testing.T) {
	_ = newTestDB(t)

	got, err := GetPageBySourcePath("does/not/exist.md")
	if err != nil {
		t.Fatalf("expected nil error for missing page, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil page, got %+v", got)
	}
}

func TestGetPageBySlug_NotFound(t *testing.T) {
	_ = newTestDB(t)

	if _, err := GetPageBySlug("nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPublishedPages_ExcludesDrafts(t *testing.T) {
	_ = newTestDB(t)

	pages := []model.Page{
		{SourcePath: "a.md", Slug: "a", Title: "A", SourceHash: "1", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{SourcePath: "b.md", Slug: "b", Title: "B", SourceHash: "2", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{SourcePath: "c.md", Slug: "c", Title: "C", SourceHash: "3", Draft: true},
	}
	for i := range pages {
		if err := UpsertPage(&pages[i]); err != nil {
			t.Fatalf("upsert %s failed: %v", pages[i].Slug, err)
		}
	}

	published, err := GetPublishedPages()
	if err != nil {
		t.Fatalf("GetPublishedPages failed: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published pages, got %d", len(published))
	}
	if published[0].Slug != "b" || published[1].Slug != "a" {
		t.Errorf("expected newest-first order [b a], got [%s %s]", published[0].Slug, published[1].Slug)
	}
}

func TestDeletePagesNotIn_PrunesAndAudits(t *testing.T) {
	_ = newTestDB(t)

	for _, sp := range []string{"keep.md", "stale.md"} {
		p := &model.Page{SourcePath: sp, Slug: sp[:len(sp)-3], Title: sp, SourceHash: "x"}
		if err := UpsertPage(p); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	n, err := DeletePagesNotIn([]string{"keep.md"})
	if err != nil {
		t.Fatalf("DeletePagesNotIn failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pruned page, got %d", n)
	}

	all, err := GetAllPages()
	if err != nil {
		t.Fatalf("GetAllPages failed: %v", err)
	}
	if len(all) != 1 || all[0].SourcePath != "keep.md" {
		t.Fatalf("unexpected remaining pages: %+v", all)
	}

	entries, err := GetAllAuditLogEntries()
	if err != nil {
		t.Fatalf("GetAllAuditLogEntries failed: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.Action == "PRUNE_PAGES" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected a PRUNE_PAGES audit entry, got %+v", entries)
	}
}

func TestDeletePagesNotIn_EmptyListRemovesAll(t *testing.T) {
	_ = newTestDB(t)

	p := &model.Page{SourcePath: "only.md", Slug: "only", Title: "Only", SourceHash: "x"}
	if err := UpsertPage(p); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	n, err := DeletePagesNotIn(nil)
	if err != nil {
		t.Fatalf("DeletePagesNotIn(nil) failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected all pages removed, got %d", n)
	}
}

func TestBuildRecords_RecentAndLast(t *testing.T) {
	_ = newTestDB(t)

	last, err := GetLastBuild()
	if err != nil {
		t.Fatalf("GetLastBuild on empty db failed: %v", err)
	}
	if last != nil {
		t.Fatalf("expected nil last build, got %+v", last)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		r := &model.BuildRecord{
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			Duration:   120 * time.Millisecond,
			Mode:       "incremental",
			PagesBuilt: i,
		}
		if _, err := AddBuildRecord(r); err != nil {
			t.Fatalf("AddBuildRecord failed: %v", err)
		}
	}

	builds, err := GetRecentBuilds(2)
	if err != nil {
		t.Fatalf("GetRecentBuilds failed: %v", err)
	}
	if len(builds) != 2 {
		t.Fatalf("expected 2 builds, got %d", len(builds))
	}
	if !builds[0].StartedAt.After(builds[1].StartedAt) {
		t.Errorf("expected newest-first order, got %v then %v", builds[0].StartedAt, builds[1].StartedAt)
	}

	last, err = GetLastBuild()
	if err != nil {
		t.Fatalf("GetLastBuild failed: %v", err)
	}
	if last == nil || last.PagesBuilt != 2 {
		t.Errorf("expected last build with PagesBuilt=2, got %+v", last)
	}
}

func TestKnownHostKey_PinAndReplace(t *testing.T) {
	_ = newTestDB(t)

	key, err := GetKnownHostKey("web01")
	if err != nil {
		t.Fatalf("GetKnownHostKey failed: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key for unknown host, got %q", key)
	}

	if err := AddKnownHostKey("web01", "ssh-ed25519 AAAA1"); err != nil {
		t.Fatalf("AddKnownHostKey failed: %v", err)
	}
	if err := AddKnownHostKey("web01", "ssh-ed25519 AAAA2"); err != nil {
		t.Fatalf("replacing host key failed: %v", err)
	}

	key, err = GetKnownHostKey("web01")
	if err != nil {
		t.Fatalf("GetKnownHostKey failed: %v", err)
	}
	if key != "ssh-ed25519 AAAA2" {
		t.Errorf("expected replaced key, got %q", key)
	}
}

func TestLogAction_RecordsEntry(t *testing.T) {
	_ = newTestDB(t)

	if err := LogAction("DEPLOY", "target: prod"); err != nil {
		t.Fatalf("LogAction failed: %v", err)
	}

	entries, err := GetRecentAuditLogEntries(1)
	if err != nil {
		t.Fatalf("GetRecentAuditLogEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Action != "DEPLOY" || e.Details != "target: prod" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Username == "" || e.Timestamp == "" {
		t.Errorf("expected username and timestamp to be set: %+v", e)
	}
}
