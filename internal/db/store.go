// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/zuhairmbj123/zws/internal/model"
)

// Store defines the interface for all database operations in ZWS.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Page methods
	UpsertPage(p *model.Page) error
	GetAllPages() ([]model.Page, error)
	GetPublishedPages() ([]model.Page, error)
	GetPageBySlug(slug string) (*model.Page, error)
	GetPageBySourcePath(sourcePath string) (*model.Page, error)
	DeletePagesNotIn(sourcePaths []string) (int, error)
	CountPages() (int, error)
	SearchPages(query string) ([]model.Page, error)

	// Build record methods
	AddBuildRecord(r *model.BuildRecord) (int, error)
	GetRecentBuilds(limit int) ([]model.BuildRecord, error)
	GetLastBuild() (*model.BuildRecord, error)

	// Host key methods
	GetKnownHostKey(hostname string) (string, error)
	AddKnownHostKey(hostname, key string) error

	// Audit log methods
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
	GetRecentAuditLogEntries(limit int) ([]model.AuditLogEntry, error)
	LogAction(action string, details string) error
}
