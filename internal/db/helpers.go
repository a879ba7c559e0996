// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package-level convenience wrappers over the initialized store. Higher
// layers call these instead of threading a Store through every call site;
// tests that need isolation construct a Store via NewStoreFromDSN instead.
package db

import (
	"errors"

	"github.com/zuhairmbj123/zws/internal/model"
)

// ErrNotInitialized is returned by the package helpers before InitDB has run.
var ErrNotInitialized = errors.New("database not initialized")

// GetStore returns the package-level store, or nil before InitDB.
func GetStore() Store {
	return store
}

// SetStore overrides the package-level store. Intended for tests and
// alternative bootstraps.
func SetStore(s Store) {
	store = s
}

func UpsertPage(p *model.Page) error {
	if store == nil {
		return ErrNotInitialized
	}
	return store.UpsertPage(p)
}

func GetAllPages() ([]model.Page, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetAllPages()
}

func GetPublishedPages() ([]model.Page, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetPublishedPages()
}

func GetPageBySlug(slug string) (*model.Page, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetPageBySlug(slug)
}

func GetPageBySourcePath(sourcePath string) (*model.Page, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetPageBySourcePath(sourcePath)
}

func DeletePagesNotIn(sourcePaths []string) (int, error) {
	if store == nil {
		return 0, ErrNotInitialized
	}
	return store.DeletePagesNotIn(sourcePaths)
}

func CountPages() (int, error) {
	if store == nil {
		return 0, ErrNotInitialized
	}
	return store.CountPages()
}

func AddBuildRecord(r *model.BuildRecord) (int, error) {
	if store == nil {
		return 0, ErrNotInitialized
	}
	return store.AddBuildRecord(r)
}

func GetRecentBuilds(limit int) ([]model.BuildRecord, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetRecentBuilds(limit)
}

func GetLastBuild() (*model.BuildRecord, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetLastBuild()
}

func GetKnownHostKey(hostname string) (string, error) {
	if store == nil {
		return "", ErrNotInitialized
	}
	return store.GetKnownHostKey(hostname)
}

func AddKnownHostKey(hostname, key string) error {
	if store == nil {
		return ErrNotInitialized
	}
	return store.AddKnownHostKey(hostname, key)
}

func GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetAllAuditLogEntries()
}

func GetRecentAuditLogEntries(limit int) ([]model.AuditLogEntry, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetRecentAuditLogEntries(limit)
}

func LogAction(action, details string) error {
	if store == nil {
		return ErrNotInitialized
	}
	return store.LogAction(action, details)
}
