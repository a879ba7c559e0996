// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core data structures used throughout ZWS.
// These types represent site content and operational records; they are
// deliberately plain so every layer (db, build, ui) can share them.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Page represents a single markdown source document and its rendered output.
// It is the core entity the build pipeline tracks.
type Page struct {
	ID          int
	SourcePath  string // path of the markdown file, relative to the content dir
	Slug        string
	Title       string
	Description string
	Tags        string // comma-separated, normalized lowercase
	Date        time.Time
	Draft       bool
	SourceHash  string // hex-encoded SHA-256 of the raw source file
	OutputPath  string // path of the rendered file, relative to the output dir
	UpdatedAt   time.Time
}

// Route returns the site-relative URL path for the page, always with a
// leading slash and a trailing slash (directory-style URLs).
func (p Page) Route() string {
	if p.Slug == "" {
		return "/"
	}
	return "/" + p.Slug + "/"
}

// String returns a short human-readable identifier for the page.
func (p Page) String() string {
	return fmt.Sprintf("%s (%s)", p.Slug, p.SourcePath)
}

// TagList splits the comma-separated Tags field into a cleaned slice.
// Empty entries are dropped.
func (p Page) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

// HasTag reports whether the page carries the given tag (case-insensitive).
func (p Page) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range p.TagList() {
		if t == tag {
			return true
		}
	}
	return false
}

// BuildRecord captures one run of the build pipeline.
type BuildRecord struct {
	ID           int
	StartedAt    time.Time
	Duration     time.Duration
	Mode         string // "full", "incremental"
	PagesBuilt   int
	PagesSkipped int
	Drafts       bool
}

// DeployTarget describes a remote web root that receives the generated site.
type DeployTarget struct {
	ID         int
	Name       string
	Host       string // host or host:port; port 22 assumed when absent
	User       string
	RemoteRoot string // absolute path of the web root on the remote host
	KeyPath    string // local path of the SSH private key; empty means agent-only
}

// String returns the name@host form used in logs and the CLI.
func (t DeployTarget) String() string {
	return fmt.Sprintf("%s (%s@%s)", t.Name, t.User, t.Host)
}

// KnownHostKey pins a remote host's public key for deploy verification.
type KnownHostKey struct {
	Hostname string
	Key      string // authorized_keys wire format, as presented by the host
}

// AuditLogEntry is a single row of the operational audit trail.
type AuditLogEntry struct {
	ID        int
	Timestamp string
	Username  string
	Action    string
	Details   string
}
