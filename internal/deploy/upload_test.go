// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package deploy

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// fakeRemote records uploader calls in memory.
type fakeRemote struct {
	dirs    map[string]bool
	files   map[string][]byte
	removed []string

	failCreate bool
	failRename bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{dirs: map[string]bool{}, files: map[string][]byte{}}
}

func (f *fakeRemote) MkdirAll(p string) error { f.dirs[p] = true; return nil }

func (f *fakeRemote) Chmod(p string, mode os.FileMode) error {
	if _, ok := f.files[p]; !ok {
		return errors.New("chmod on missing file " + p)
	}
	return nil
}

func (f *fakeRemote) Rename(oldname, newname string) error {
	if f.failRename {
		return errors.New("rename refused")
	}
	data, ok := f.files[oldname]
	if !ok {
		return errors.New("rename of missing file " + oldname)
	}
	delete(f.files, oldname)
	f.files[newname] = data
	return nil
}

func (f *fakeRemote) Remove(p string) error {
	f.removed = append(f.removed, p)
	delete(f.files, p)
	return nil
}

type fakeFile struct {
	remote *fakeRemote
	path   string
	buf    bytes.Buffer
}

func (w *fakeFile) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *fakeFile) Close() error {
	w.remote.files[w.path] = w.buf.Bytes()
	return nil
}

func (f *fakeRemote) Create(p string) (io.WriteCloser, error) {
	if f.failCreate {
		return nil, errors.New("create refused")
	}
	return &fakeFile{remote: f, path: p}, nil
}

func writeLocalSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":        "<h1>home</h1>",
		"launch/index.html": "<h1>launch</h1>",
		"css/site.css":      "body{}",
		"sitemap.xml":       "<urlset/>",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestUploadTree_CopiesLayoutAndCounts(t *testing.T) {
	local := writeLocalSite(t)
	remote := newFakeRemote()

	stats, err := uploadTree(remote, local, "/var/www/acme")
	if err != nil {
		t.Fatalf("uploadTree failed: %v", err)
	}
	if stats.Files != 4 {
		t.Errorf("Files = %d, want 4", stats.Files)
	}

	var wantBytes int64
	for _, content := range []string{"<h1>home</h1>", "<h1>launch</h1>", "body{}", "<urlset/>"} {
		wantBytes += int64(len(content))
	}
	if stats.Bytes != wantBytes {
		t.Errorf("Bytes = %d, want %d", stats.Bytes, wantBytes)
	}

	for _, p := range []string{
		"/var/www/acme/index.html",
		"/var/www/acme/launch/index.html",
		"/var/www/acme/css/site.css",
		"/var/www/acme/sitemap.xml",
	} {
		if _, ok := remote.files[p]; !ok {
			t.Errorf("missing remote file %s", p)
		}
	}
	if string(remote.files["/var/www/acme/launch/index.html"]) != "<h1>launch</h1>" {
		t.Error("remote file content mismatch")
	}

	if !remote.dirs["/var/www/acme"] || !remote.dirs["/var/www/acme/launch"] || !remote.dirs["/var/www/acme/css"] {
		t.Errorf("missing remote directories: %v", remote.dirs)
	}

	// no temp names survive a successful upload
	for p := range remote.files {
		if strings.Contains(p, ".zws.") {
			t.Errorf("temp file left behind: %s", p)
		}
	}
}

func TestUploadTree_CreateFailureSurfaces(t *testing.T) {
	local := writeLocalSite(t)
	remote := newFakeRemote()
	remote.failCreate = true

	if _, err := uploadTree(remote, local, "/var/www/acme"); err == nil {
		t.Fatal("expected an error when remote create fails")
	}
}

func TestUploadTree_RenameFailureCleansUpTemp(t *testing.T) {
	local := writeLocalSite(t)
	remote := newFakeRemote()
	remote.failRename = true

	if _, err := uploadTree(remote, local, "/var/www/acme"); err == nil {
		t.Fatal("expected an error when remote rename fails")
	}
	if len(remote.removed) == 0 {
		t.Error("expected temp file cleanup after rename failure")
	}
	if !strings.Contains(remote.removed[0], ".zws.") {
		t.Errorf("removed %q, expected a temp name", remote.removed[0])
	}
}

func TestWalkLocalFiles(t *testing.T) {
	local := writeLocalSite(t)

	var rels []string
	var total int64
	err := walkLocalFiles(local, func(rel string, size int64) {
		rels = append(rels, rel)
		total += size
	})
	if err != nil {
		t.Fatalf("walkLocalFiles failed: %v", err)
	}
	sort.Strings(rels)
	want := []string{"css/site.css", "index.html", "launch/index.html", "sitemap.xml"}
	if len(rels) != len(want) {
		t.Fatalf("got %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("rels[%d] = %q, want %q", i, rels[i], want[i])
		}
	}
	if total <= 0 {
		t.Error("expected positive total size")
	}
}

func TestRemoteJoin(t *testing.T) {
	cases := []struct {
		root string
		want string
	}{
		{"/var/www/acme", "/var/www/acme"},
		{"/var/www/acme/", "/var/www/acme"},
		{"/var/www/acme///", "/var/www/acme"},
	}
	for _, c := range cases {
		if got := remoteJoin(c.root); got != c.want {
			t.Errorf("remoteJoin(%q) = %q, want %q", c.root, got, c.want)
		}
	}
	if got := remoteJoin("/var/www/acme/", "launch", "index.html"); got != "/var/www/acme/launch/index.html" {
		t.Errorf("remoteJoin with parts = %q", got)
	}
}
