// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package build

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteFileAtomic_CreatesParentsAndWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "index.html")

	if err := WriteFileAtomic(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("got %q, want hello", data)
	}

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the final file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomic_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := WriteFileAtomic(path, []byte("one"), 0644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("two"), 0644); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "two" {
		t.Errorf("got %q, want two", data)
	}
}

func TestWriteFileAtomic_Mode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := WriteFileAtomic(path, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopyTree_CopiesAndSkipsHidden(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		full := filepath.Join(src, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("css/site.css", "body{}")
	write("logo.svg", "<svg/>")
	write(".DS_Store", "junk")
	write(".git/config", "junk")

	n, err := CopyTree(src, dst)
	if err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}
	if n != 2 {
		t.Errorf("copied = %d, want 2", n)
	}

	if _, err := os.Stat(filepath.Join(dst, "css", "site.css")); err != nil {
		t.Error("css/site.css not copied")
	}
	if _, err := os.Stat(filepath.Join(dst, "logo.svg")); err != nil {
		t.Error("logo.svg not copied")
	}
	if _, err := os.Stat(filepath.Join(dst, ".DS_Store")); !os.IsNotExist(err) {
		t.Error("hidden file should be skipped")
	}
	if _, err := os.Stat(filepath.Join(dst, ".git")); !os.IsNotExist(err) {
		t.Error("hidden dir should be skipped")
	}
}

func TestCopyTree_MissingSrcIsNotAnError(t *testing.T) {
	n, err := CopyTree(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}
	if n != 0 {
		t.Errorf("copied = %d, want 0", n)
	}
}

func TestCopyTree_SrcIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := CopyTree(file, t.TempDir()); err == nil {
		t.Error("expected an error for a non-directory source")
	}
}
