// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package deploy

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// remoteFS is the subset of the SFTP client the uploader needs. It exists
// so upload logic can be exercised against a fake in tests.
type remoteFS interface {
	MkdirAll(path string) error
	Create(path string) (io.WriteCloser, error)
	Chmod(path string, mode os.FileMode) error
	Rename(oldname, newname string) error
	Remove(path string) error
}

// sftpFS adapts *sftp.Client's Create (which returns *sftp.File) to the
// remoteFS interface.
type sftpFS struct {
	d *Deployer
}

func (s sftpFS) MkdirAll(p string) error                 { return s.d.sftp.MkdirAll(p) }
func (s sftpFS) Chmod(p string, m os.FileMode) error     { return s.d.sftp.Chmod(p, m) }
func (s sftpFS) Rename(oldname, newname string) error    { return s.d.sftp.Rename(oldname, newname) }
func (s sftpFS) Remove(p string) error                   { return s.d.sftp.Remove(p) }
func (s sftpFS) Create(p string) (io.WriteCloser, error) { return s.d.sftp.Create(p) }

// UploadStats summarizes a completed upload.
type UploadStats struct {
	Files int
	Bytes int64
}

// UploadTree uploads every regular file under localRoot to remoteRoot,
// preserving the directory layout. Each file is written to a temporary
// name and renamed into place so a half-written page is never served.
func (d *Deployer) UploadTree(localRoot, remoteRoot string) (UploadStats, error) {
	return uploadTree(sftpFS{d}, localRoot, remoteRoot)
}

func uploadTree(remote remoteFS, localRoot, remoteRoot string) (UploadStats, error) {
	var stats UploadStats

	if err := remote.MkdirAll(remoteRoot); err != nil {
		return stats, fmt.Errorf("failed to create remote root %s: %w", remoteRoot, err)
	}

	err := filepath.WalkDir(localRoot, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(localRoot, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		// Remote paths always use forward slashes regardless of the
		// local OS.
		remotePath := path.Join(remoteRoot, filepath.ToSlash(rel))

		if entry.IsDir() {
			if err := remote.MkdirAll(remotePath); err != nil {
				return fmt.Errorf("failed to create remote directory %s: %w", remotePath, err)
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		n, err := uploadFile(remote, p, remotePath)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += n
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// uploadFile copies one local file to remotePath via a temporary file and
// an atomic rename. Returns the number of bytes written.
func uploadFile(remote remoteFS, localPath, remotePath string) (int64, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer src.Close()

	tmpPath := fmt.Sprintf("%s.zws.%d", remotePath, time.Now().UnixNano())
	dst, err := remote.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file on remote: %w", err)
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		// Best effort to clean up the failed upload.
		_ = remote.Remove(tmpPath)
		return 0, fmt.Errorf("failed to write %s on remote: %w", tmpPath, err)
	}
	if err := dst.Close(); err != nil {
		_ = remote.Remove(tmpPath)
		return 0, fmt.Errorf("failed to close %s on remote: %w", tmpPath, err)
	}

	if err := remote.Chmod(tmpPath, 0644); err != nil {
		_ = remote.Remove(tmpPath)
		return 0, fmt.Errorf("failed to chmod temporary file: %w", err)
	}

	if err := remote.Rename(tmpPath, remotePath); err != nil {
		_ = remote.Remove(tmpPath)
		return 0, fmt.Errorf("failed to atomically rename %s into place: %w", remotePath, err)
	}

	return n, nil
}

// walkLocalFiles visits every regular file under root and calls fn with
// its slash-separated relative path and size.
func walkLocalFiles(root string, fn func(rel string, size int64)) error {
	return filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		fn(filepath.ToSlash(rel), info.Size())
		return nil
	})
}

// remoteJoin is a helper for callers that build remote paths from
// user-supplied roots. It trims trailing slashes before joining.
func remoteJoin(root string, parts ...string) string {
	return path.Join(append([]string{strings.TrimRight(root, "/")}, parts...)...)
}
