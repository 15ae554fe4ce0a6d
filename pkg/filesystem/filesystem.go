// Package filesystem provides an abstraction layer for the directory-listing
// and stat operations the query engine needs, so queries can run against
// local disks, SFTP servers, or an in-memory mock interchangeably.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirEntry describes one child of a directory: its name and whether it is
// itself a directory. Symbolic links are reported as non-directories, so a
// traversal over DirEntry values never follows links.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem is the set of primitives the query engine requires from a host
// filesystem. Implementations exist for the local disk, SFTP servers, and an
// in-memory mock for tests.
type FileSystem interface {
	// ReadDir lists the direct children of dir, each tagged file-or-directory.
	ReadDir(dir string) ([]DirEntry, error)

	// Stat returns file information, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Lstat returns file information without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// RealPath resolves path to a canonical form suitable for deduplication.
	RealPath(path string) (string, error)

	// Join joins path elements using the separator convention of this
	// filesystem (SFTP always uses forward slashes).
	Join(elem ...string) string
}

// RealFileSystem implements FileSystem using actual os/filepath functions.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// ReadDir lists the direct children of dir.
// os.ReadDir reports symlinks with their own type (not their target's), so
// a symlinked directory shows up here as a non-directory entry.
func (fs *RealFileSystem) ReadDir(dir string) ([]DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	children := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		children = append(children, DirEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
		})
	}

	return children, nil
}

// Stat returns file information, following symlinks.
func (fs *RealFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// Lstat returns file information without following symlinks.
func (fs *RealFileSystem) Lstat(path string) (os.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat %s: %w", path, err)
	}

	return info, nil
}

// RealPath resolves symlinks and relative segments to a canonical absolute
// path. Falls back to a cleaned absolute path when resolution fails (e.g.
// the path no longer exists).
func (fs *RealFileSystem) RealPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		path = resolved
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	return abs, nil
}

// Join joins path elements with the local separator.
func (fs *RealFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}
