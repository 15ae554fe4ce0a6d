package filesystem

import (
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths use forward slashes regardless of host OS.
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string]*mockFile
	failDirs map[string]error
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	path    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return fi.perm | os.ModeDir
	}
	return fi.perm
}
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string]*mockFile),
		failDirs: make(map[string]error),
	}
}

// ReadDir lists the direct children of dir in sorted name order.
func (fs *MockFileSystem) ReadDir(dir string) ([]DirEntry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err, failing := fs.failDirs[dir]; failing {
		return nil, err
	}

	if dir != "." {
		file, exists := fs.files[dir]
		if !exists {
			return nil, os.ErrNotExist
		}
		if !file.isDir {
			return nil, os.ErrInvalid
		}
	}

	prefix := dir + "/"
	if dir == "." {
		prefix = ""
	}

	var children []DirEntry
	for p, f := range fs.files {
		if p == dir || !strings.HasPrefix(p, prefix) {
			continue
		}
		// Direct children only
		if strings.Contains(p[len(prefix):], "/") {
			continue
		}
		children = append(children, DirEntry{
			Name:  path.Base(p),
			IsDir: f.isDir,
		})
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})

	return children, nil
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(p string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if p == "." {
		return &mockFileInfo{name: ".", isDir: true, perm: 0755}, nil
	}

	file, exists := fs.files[p]
	if !exists {
		return nil, os.ErrNotExist
	}

	return &mockFileInfo{
		name:    path.Base(p),
		size:    file.size,
		modTime: file.modTime,
		isDir:   file.isDir,
		perm:    file.perm,
	}, nil
}

// Lstat returns file information. The mock has no symlinks, so this is
// identical to Stat.
func (fs *MockFileSystem) Lstat(p string) (os.FileInfo, error) {
	return fs.Stat(p)
}

// RealPath returns the cleaned path. The mock has no symlinks or mount
// indirection, so a cleaned path is already canonical.
func (fs *MockFileSystem) RealPath(p string) (string, error) {
	return path.Clean(p), nil
}

// Join joins path elements with forward slashes.
func (fs *MockFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Helper methods for testing

// AddFile adds a file of the given size to the mock filesystem, creating
// parent directories as needed.
func (fs *MockFileSystem) AddFile(p string, size int64, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.addParentsLocked(p, modTime)
	fs.files[p] = &mockFile{
		path:    p,
		size:    size,
		modTime: modTime,
		isDir:   false,
		perm:    0644,
	}
}

// AddDir adds a directory to the mock filesystem, creating parents as needed.
func (fs *MockFileSystem) AddDir(p string, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.addParentsLocked(p, modTime)
	fs.files[p] = &mockFile{
		path:    p,
		modTime: modTime,
		isDir:   true,
		perm:    0755,
	}
}

// FailDir makes ReadDir on the given directory return err, simulating a
// permission or I/O failure. The directory itself still stats fine.
func (fs *MockFileSystem) FailDir(p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.files[p]; !exists {
		fs.files[p] = &mockFile{path: p, modTime: time.Now(), isDir: true, perm: 0755}
	}
	fs.failDirs[p] = err
}

// addParentsLocked creates all parent directories of p. Assumes the lock is
// held. Iterative so that arbitrarily deep trees never recurse.
func (fs *MockFileSystem) addParentsLocked(p string, modTime time.Time) {
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if _, exists := fs.files[dir]; exists {
			break
		}
		fs.files[dir] = &mockFile{path: dir, modTime: modTime, isDir: true, perm: 0755}
	}
}

// Exists checks if a path exists in the mock filesystem.
func (fs *MockFileSystem) Exists(p string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[p]
	return exists
}

// ListPaths returns all paths in the mock filesystem, sorted.
func (fs *MockFileSystem) ListPaths() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
