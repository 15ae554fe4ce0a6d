// Package pathinfo exposes file metadata (size, timestamps, age, calendar
// membership) as direct accessors instead of raw numbers, so query
// predicates read like `p.Size().MB() > 10` rather than manual arithmetic
// over stat results.
package pathinfo

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joe/pathq/pkg/filesystem"
)

// Path is a lightweight handle to one filesystem entry. The path string is
// immutable; the stat result is fetched lazily and cached for the lifetime
// of the handle, so repeated property access costs one filesystem call.
//
// Age and calendar properties are computed against a fixed base time stamped
// at construction, which keeps predicate evaluation deterministic within one
// traversal.
type Path struct {
	fs   filesystem.FileSystem
	raw  string
	base time.Time

	statOnce sync.Once
	statInfo os.FileInfo
	statErr  error
}

// New creates a Path handle on the local filesystem.
func New(raw string) *Path {
	return NewOn(filesystem.NewRealFileSystem(), raw)
}

// NewOn creates a Path handle on the given filesystem.
func NewOn(fs filesystem.FileSystem, raw string) *Path {
	return &Path{
		fs:   fs,
		raw:  raw,
		base: time.Now(),
	}
}

// WithBaseTime returns a new handle for the same path whose age and calendar
// properties are computed relative to base instead of the construction time.
// The stat cache is not shared.
func (p *Path) WithBaseTime(base time.Time) *Path {
	return &Path{
		fs:   p.fs,
		raw:  p.raw,
		base: base,
	}
}

// String returns the path string.
func (p *Path) String() string {
	return p.raw
}

// Name returns the last element of the path.
func (p *Path) Name() string {
	return filepath.Base(p.raw)
}

// Ext returns the file name extension, including the dot.
func (p *Path) Ext() string {
	return filepath.Ext(p.raw)
}

// Dir returns all but the last element of the path.
func (p *Path) Dir() string {
	return filepath.Dir(p.raw)
}

// FileSystem returns the filesystem this handle reads from.
func (p *Path) FileSystem() filesystem.FileSystem {
	return p.fs
}

// Info returns the cached stat result, fetching it on first use.
func (p *Path) Info() (os.FileInfo, error) {
	p.statOnce.Do(func() {
		p.statInfo, p.statErr = p.fs.Stat(p.raw)
	})

	return p.statInfo, p.statErr
}

// Exists reports whether the path exists.
func (p *Path) Exists() bool {
	_, err := p.Info()
	return err == nil
}

// IsFile reports whether the path is a regular file.
func (p *Path) IsFile() bool {
	info, err := p.Info()
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether the path is a directory.
func (p *Path) IsDir() bool {
	info, err := p.Info()
	return err == nil && info.IsDir()
}

// Size returns the size view of this path. Missing or unreadable paths have
// size zero.
func (p *Path) Size() Size {
	info, err := p.Info()
	if err != nil || info.IsDir() {
		return Size{}
	}

	return Size{Bytes: info.Size()}
}

// Modified returns the modification-time view.
func (p *Path) Modified() Time {
	info, err := p.Info()
	if err != nil {
		return Time{t: p.base, base: p.base}
	}

	return Time{t: info.ModTime(), base: p.base}
}

// Accessed returns the access-time view. On platforms where access time is
// unavailable it falls back to the modification time.
func (p *Path) Accessed() Time {
	info, err := p.Info()
	if err != nil {
		return Time{t: p.base, base: p.base}
	}

	if atime, _, ok := extraTimes(info); ok {
		return Time{t: atime, base: p.base}
	}

	return Time{t: info.ModTime(), base: p.base}
}

// Changed returns the inode-change-time view. On platforms where change time
// is unavailable it falls back to the modification time.
func (p *Path) Changed() Time {
	info, err := p.Info()
	if err != nil {
		return Time{t: p.base, base: p.base}
	}

	if _, ctime, ok := extraTimes(info); ok {
		return Time{t: ctime, base: p.base}
	}

	return Time{t: info.ModTime(), base: p.base}
}

// Age returns the age of the path based on its change time (modification
// time where change time is unavailable). A missing path has age zero.
func (p *Path) Age() Age {
	return p.Changed().Age()
}
