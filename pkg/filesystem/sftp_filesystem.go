package filesystem

import (
	"fmt"
	"os"
	"path"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem for a remote SFTP host.
//
// Queries pull entries one directory listing at a time, so a single SFTP
// session is enough; there is no request concurrency to pool for.
type SFTPFileSystem struct {
	conn   *SFTPConnection
	client *sftp.Client
}

// NewSFTPFileSystem creates a new SFTP filesystem using an established
// connection.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{
		conn:   conn,
		client: conn.Client(),
	}
}

// ReadDir lists the direct children of a remote directory.
func (fs *SFTPFileSystem) ReadDir(dir string) ([]DirEntry, error) {
	infos, err := fs.client.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote directory %s: %w", dir, err)
	}

	children := make([]DirEntry, 0, len(infos))
	for _, info := range infos {
		children = append(children, DirEntry{
			Name:  info.Name(),
			IsDir: info.IsDir(),
		})
	}

	return children, nil
}

// Stat returns file information for a remote path, following symlinks.
func (fs *SFTPFileSystem) Stat(p string) (os.FileInfo, error) {
	info, err := fs.client.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote path %s: %w", p, err)
	}

	return info, nil
}

// Lstat returns file information for a remote path without following symlinks.
func (fs *SFTPFileSystem) Lstat(p string) (os.FileInfo, error) {
	info, err := fs.client.Lstat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat remote path %s: %w", p, err)
	}

	return info, nil
}

// RealPath canonicalizes a remote path via the server's REALPATH request.
// Falls back to a cleaned path if the server cannot resolve it.
func (fs *SFTPFileSystem) RealPath(p string) (string, error) {
	resolved, err := fs.client.RealPath(p)
	if err != nil {
		return path.Clean(p), nil
	}

	return resolved, nil
}

// Join joins path elements with forward slashes (the SFTP convention).
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Close closes the underlying connection.
func (fs *SFTPFileSystem) Close() error {
	return fs.conn.Close()
}
