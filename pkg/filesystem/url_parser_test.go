//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package filesystem_test

import (
	"testing"

	"github.com/joe/pathq/pkg/filesystem"
)

//nolint:funlen // Comprehensive table-driven test with many URL parsing cases
func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantErr  bool
		isRemote bool
		host     string
		port     int
		user     string
		path     string
	}{
		{
			name:     "local absolute path",
			input:    "/var/log",
			isRemote: false,
			path:     "/var/log",
		},
		{
			name:     "local relative path",
			input:    "logs/app",
			isRemote: false,
			path:     "logs/app",
		},
		{
			name:     "basic sftp url",
			input:    "sftp://joe@myserver.com/home/joe/logs",
			isRemote: true,
			host:     "myserver.com",
			port:     22,
			user:     "joe",
			path:     "home/joe/logs",
		},
		{
			name:     "sftp url with port",
			input:    "sftp://joe@myserver.com:2222/archive",
			isRemote: true,
			host:     "myserver.com",
			port:     2222,
			user:     "joe",
			path:     "archive",
		},
		{
			name:     "double slash means absolute remote path",
			input:    "sftp://joe@host//var/log",
			isRemote: true,
			host:     "host",
			port:     22,
			user:     "joe",
			path:     "/var/log",
		},
		{
			name:     "no path means home directory",
			input:    "sftp://joe@host",
			isRemote: true,
			host:     "host",
			port:     22,
			user:     "joe",
			path:     ".",
		},
		{
			name:     "trailing slash only means home directory",
			input:    "sftp://joe@host/",
			isRemote: true,
			host:     "host",
			port:     22,
			user:     "joe",
			path:     ".",
		},
		{
			name:    "missing username",
			input:   "sftp://host/path",
			wantErr: true,
		},
		{
			name:    "missing host",
			input:   "sftp://joe@/path",
			wantErr: true,
		},
		{
			name:    "bad port",
			input:   "sftp://joe@host:notaport/path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := filesystem.ParsePath(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParsePath(%q) expected error, got %+v", tt.input, parsed)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) unexpected error: %v", tt.input, err)
			}

			if parsed.IsRemote != tt.isRemote {
				t.Errorf("IsRemote = %v, want %v", parsed.IsRemote, tt.isRemote)
			}
			if !tt.isRemote {
				if parsed.LocalPath != tt.path {
					t.Errorf("LocalPath = %q, want %q", parsed.LocalPath, tt.path)
				}
				return
			}
			if parsed.Host != tt.host {
				t.Errorf("Host = %q, want %q", parsed.Host, tt.host)
			}
			if parsed.Port != tt.port {
				t.Errorf("Port = %d, want %d", parsed.Port, tt.port)
			}
			if parsed.User != tt.user {
				t.Errorf("User = %q, want %q", parsed.User, tt.user)
			}
			if parsed.Path != tt.path {
				t.Errorf("Path = %q, want %q", parsed.Path, tt.path)
			}
		})
	}
}

func TestCreateFileSystemLocal(t *testing.T) {
	t.Parallel()

	fs, base, closer, err := filesystem.CreateFileSystem("/tmp")
	if err != nil {
		t.Fatalf("CreateFileSystem: %v", err)
	}
	if closer != nil {
		t.Error("Local filesystems need no closer")
	}
	if base != "/tmp" {
		t.Errorf("Base path = %q, want /tmp", base)
	}
	if _, ok := fs.(*filesystem.RealFileSystem); !ok {
		t.Errorf("Expected a RealFileSystem, got %T", fs)
	}
}
