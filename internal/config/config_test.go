//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/joe/pathq/internal/config"
	"github.com/joe/pathq/pkg/filesystem"
)

func TestEntryTypeParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.EntryType
		wantErr bool
	}{
		{input: "file", want: config.Files},
		{input: "files", want: config.Files},
		{input: "f", want: config.Files},
		{input: "dir", want: config.Dirs},
		{input: "DIR", want: config.Dirs},
		{input: "any", want: config.Any},
		{input: "all", want: config.Any},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseEntryType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseEntryType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortKeyParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.SortKey
		wantErr bool
	}{
		{input: "size", want: config.BySize},
		{input: "mtime", want: config.ByModTime},
		{input: "modified", want: config.ByModTime},
		{input: "name", want: config.ByName},
		{input: "path", want: config.ByPath},
		{input: "none", want: config.Unsorted},
		{input: "inode", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseSortKey(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSortKey(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSizeFlagUnmarshal(t *testing.T) {
	t.Parallel()

	var f config.SizeFlag
	if err := f.UnmarshalText([]byte("1.5GiB")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if !f.Set || f.Bytes != 1610612736 {
		t.Errorf("Unexpected flag state: %+v", f)
	}

	var bad config.SizeFlag
	if err := bad.UnmarshalText([]byte("lots")); err == nil {
		t.Error("Expected error for unparseable size")
	}
}

func TestAgeFlagUnmarshal(t *testing.T) {
	t.Parallel()

	var f config.AgeFlag
	if err := f.UnmarshalText([]byte("2h")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if !f.Set || f.Duration != 2*time.Hour {
		t.Errorf("Unexpected flag state: %+v", f)
	}
}

//nolint:funlen // Test function with comprehensive table-driven test cases
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *config.Config) {},
		},
		{
			name: "count and exists conflict",
			mutate: func(cfg *config.Config) {
				cfg.Count = true
				cfg.Exists = true
			},
			wantErr: "at most one",
		},
		{
			name: "count with sort conflicts",
			mutate: func(cfg *config.Config) {
				cfg.Count = true
				cfg.Sort = config.BySize
			},
			wantErr: "cannot be combined",
		},
		{
			name: "take with page size conflicts",
			mutate: func(cfg *config.Config) {
				cfg.Take = 5
				cfg.PageSize = 10
			},
			wantErr: "--take and --page-size",
		},
		{
			name: "page size with sort conflicts",
			mutate: func(cfg *config.Config) {
				cfg.PageSize = 10
				cfg.Sort = config.ByName
			},
			wantErr: "--page-size and --sort",
		},
		{
			name: "reverse requires sort",
			mutate: func(cfg *config.Config) {
				cfg.Reverse = true
			},
			wantErr: "--reverse requires --sort",
		},
		{
			name: "negative take",
			mutate: func(cfg *config.Config) {
				cfg.Take = -1
			},
			wantErr: "--take must be positive",
		},
		{
			name: "min above max",
			mutate: func(cfg *config.Config) {
				cfg.MinSize = config.SizeFlag{Bytes: 100, Set: true}
				cfg.MaxSize = config.SizeFlag{Bytes: 10, Set: true}
			},
			wantErr: "--min-size exceeds --max-size",
		},
		{
			name: "zero progress interval",
			mutate: func(cfg *config.Config) {
				cfg.ProgressEvery = 0
			},
			wantErr: "--progress-every must be positive",
		},
		{
			name: "take with sort is fine",
			mutate: func(cfg *config.Config) {
				cfg.Take = 5
				cfg.Sort = config.BySize
				cfg.Reverse = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{ProgressEvery: 1000}
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPostProcessDefaultsRootToDot(t *testing.T) {
	t.Parallel()

	cfg, err := config.PostProcessConfig(&config.Config{ProgressEvery: 1000})
	if err != nil {
		t.Fatalf("PostProcessConfig: %v", err)
	}

	if len(cfg.Roots) != 1 || cfg.Roots[0] != "." {
		t.Errorf("Expected default root '.', got %v", cfg.Roots)
	}
}

func TestMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   config.OutputMode
	}{
		{"default lists", func(cfg *config.Config) {}, config.ListMatches},
		{"count", func(cfg *config.Config) { cfg.Count = true }, config.CountMatches},
		{"exists", func(cfg *config.Config) { cfg.Exists = true }, config.ReportExists},
		{"first", func(cfg *config.Config) { cfg.First = true }, config.FirstMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{}
			tt.mutate(cfg)

			if got := cfg.Mode(); got != tt.want {
				t.Errorf("Mode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderBy(t *testing.T) {
	t.Parallel()

	if by := (&config.Config{}).OrderBy(); by != nil {
		t.Error("Unsorted config should have a nil comparator")
	}
	if by := (&config.Config{Sort: config.BySize}).OrderBy(); by == nil {
		t.Error("Sorted config should have a comparator")
	}
	if by := (&config.Config{Sort: config.ByName, Reverse: true}).OrderBy(); by == nil {
		t.Error("Reversed sort should still have a comparator")
	}
}

//nolint:funlen // Exercises the full flag-to-query translation
func TestBuildQueryAppliesFilters(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()
	now := time.Now()
	fs.AddFile("big.log", 5000, now.Add(-time.Minute))
	fs.AddFile("small.log", 10, now.Add(-time.Minute))
	fs.AddFile("old.log", 5000, now.Add(-48*time.Hour))
	fs.AddFile("big.txt", 5000, now.Add(-time.Minute))
	fs.AddDir("logs", now)

	cfg := &config.Config{
		Pattern:       "*.log",
		Type:          config.Files,
		MinSize:       config.SizeFlag{Bytes: 1000, Set: true},
		NewerThan:     config.AgeFlag{Duration: time.Hour, Set: true},
		ProgressEvery: 1000,
	}

	q := cfg.BuildQuery(fs, []string{"."})

	got := q.Count()

	// Only big.log: small.log fails min-size, old.log fails newer-than,
	// big.txt fails the pattern, logs/ fails the type filter
	if got != 1 {
		t.Errorf("Expected exactly one match, got %d", got)
	}

	first, ok := q.First()
	if !ok || first.Name() != "big.log" {
		t.Errorf("Expected big.log, got %v", first)
	}
}

func TestBuildQueryDirType(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()
	now := time.Now()
	fs.AddFile("f.txt", 1, now)
	fs.AddDir("d", now)

	cfg := &config.Config{Type: config.Dirs, ProgressEvery: 1000}

	if got := cfg.BuildQuery(fs, []string{"."}).Count(); got != 1 {
		t.Errorf("Expected 1 directory, got %d", got)
	}
}

func TestBuildQueryOlderThan(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()
	now := time.Now()
	fs.AddFile("fresh.txt", 1, now.Add(-time.Minute))
	fs.AddFile("stale.txt", 1, now.Add(-48*time.Hour))

	cfg := &config.Config{
		Type:          config.Files,
		OlderThan:     config.AgeFlag{Duration: 24 * time.Hour, Set: true},
		ProgressEvery: 1000,
	}

	q := cfg.BuildQuery(fs, []string{"."})

	first, ok := q.First()
	if !ok || first.Name() != "stale.txt" {
		t.Errorf("Expected stale.txt, got %v", first)
	}
	if got := q.Count(); got != 1 {
		t.Errorf("Expected 1 old file, got %d", got)
	}
}
