// Package config handles application configuration and command-line argument parsing.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/joe/pathq/internal/query"
	"github.com/joe/pathq/pkg/filesystem"
	"github.com/joe/pathq/pkg/pathinfo"
)

// EntryType selects which kinds of entries a search yields.
type EntryType int

const (
	// Files - regular files only, the default
	Files EntryType = iota
	// Dirs - directories only
	Dirs
	// Any - no type filter
	Any
)

// String returns the string representation of EntryType
func (et EntryType) String() string {
	switch et {
	case Files:
		return "file"
	case Dirs:
		return "dir"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// ParseEntryType parses a string into an EntryType
func ParseEntryType(s string) (EntryType, error) {
	switch strings.ToLower(s) {
	case "file", "files", "f":
		return Files, nil
	case "dir", "dirs", "d":
		return Dirs, nil
	case "any", "all", "a":
		return Any, nil
	default:
		return Files, fmt.Errorf("invalid entry type: %s (valid: file, dir, any)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (et *EntryType) UnmarshalText(text []byte) error {
	parsed, err := ParseEntryType(string(text))
	if err != nil {
		return err
	}
	*et = parsed
	return nil
}

// SortKey selects the ordering used by --sort and --take.
type SortKey int

const (
	// Unsorted - traversal order
	Unsorted SortKey = iota
	// BySize - smallest first
	BySize
	// ByModTime - oldest first
	ByModTime
	// ByName - base name, lexicographic
	ByName
	// ByPath - full path, lexicographic
	ByPath
)

// String returns the string representation of SortKey
func (sk SortKey) String() string {
	switch sk {
	case Unsorted:
		return "none"
	case BySize:
		return "size"
	case ByModTime:
		return "mtime"
	case ByName:
		return "name"
	case ByPath:
		return "path"
	default:
		return "unknown"
	}
}

// ParseSortKey parses a string into a SortKey
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return Unsorted, nil
	case "size":
		return BySize, nil
	case "mtime", "modified", "time":
		return ByModTime, nil
	case "name":
		return ByName, nil
	case "path":
		return ByPath, nil
	default:
		return Unsorted, fmt.Errorf("invalid sort key: %s (valid: size, mtime, name, path)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (sk *SortKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSortKey(string(text))
	if err != nil {
		return err
	}
	*sk = parsed
	return nil
}

// SizeFlag is a byte count parsed from human notation ("10MB", "1.5GiB").
type SizeFlag struct {
	Bytes int64
	Set   bool
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (f *SizeFlag) UnmarshalText(text []byte) error {
	bytes, err := pathinfo.ParseSize(string(text))
	if err != nil {
		return err
	}
	f.Bytes = bytes
	f.Set = true
	return nil
}

// AgeFlag is a duration parsed from age notation ("90s", "2 weeks", "1y").
type AgeFlag struct {
	Duration time.Duration
	Set      bool
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (f *AgeFlag) UnmarshalText(text []byte) error {
	dur, err := pathinfo.ParseAge(string(text))
	if err != nil {
		return err
	}
	f.Duration = dur
	f.Set = true
	return nil
}

// OutputMode is what the run should print once the query finishes.
type OutputMode int

const (
	// ListMatches - print matching paths
	ListMatches OutputMode = iota
	// CountMatches - print the match count
	CountMatches
	// ReportExists - print whether anything matched, exit status reflects it
	ReportExists
	// FirstMatch - print the first match only
	FirstMatch
)

// Config holds the application configuration
type Config struct {
	Roots []string `arg:"positional" help:"Paths to search (default: current directory)"`

	Recursive bool      `arg:"-r,--recursive" help:"Descend into subdirectories"`
	Pattern   string    `arg:"-p,--pattern" help:"Glob pattern, matched against names (or whole paths when it contains a slash)"`
	Type      EntryType `arg:"--type" default:"file" help:"Entry kind to match: file|dir|any"`
	MinSize   SizeFlag  `arg:"--min-size" help:"Minimum size, e.g. 10MB or 1.5GiB"`
	MaxSize   SizeFlag  `arg:"--max-size" help:"Maximum size"`
	NewerThan AgeFlag   `arg:"--newer-than" help:"Only entries modified within this age, e.g. 2h or '3 days'"`
	OlderThan AgeFlag   `arg:"--older-than" help:"Only entries modified before this age"`
	Distinct  bool      `arg:"--distinct" help:"Drop duplicate entries that resolve to the same real path"`

	Count    bool    `arg:"-c,--count" help:"Print the match count instead of paths"`
	Exists   bool    `arg:"-e,--exists" help:"Exit 0 if anything matches, 1 otherwise"`
	First    bool    `arg:"--first" help:"Print only the first match"`
	Take     int     `arg:"-n,--take" help:"Keep only the best N matches (requires --sort) or the first N"`
	PageSize int     `arg:"--page-size" help:"Print matches in pages of N with a separator"`
	Sort     SortKey `arg:"--sort" default:"none" help:"Order matches by: size|mtime|name|path"`
	Reverse  bool    `arg:"--reverse" help:"Reverse the sort order"`

	ProgressEvery int  `arg:"--progress-every" default:"1000" help:"Entries between progress updates"`
	Plain         bool `arg:"--plain" help:"Plain line output, no terminal UI"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "A lazy file query tool: filter, count, and rank files without loading whole trees"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "pathq 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{
		Type:          Files,
		ProgressEvery: query.DefaultProgressInterval,
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if len(cfg.Roots) == 0 {
		cfg.Roots = []string{"."}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects flag combinations with no sensible meaning.
func (cfg *Config) Validate() error {
	terminals := 0
	for _, on := range []bool{cfg.Count, cfg.Exists, cfg.First} {
		if on {
			terminals++
		}
	}
	if terminals > 1 {
		return fmt.Errorf("at most one of --count, --exists, --first may be given")
	}

	if terminals > 0 && (cfg.Take > 0 || cfg.PageSize > 0 || cfg.Sort != Unsorted) {
		return fmt.Errorf("--count, --exists, and --first cannot be combined with --take, --page-size, or --sort")
	}

	if cfg.Take < 0 {
		return fmt.Errorf("--take must be positive")
	}
	if cfg.PageSize < 0 {
		return fmt.Errorf("--page-size must be positive")
	}
	if cfg.Take > 0 && cfg.PageSize > 0 {
		return fmt.Errorf("--take and --page-size cannot be combined")
	}
	if cfg.PageSize > 0 && cfg.Sort != Unsorted {
		return fmt.Errorf("--page-size and --sort cannot be combined")
	}

	if cfg.Reverse && cfg.Sort == Unsorted {
		return fmt.Errorf("--reverse requires --sort")
	}

	if cfg.MinSize.Set && cfg.MaxSize.Set && cfg.MinSize.Bytes > cfg.MaxSize.Bytes {
		return fmt.Errorf("--min-size exceeds --max-size")
	}

	if cfg.ProgressEvery < 1 {
		return fmt.Errorf("--progress-every must be positive")
	}

	return nil
}

// Mode returns what the run should print.
func (cfg *Config) Mode() OutputMode {
	switch {
	case cfg.Count:
		return CountMatches
	case cfg.Exists:
		return ReportExists
	case cfg.First:
		return FirstMatch
	default:
		return ListMatches
	}
}

// OrderBy returns the comparator for --sort, or nil when unsorted.
func (cfg *Config) OrderBy() query.By {
	var by query.By

	switch cfg.Sort {
	case BySize:
		by = query.BySize()
	case ByModTime:
		by = query.ByModTime()
	case ByName:
		by = query.ByName()
	case ByPath:
		by = query.ByPath()
	case Unsorted:
		return nil
	default:
		return nil
	}

	if cfg.Reverse {
		by = by.Reversed()
	}

	return by
}

// BuildQuery translates the parsed flags into a query descriptor. Remote
// roots (sftp:// URLs) are not resolved here; the caller creates the
// filesystem per root with filesystem.CreateFileSystem and attaches it
// with On.
func (cfg *Config) BuildQuery(fs filesystem.FileSystem, roots []string) query.Query {
	q := query.New().
		From(roots...).
		Recursive(cfg.Recursive).
		ProgressEvery(cfg.ProgressEvery)

	if fs != nil {
		q = q.On(fs)
	}

	switch cfg.Type {
	case Files:
		q = q.Where(query.IsFile())
	case Dirs:
		q = q.Where(query.IsDir())
	case Any:
	}

	if cfg.Pattern != "" {
		q = q.Where(query.MatchesGlob(cfg.Pattern))
	}

	if cfg.MinSize.Set {
		minBytes := cfg.MinSize.Bytes
		q = q.Where(func(p *pathinfo.Path) bool {
			return p.Size().Bytes >= minBytes
		})
	}
	if cfg.MaxSize.Set {
		maxBytes := cfg.MaxSize.Bytes
		q = q.Where(func(p *pathinfo.Path) bool {
			return p.Size().Bytes <= maxBytes
		})
	}

	if cfg.NewerThan.Set {
		limit := cfg.NewerThan.Duration
		q = q.Where(func(p *pathinfo.Path) bool {
			return p.Modified().Age().Duration() <= limit
		})
	}
	if cfg.OlderThan.Set {
		limit := cfg.OlderThan.Duration
		q = q.Where(func(p *pathinfo.Path) bool {
			return p.Modified().Age().Duration() > limit
		})
	}

	if cfg.Distinct {
		q = q.Distinct()
	}

	return q
}
