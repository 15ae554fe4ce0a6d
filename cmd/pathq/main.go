// Package main is the entry point for the pathq application.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/pathq/internal/config"
	"github.com/joe/pathq/internal/query"
	"github.com/joe/pathq/internal/tui"
	pkgerrors "github.com/joe/pathq/pkg/errors"
	"github.com/joe/pathq/pkg/filesystem"
	"github.com/joe/pathq/pkg/pathinfo"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs, roots, closer, err := resolveRoots(cfg.Roots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer()
	}

	q := cfg.BuildQuery(fs, roots)

	// Exists drives the exit status, with or without a TUI
	if cfg.Mode() == config.ReportExists {
		if q.Exists() {
			fmt.Println("yes")
			os.Exit(0)
		}
		fmt.Println("no")
		os.Exit(1)
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && !cfg.Plain
	if !interactive {
		runPlain(cfg, q)
		return
	}

	runWithTUI(cfg, q, roots)
}

// resolveRoots creates the filesystem the query runs on. All roots must live
// on the same filesystem: either every root is local, or every root is an
// sftp:// URL on the same host.
func resolveRoots(raw []string) (filesystem.FileSystem, []string, func(), error) {
	remote := 0
	for _, r := range raw {
		if strings.HasPrefix(r, "sftp://") {
			remote++
		}
	}

	if remote == 0 {
		return filesystem.NewRealFileSystem(), raw, nil, nil
	}
	if remote != len(raw) {
		return nil, nil, nil, fmt.Errorf("cannot mix local and sftp:// roots in one query")
	}

	fs, base, closer, err := filesystem.CreateFileSystem(raw[0])
	if err != nil {
		return nil, nil, nil, err
	}

	first, _ := filesystem.ParsePath(raw[0])
	roots := []string{base}
	for _, r := range raw[1:] {
		parsed, err := filesystem.ParsePath(r)
		if err != nil {
			closer()
			return nil, nil, nil, err
		}
		if parsed.Host != first.Host || parsed.Port != first.Port || parsed.User != first.User {
			closer()
			return nil, nil, nil, fmt.Errorf("all sftp:// roots must share one host: %s vs %s", raw[0], r)
		}
		roots = append(roots, parsed.Path)
	}

	return fs, roots, closer, nil
}

// stderrReporter prints traversal errors with actionable suggestions as
// they happen. Only query errors are surfaced; lifecycle events are noise
// in plain output.
type stderrReporter struct {
	enricher pkgerrors.Enricher
}

func (r *stderrReporter) Emit(event query.Event) {
	failure, ok := event.(query.QueryError)
	if !ok {
		return
	}

	enriched := r.enricher.Enrich(failure.Err, failure.Path)
	fmt.Fprintf(os.Stderr, "pathq: %s: %v\n", failure.Path, enriched)
	if suggestions := pkgerrors.FormatSuggestions(enriched); suggestions != "" {
		fmt.Fprintln(os.Stderr, suggestions)
	}
}

// runPlain executes the query and prints results without a terminal UI.
func runPlain(cfg *config.Config, q query.Query) {
	q = q.Events(&stderrReporter{enricher: pkgerrors.NewEnricher()})

	lines, err := collect(cfg, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}

// runWithTUI executes the query behind a live progress view and prints the
// collected results once the program exits the alternate screen.
func runWithTUI(cfg *config.Config, q query.Query, roots []string) {
	bridge := tui.NewEventBridge()
	q = q.Events(bridge)

	model := tui.NewModel(bridge, roots, func() ([]string, error) {
		return collect(cfg, q)
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	bridge.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	done, ok := final.(tui.Model)
	if !ok {
		return
	}
	if done.Cancelled() {
		fmt.Fprintln(os.Stderr, "cancelled")
		os.Exit(130)
	}
	if done.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", done.Err())
		os.Exit(1)
	}

	for _, line := range done.Lines() {
		fmt.Println(line)
	}
}

// collect runs the configured terminal operation and formats output lines.
func collect(cfg *config.Config, q query.Query) ([]string, error) {
	switch cfg.Mode() {
	case config.CountMatches:
		return []string{fmt.Sprintf("%d", q.Count())}, nil

	case config.FirstMatch:
		p, ok := q.First()
		if !ok {
			return nil, nil
		}
		return []string{p.String()}, nil

	case config.ReportExists:
		// Handled before the TUI starts
		return nil, nil

	case config.ListMatches:
	}

	by := cfg.OrderBy()

	switch {
	case cfg.Take > 0:
		return format(q.Take(cfg.Take, by)), nil

	case by != nil:
		return format(q.Sort(by)), nil

	case cfg.PageSize > 0:
		var lines []string
		pages := q.Pages(cfg.PageSize)
		first := true
		for page, ok := pages.Next(); ok; page, ok = pages.Next() {
			if !first {
				lines = append(lines, "--")
			}
			first = false
			lines = append(lines, format(page)...)
		}
		return lines, nil

	default:
		return query.Select(q, func(p *pathinfo.Path) string {
			return p.String()
		}).All(), nil
	}
}

func format(matches []*pathinfo.Path) []string {
	lines := make([]string, len(matches))
	for i, p := range matches {
		lines[i] = p.String()
	}
	return lines
}
