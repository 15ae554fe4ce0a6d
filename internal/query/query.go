// Package query provides a fluent, lazily evaluated query engine over file
// trees. A Query is an immutable description of what to find (roots,
// recursion, filters) and touches the filesystem only when one of its
// terminal operations (Run, First, Exists, Count, Take, Sort, Pages, Select)
// drives a traversal.
//
// Each terminal operation performs an independent, fresh traversal, so one
// descriptor can be reused and branched freely:
//
//	logs := query.New().From("/var/log").Recursive(true).
//	        Where(query.MatchesGlob("*.log"))
//	n := logs.Count()
//	biggest := logs.Take(10, query.BySize().Reversed())
package query

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/joe/pathq/pkg/filesystem"
	"github.com/joe/pathq/pkg/pathinfo"
)

// Query describes a file search. The zero value is not useful; start with
// New. Builder methods return updated copies, never mutate the receiver, so
// a descriptor can be shared, branched, and reused across terminal
// operations without interference.
type Query struct {
	fs        filesystem.FileSystem
	roots     []string
	recursive bool
	preds     []Predicate
	distinct  bool
	emitter   EventEmitter
	every     int
	base      time.Time
}

// New creates a query over the current directory of the local filesystem,
// non-recursive, matching everything.
func New() Query {
	return Query{
		fs:    filesystem.NewRealFileSystem(),
		roots: []string{"."},
		every: DefaultProgressInterval,
	}
}

// From replaces the root paths searched, in the given order.
func (q Query) From(roots ...string) Query {
	q.roots = slices.Clone(roots)
	return q
}

// On replaces the filesystem the query runs against.
func (q Query) On(fs filesystem.FileSystem) Query {
	q.fs = fs
	return q
}

// Recursive sets whether subdirectories are searched.
func (q Query) Recursive(recursive bool) Query {
	q.recursive = recursive
	return q
}

// Where appends a filter to the predicate pipeline. Predicates run in the
// order they were added, with short-circuit AND semantics. The predicate is
// not evaluated until a terminal operation runs.
func (q Query) Where(pred Predicate) Query {
	q.preds = append(slices.Clip(slices.Clone(q.preds)), pred)
	return q
}

// Distinct drops entries whose canonical identity (resolved real path) was
// already yielded in the same traversal. Useful when roots overlap or
// symlinks alias the same location.
func (q Query) Distinct() Query {
	q.distinct = true
	return q
}

// Events sets a per-query event emitter, overriding the process-wide
// default installed with SetDefaultEmitter.
func (q Query) Events(emitter EventEmitter) Query {
	q.emitter = emitter
	return q
}

// ProgressEvery sets how many visited entries separate QueryProgress events.
func (q Query) ProgressEvery(n int) Query {
	if n > 0 {
		q.every = n
	}
	return q
}

// BaseTime fixes the reference time for age and calendar predicates.
// Defaults to the wall clock at the moment the terminal operation starts.
func (q Query) BaseTime(base time.Time) Query {
	q.base = base
	return q
}

// Cursor is a pull-based stream of matching entries. The consumer drives
// the traversal one entry at a time; stopping early is cancellation, since
// the pending-directory stack simply freezes and nothing needs cleanup.
type Cursor struct {
	w        *walker
	preds    []Predicate
	distinct bool
	fs       filesystem.FileSystem
	emitter  EventEmitter
	every    int
	base     time.Time
	seen     map[string]struct{}

	visited  int
	matched  int
	started  time.Time
	finished bool
}

// Run starts a traversal and returns a streaming cursor over matches.
// Every call starts an independent, fresh traversal.
func (q Query) Run() *Cursor {
	emitter := q.emitter
	if emitter == nil {
		emitter = DefaultEmitter()
	}

	base := q.base
	if base.IsZero() {
		base = time.Now()
	}

	c := &Cursor{
		preds:    q.preds,
		distinct: q.distinct,
		fs:       q.fs,
		emitter:  emitter,
		every:    q.every,
		base:     base,
		started:  time.Now(),
	}
	if q.distinct {
		c.seen = make(map[string]struct{})
	}

	c.w = newWalker(q.fs, q.roots, q.recursive, func(path string, err error) {
		c.emit(QueryError{Path: path, Err: err})
	})

	c.emit(QueryStarted{
		Roots:     slices.Clone(q.roots),
		Recursive: q.recursive,
		Filters:   len(q.preds),
	})

	return c
}

// Next returns the next matching entry, or false when the traversal is
// exhausted.
func (c *Cursor) Next() (*pathinfo.Path, bool) {
	for {
		entry, ok := c.w.next()
		if !ok {
			c.finish()
			return nil, false
		}

		c.visited++
		if c.every > 0 && c.visited%c.every == 0 {
			c.emit(QueryProgress{Visited: c.visited, Matched: c.matched})
		}

		p := pathinfo.NewOn(c.fs, entry.path).WithBaseTime(c.base)
		if !c.matches(p) {
			continue
		}

		if c.distinct && c.alreadySeen(entry.path) {
			continue
		}

		c.matched++

		return p, true
	}
}

// Close marks an early-terminated stream as finished so the completion
// event fires with accurate counts. Optional: a consumer that just stops
// pulling leaks nothing.
func (c *Cursor) Close() {
	c.finish()
}

// Visited returns the number of entries pulled from the walker so far.
func (c *Cursor) Visited() int { return c.visited }

// Matched returns the number of matches yielded so far.
func (c *Cursor) Matched() int { return c.matched }

func (c *Cursor) finish() {
	if c.finished {
		return
	}
	c.finished = true

	c.emit(QueryCompleted{
		Visited: c.visited,
		Matched: c.matched,
		Elapsed: time.Since(c.started),
	})
}

func (c *Cursor) emit(event Event) {
	if c.emitter != nil {
		c.emitter.Emit(event)
	}
}

// matches runs the predicate pipeline in registration order with
// short-circuit AND semantics.
func (c *Cursor) matches(p *pathinfo.Path) bool {
	for _, pred := range c.preds {
		if !c.eval(pred, p) {
			return false
		}
	}

	return true
}

// eval runs one predicate, recovering a panic as a per-entry failure: the
// entry is treated as not matching and the failure is reported, never
// aborting the traversal.
func (c *Cursor) eval(pred Predicate, p *pathinfo.Path) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			c.emit(QueryError{Path: p.String(), Err: fmt.Errorf("predicate failed: %v", r)})
			matched = false
		}
	}()

	return pred(p)
}

// alreadySeen records the canonical identity of a match and reports whether
// it was yielded before in this traversal.
func (c *Cursor) alreadySeen(path string) bool {
	canonical, err := c.fs.RealPath(path)
	if err != nil {
		canonical = path
	}

	if _, dup := c.seen[canonical]; dup {
		return true
	}
	c.seen[canonical] = struct{}{}

	return false
}

// All materializes every match in traversal order.
func (q Query) All() []*pathinfo.Path {
	c := q.Run()

	var result []*pathinfo.Path
	for p, ok := c.Next(); ok; p, ok = c.Next() {
		result = append(result, p)
	}

	return result
}

// First returns the first match in traversal order, stopping the traversal
// as soon as one is found.
func (q Query) First() (*pathinfo.Path, bool) {
	c := q.Run()
	defer c.Close()

	return c.Next()
}

// Exists reports whether any entry matches, stopping at the first match.
func (q Query) Exists() bool {
	_, ok := q.First()
	return ok
}

// Count returns the number of matching entries.
func (q Query) Count() int {
	c := q.Run()

	count := 0
	for _, ok := c.Next(); ok; _, ok = c.Next() {
		count++
	}

	return count
}

// Take returns up to n matches. With a nil ordering it returns the first n
// in traversal order and stops early. With an ordering it scans every match
// through a bounded heap and returns the best n, best-first, in O(k) memory
// and O(n log k) time.
//
// Ties under the ordering come back in unspecified relative order; supply a
// composite ordering (By.Then) when tie order matters.
func (q Query) Take(n int, by By) []*pathinfo.Path {
	if n <= 0 {
		return nil
	}

	c := q.Run()

	if by == nil {
		result := make([]*pathinfo.Path, 0, n)
		for p, ok := c.Next(); ok; p, ok = c.Next() {
			result = append(result, p)
			if len(result) == n {
				break
			}
		}
		c.Close()

		return result
	}

	h := newBoundedHeap(n, by)
	for p, ok := c.Next(); ok; p, ok = c.Next() {
		h.Offer(p)
	}

	return h.Sorted()
}

// Sort materializes every match and returns them ordered by the comparator.
// The sort is stable with respect to traversal order, so repeated equal keys
// keep a deterministic order. A nil comparator sorts by path.
func (q Query) Sort(by By) []*pathinfo.Path {
	if by == nil {
		by = ByPath()
	}

	matches := q.All()
	sort.SliceStable(matches, func(i, j int) bool {
		return by(matches[i], matches[j])
	})

	return matches
}

// Pages is a lazy stream of fixed-size pages of matches.
type Pages struct {
	c    *Cursor
	size int
}

// Pages returns a paginated stream: each page holds size matches in
// traversal order, with a shorter final page if the match count is not a
// multiple of size.
func (q Query) Pages(size int) *Pages {
	if size < 1 {
		size = 1
	}

	return &Pages{c: q.Run(), size: size}
}

// Next returns the next page, or false when no matches remain.
func (pg *Pages) Next() ([]*pathinfo.Path, bool) {
	page := make([]*pathinfo.Path, 0, pg.size)
	for len(page) < pg.size {
		p, ok := pg.c.Next()
		if !ok {
			break
		}
		page = append(page, p)
	}

	if len(page) == 0 {
		return nil, false
	}

	return page, true
}

// Projection is a lazy stream of values mapped from matching entries.
type Projection[T any] struct {
	c  *Cursor
	fn func(*pathinfo.Path) T
}

// Select returns a streaming projection of matches through fn, e.g. path
// strings or sizes instead of full handles.
func Select[T any](q Query, fn func(*pathinfo.Path) T) *Projection[T] {
	return &Projection[T]{c: q.Run(), fn: fn}
}

// Next returns the projection of the next match, or false when the
// traversal is exhausted.
func (s *Projection[T]) Next() (T, bool) {
	p, ok := s.c.Next()
	if !ok {
		var zero T
		return zero, false
	}

	return s.fn(p), true
}

// All materializes the remaining projected values.
func (s *Projection[T]) All() []T {
	var result []T
	for v, ok := s.Next(); ok; v, ok = s.Next() {
		result = append(result, v)
	}

	return result
}
