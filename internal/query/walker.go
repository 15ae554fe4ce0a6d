package query

import (
	"github.com/joe/pathq/pkg/filesystem"
)

// walkEntry is one candidate yielded by the walker.
type walkEntry struct {
	path  string
	isDir bool
}

// walker produces a lazy, depth-first sequence of entries under a set of
// roots using an explicit pending-directory stack. It never recurses, so
// traversal depth is bounded by available memory, not by the call stack.
//
// Roots are consumed in caller order, one at a time; within a root the most
// recently discovered directory is expanded next. Symlinks are never pushed
// for expansion because ReadDir reports them as non-directories.
//
// A walker is owned by exactly one traversal invocation.
type walker struct {
	fs        filesystem.FileSystem
	recursive bool
	roots     []string
	report    func(path string, err error)

	rootIdx  int
	pending  []string // LIFO stack of directories awaiting expansion
	buffered []walkEntry
	bufIdx   int
}

func newWalker(fs filesystem.FileSystem, roots []string, recursive bool, report func(string, error)) *walker {
	return &walker{
		fs:        fs,
		recursive: recursive,
		roots:     roots,
		report:    report,
	}
}

// next returns the next entry in the traversal, or false when every root is
// exhausted. Listing failures are reported and skipped; they never end the
// traversal early.
func (w *walker) next() (walkEntry, bool) {
	for {
		// Drain children of the last listed directory first.
		if w.bufIdx < len(w.buffered) {
			entry := w.buffered[w.bufIdx]
			w.bufIdx++
			return entry, true
		}

		// Expand the most recently discovered directory.
		if n := len(w.pending); n > 0 {
			dir := w.pending[n-1]
			w.pending = w.pending[:n-1]
			w.expand(dir)
			continue
		}

		// Start the next root.
		if w.rootIdx < len(w.roots) {
			root := w.roots[w.rootIdx]
			w.rootIdx++

			info, err := w.fs.Stat(root)
			if err != nil {
				w.report(root, err)
				continue
			}

			if !info.IsDir() {
				// A file root is itself a single candidate entry.
				return walkEntry{path: root, isDir: false}, true
			}

			w.pending = append(w.pending, root)
			continue
		}

		return walkEntry{}, false
	}
}

// expand lists one directory into the buffer, pushing child directories for
// later expansion when the walk is recursive.
func (w *walker) expand(dir string) {
	children, err := w.fs.ReadDir(dir)
	if err != nil {
		w.report(dir, err)
		return
	}

	w.buffered = w.buffered[:0]
	w.bufIdx = 0

	for _, child := range children {
		full := w.fs.Join(dir, child.Name)
		w.buffered = append(w.buffered, walkEntry{path: full, isDir: child.IsDir})

		if child.IsDir && w.recursive {
			w.pending = append(w.pending, full)
		}
	}
}
