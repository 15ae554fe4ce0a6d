package query

import (
	"github.com/joe/pathq/pkg/pathinfo"
)

// By is an ordering over entries: it reports whether a sorts before b.
// Comparators are used as sort keys by Take and Sort; they must be total and
// deterministic for the duration of one traversal (the cached stat on each
// entry guarantees this for the built-in comparators).
type By func(a, b *pathinfo.Path) bool

// BySize orders entries by size, smallest first.
func BySize() By {
	return func(a, b *pathinfo.Path) bool {
		return a.Size().Bytes < b.Size().Bytes
	}
}

// ByModTime orders entries by modification time, oldest first.
func ByModTime() By {
	return func(a, b *pathinfo.Path) bool {
		return a.Modified().Time().Before(b.Modified().Time())
	}
}

// ByName orders entries by base name.
func ByName() By {
	return func(a, b *pathinfo.Path) bool {
		return a.Name() < b.Name()
	}
}

// ByPath orders entries by full path string.
func ByPath() By {
	return func(a, b *pathinfo.Path) bool {
		return a.String() < b.String()
	}
}

// Reversed inverts the ordering.
func (by By) Reversed() By {
	return func(a, b *pathinfo.Path) bool {
		return by(b, a)
	}
}

// Then returns a composite ordering that breaks ties in this ordering with
// the next one. Use this to make Take deterministic when the primary key has
// duplicates, e.g. BySize().Reversed().Then(ByName()).
func (by By) Then(next By) By {
	return func(a, b *pathinfo.Path) bool {
		if by(a, b) {
			return true
		}
		if by(b, a) {
			return false
		}
		return next(a, b)
	}
}
