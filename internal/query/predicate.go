package query

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/pathq/pkg/pathinfo"
)

// Predicate is one boolean filter over a candidate entry. Predicates added
// with Query.Where are evaluated in registration order with short-circuit
// AND semantics.
//
// Within one traversal every entry carries a cached stat result and a fixed
// base time, so a predicate built from pathinfo properties is deterministic
// for the duration of that traversal.
type Predicate func(*pathinfo.Path) bool

// And combines predicates with short-circuit AND semantics.
func And(preds ...Predicate) Predicate {
	return func(p *pathinfo.Path) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Or combines predicates with short-circuit OR semantics.
func Or(preds ...Predicate) Predicate {
	return func(p *pathinfo.Path) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(pred Predicate) Predicate {
	return func(p *pathinfo.Path) bool {
		return !pred(p)
	}
}

// IsFile matches regular files.
func IsFile() Predicate {
	return func(p *pathinfo.Path) bool { return p.IsFile() }
}

// IsDir matches directories.
func IsDir() Predicate {
	return func(p *pathinfo.Path) bool { return p.IsDir() }
}

// MatchesGlob matches entries against a doublestar glob pattern,
// case-insensitively. Patterns containing a path separator are matched
// against the whole slash-normalized path ("logs/**/*.gz"); bare patterns
// are matched against the entry name only ("*.log"), which is what shell
// users expect from find-style tools.
//
// An invalid pattern matches nothing.
func MatchesGlob(pattern string) Predicate {
	normalized := strings.ToLower(pattern)
	wholePath := strings.Contains(pattern, "/")

	return func(p *pathinfo.Path) bool {
		target := p.Name()
		if wholePath {
			target = strings.ReplaceAll(p.String(), "\\", "/")
		}

		matched, err := doublestar.Match(normalized, strings.ToLower(target))
		if err != nil {
			return false
		}

		return matched
	}
}
