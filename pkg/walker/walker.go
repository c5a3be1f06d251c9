package walker

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🌲 Tree is the file corpus a migration runs against. DirTree is the
// real thing; MemTree backs tests and dry experiments. Paths are
// always slash-separated and relative to the root.
type Tree interface {
	// Root describes where the tree lives, for reports
	Root() string

	// Walk returns every file that passes the filter, sorted
	// lexicographically. The order is part of the contract.
	Walk(ctx context.Context, f Filter) ([]string, error)

	// ReadFile returns the full content of one file
	ReadFile(ctx context.Context, rel string) ([]byte, error)

	// WriteFile replaces the content of one file atomically
	WriteFile(ctx context.Context, rel string, data []byte) error
}

// 🔎 Filter selects files by doublestar glob. A file is walked when
// it matches at least one include (or Include is empty) and no
// exclude. Excludes win.
type Filter struct {
	Include []string // e.g. "**/*.use-case.ts"
	Exclude []string // e.g. "**/node_modules/**"
}

// Validate compiles every pattern so a typo fails the run before any
// file is touched
func (f Filter) Validate() error {
	for _, p := range f.Include {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range f.Exclude {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Match reports whether the slash-relative path passes the filter.
// Patterns are assumed validated; a broken pattern never matches.
func (f Filter) Match(rel string) bool {
	if len(f.Include) > 0 {
		included := false
		for _, p := range f.Include {
			if ok, err := doublestar.Match(p, rel); err == nil && ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, p := range f.Exclude {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return false
		}
	}
	return true
}
