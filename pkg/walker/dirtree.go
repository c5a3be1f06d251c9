package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Directories that never hold migratable sources. Checked by base
// name at every depth.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".next":        true,
	".cache":       true,
}

// 📁 DirTree is a Tree over a real directory. Construction fails when
// the root is missing or not a directory, so a mistyped root never
// turns into a silent zero-file run.
type DirTree struct {
	root string // absolute
}

// NewDirTree binds a tree to root
func NewDirTree(root string) (*DirTree, error) {
	if root == "" {
		return nil, errors.Errorf("root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Errorf("checking root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %q is not a directory", root)
	}
	return &DirTree{root: abs}, nil
}

func (t *DirTree) Root() string {
	return t.root
}

// Walk enumerates files under the root, applies the filter, and
// returns slash-relative paths in lexicographic order. WalkDir visits
// depth-first, which interleaves "a/b" and "a.txt" differently per
// layout, so the final sort is explicit.
func (t *DirTree) Walk(ctx context.Context, f Filter) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var paths []string
	err := filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %q: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != t.root && skipDirs[d.Name()] {
				logger.Debug().Str("dir", path).Msg("skipping directory")
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(t.root, path)
		if err != nil {
			return errors.Errorf("relativizing %q: %w", path, err)
		}
		rel = filepath.ToSlash(rel)
		if !f.Match(rel) {
			logger.Debug().Str("file", rel).Msg("file excluded by filter")
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("enumerating %s: %w", t.root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

func (t *DirTree) ReadFile(ctx context.Context, rel string) ([]byte, error) {
	abs, err := t.resolve(rel)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", rel, err)
	}
	return content, nil
}

// WriteFile writes through a temp file and renames it into place, so
// a crash mid-write can never leave a half-rewritten source behind.
// The original file mode survives the rewrite.
func (t *DirTree) WriteFile(ctx context.Context, rel string, data []byte) error {
	abs, err := t.resolve(rel)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return errors.Errorf("creating parent directories for %s: %w", rel, err)
	}

	tempPath := abs + ".tmp"
	if err := os.WriteFile(tempPath, data, mode); err != nil {
		return errors.Errorf("writing temp file for %s: %w", rel, err)
	}
	if err := os.Rename(tempPath, abs); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file for %s: %w", rel, err)
	}
	return nil
}

// resolve maps a slash-relative path into the root and refuses
// anything that would land outside it
func (t *DirTree) resolve(rel string) (string, error) {
	if rel == "" {
		return "", errors.Errorf("path is required")
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) {
		return "", errors.Errorf("path %q must be relative to the root", rel)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("path %q escapes the root", rel)
	}
	return filepath.Join(t.root, clean), nil
}
