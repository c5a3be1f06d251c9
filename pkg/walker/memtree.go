package walker

import (
	"context"
	"os"
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// 🧠 MemTree is a Tree over a map. It backs engine tests and keeps
// them off the disk entirely. Safe for concurrent use, so parallel
// runner tests can share one.
type MemTree struct {
	mu        sync.RWMutex
	files     map[string][]byte
	writes    []string
	readErrs  map[string]error
	writeErrs map[string]error
}

// NewMemTree seeds a tree with slash-relative paths and contents
func NewMemTree(files map[string]string) *MemTree {
	t := &MemTree{
		files:     make(map[string][]byte, len(files)),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
	for path, content := range files {
		t.files[path] = []byte(content)
	}
	return t
}

func (t *MemTree) Root() string {
	return "mem"
}

func (t *MemTree) Walk(ctx context.Context, f Filter) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	paths := make([]string, 0, len(t.files))
	for path := range t.files {
		if f.Match(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (t *MemTree) ReadFile(ctx context.Context, rel string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if err := t.readErrs[rel]; err != nil {
		return nil, err
	}
	content, ok := t.files[rel]
	if !ok {
		return nil, errors.Errorf("reading %s: %w", rel, os.ErrNotExist)
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (t *MemTree) WriteFile(ctx context.Context, rel string, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.writeErrs[rel]; err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	t.files[rel] = stored
	t.writes = append(t.writes, rel)
	return nil
}

// FailRead makes future reads of rel return err
func (t *MemTree) FailRead(rel string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.readErrs[rel] = err
}

// FailWrite makes future writes of rel return err
func (t *MemTree) FailWrite(rel string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeErrs[rel] = err
}

// Content returns the current bytes of rel
func (t *MemTree) Content(rel string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	content, ok := t.files[rel]
	return string(content), ok
}

// Writes lists the paths written, in write order
func (t *MemTree) Writes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.writes))
	copy(out, t.writes)
	return out
}
