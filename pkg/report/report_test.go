// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestBuilderFinalize tests sorting, counting, and phase tallies
func TestBuilderFinalize(t *testing.T) {
	b := NewBuilder("/repo", []string{"imports", "call-sites", "cleanup"})

	// Deliberately out of path order
	b.Add(FileResult{Path: "src/b.ts", Status: StatusWritten, FiredPhases: []string{"imports", "call-sites"}})
	b.Add(FileResult{Path: "src/a.ts", Status: StatusUnchanged})
	b.Add(FileResult{Path: "src/c.ts", Status: StatusErrored, Phase: "call-sites", Rule: "unwrap-create", Error: "boom"})

	r := b.Finalize()

	assert.Equal(t, "/repo", r.Root)
	assert.NotEmpty(t, r.RunID, "every run should get an id")
	assert.Equal(t, 3, r.Scanned)
	assert.Equal(t, 1, r.Changed)
	assert.Equal(t, 1, r.Unchanged)
	assert.Equal(t, 1, r.Errored)
	assert.True(t, r.HasChanges())
	assert.True(t, r.HasErrors())

	require.Len(t, r.Files, 3)
	assert.Equal(t, "src/a.ts", r.Files[0].Path, "files should be sorted by path")
	assert.Equal(t, "src/b.ts", r.Files[1].Path)
	assert.Equal(t, "src/c.ts", r.Files[2].Path)

	assert.Equal(t, []PhaseCount{
		{Phase: "imports", Files: 1},
		{Phase: "call-sites", Files: 1},
		{Phase: "cleanup", Files: 0},
	}, r.Phases, "phase order should be declared order, zero fires included")
}

// 🧪 TestBuilderDeterminism tests that arrival order is invisible
func TestBuilderDeterminism(t *testing.T) {
	results := []FileResult{
		{Path: "a.ts", Status: StatusWritten, FiredPhases: []string{"p1"}},
		{Path: "b.ts", Status: StatusUnchanged},
		{Path: "c.ts", Status: StatusWritten, FiredPhases: []string{"p1"}},
	}

	forward := NewBuilder("/r", []string{"p1"})
	for _, r := range results {
		forward.Add(r)
	}
	backward := NewBuilder("/r", []string{"p1"})
	for i := len(results) - 1; i >= 0; i-- {
		backward.Add(results[i])
	}

	fwd, bwd := forward.Finalize(), backward.Finalize()
	assert.Equal(t, fwd.Files, bwd.Files)
	assert.Equal(t, fwd.Phases, bwd.Phases)
	assert.Equal(t, fwd.Changed, bwd.Changed)
}

// 🧪 TestBuilderConcurrentAdd tests the parallel aggregation path
func TestBuilderConcurrentAdd(t *testing.T) {
	b := NewBuilder("/r", []string{"p1"})

	var wg sync.WaitGroup
	paths := []string{"a.ts", "b.ts", "c.ts", "d.ts", "e.ts", "f.ts", "g.ts", "h.ts"}
	for _, path := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			b.Add(FileResult{Path: p, Status: StatusUnchanged})
		}(path)
	}
	wg.Wait()

	r := b.Finalize()
	assert.Equal(t, len(paths), r.Scanned)
	assert.Equal(t, len(paths), r.Unchanged)
}

// 🧪 TestBuilderSealed tests that a finalized report rejects writes
func TestBuilderSealed(t *testing.T) {
	b := NewBuilder("/r", nil)
	b.Finalize()

	assert.Panics(t, func() {
		b.Add(FileResult{Path: "late.ts"})
	}, "Add after Finalize should panic")
}

// 🧪 TestStatusString tests status names
func TestStatusString(t *testing.T) {
	assert.Equal(t, "written", StatusWritten.String())
	assert.Equal(t, "changed", StatusChanged.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "errored", StatusErrored.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
