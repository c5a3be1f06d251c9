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
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// 📊 Status is the terminal outcome for one file
type Status int

const (
	StatusUnknown   Status = iota
	StatusWritten          // Rewritten and persisted
	StatusChanged          // Would be rewritten (dry run)
	StatusUnchanged        // No rule produced a difference
	StatusErrored          // Left untouched after an error
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusChanged:
		return "changed"
	case StatusUnchanged:
		return "unchanged"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// MarshalText makes JSON reports carry status names, not enum numbers
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// 📄 FileResult is the report line for one file
type FileResult struct {
	Path        string   `json:"path"`
	Status      Status   `json:"status"`
	FiredPhases []string `json:"fired_phases,omitempty"` // Phases with at least one matched rule, declared order
	Phase       string   `json:"phase,omitempty"`        // Failing phase, when errored
	Rule        string   `json:"rule,omitempty"`         // Failing rule, when errored
	Error       string   `json:"error,omitempty"`
}

// 📈 PhaseCount says how many files a phase fired on
type PhaseCount struct {
	Phase string `json:"phase"`
	Files int    `json:"files"`
}

// 🧾 Report is the immutable summary of one run. It is built once,
// finalized once, and never feeds back into a later run.
type Report struct {
	RunID     string        `json:"run_id"`
	Root      string        `json:"root"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`

	Scanned   int `json:"scanned"`
	Changed   int `json:"changed"` // Written in a real run, would-change in a dry run
	Unchanged int `json:"unchanged"`
	Errored   int `json:"errored"`

	Files  []FileResult `json:"files"`  // Sorted by path
	Phases []PhaseCount `json:"phases"` // Declared phase order, zero-fire phases included
}

// HasChanges reports whether any file differed
func (r *Report) HasChanges() bool {
	return r.Changed > 0
}

// HasErrors reports whether any file errored
func (r *Report) HasErrors() bool {
	return r.Errored > 0
}

// 🔧 Builder aggregates per-file results as they arrive. Workers feed
// it concurrently; the mutex is the single serialization point the
// parallel runner relies on.
type Builder struct {
	mu        sync.Mutex
	runID     string
	root      string
	phases    []string
	started   time.Time
	files     []FileResult
	finalized bool
}

// 🏭 NewBuilder starts a report for one run over root. The phase
// names fix the aggregation order up front.
func NewBuilder(root string, phases []string) *Builder {
	return &Builder{
		runID:   uuid.NewString(),
		root:    root,
		phases:  phases,
		started: time.Now(),
	}
}

// RunID identifies this run in logs and JSON output
func (b *Builder) RunID() string {
	return b.runID
}

// Add records the outcome for one file. Calling Add after Finalize is
// a programming error.
func (b *Builder) Add(r FileResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finalized {
		panic("report: Add after Finalize")
	}
	b.files = append(b.files, r)
}

// Finalize sorts, counts, and seals the report. Arrival order does
// not matter; two runs over the same corpus produce the same report
// apart from run id and timing.
func (b *Builder) Finalize() *Report {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.finalized = true

	files := make([]FileResult, len(b.files))
	copy(files, b.files)
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	r := &Report{
		RunID:     b.runID,
		Root:      b.root,
		StartedAt: b.started,
		Elapsed:   time.Since(b.started),
		Scanned:   len(files),
		Files:     files,
	}

	fired := make(map[string]int, len(b.phases))
	for _, f := range files {
		switch f.Status {
		case StatusWritten, StatusChanged:
			r.Changed++
		case StatusUnchanged:
			r.Unchanged++
		case StatusErrored:
			r.Errored++
		}
		for _, phase := range f.FiredPhases {
			fired[phase]++
		}
	}

	r.Phases = make([]PhaseCount, 0, len(b.phases))
	for _, name := range b.phases {
		r.Phases = append(r.Phases, PhaseCount{Phase: name, Files: fired[name]})
	}

	return r
}
