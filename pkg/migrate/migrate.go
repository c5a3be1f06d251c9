package migrate

import (
	"context"
	"sync"

	"github.com/walteh/shiftrc/pkg/report"
	"github.com/walteh/shiftrc/pkg/rewrite"
	"github.com/walteh/shiftrc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Migrator applies the configured phases to every selected file
type Migrator interface {
	// Run walks the tree once, rewrites what the rules say, and
	// returns the sealed report for the run
	Run(ctx context.Context) (*report.Report, error)
}

// 🔧 Options contains configuration for a migration run
type Options struct {
	// Tree is the file corpus to migrate
	Tree walker.Tree
	// Filter selects which files are considered
	Filter walker.Filter
	// Phases are applied in this order to every file
	Phases []rewrite.Phase
	// Workers above 1 enables the bounded parallel runner
	Workers int
	// DryRun reports what would change without writing anything
	DryRun bool
	// FailFast escalates the first per-file error instead of
	// recording it and moving on
	FailFast bool
	// OnResult, when set, observes each outcome as it is recorded.
	// Calls are serialized; implementations must be quick.
	OnResult func(report.FileResult)
}

// 🏭 New validates the options and builds a migrator. Everything that
// can be rejected here is rejected here, before any file is touched.
func New(opts Options) (Migrator, error) {
	if opts.Tree == nil {
		return nil, errors.Errorf("tree is required")
	}
	if len(opts.Phases) == 0 {
		return nil, errors.Errorf("at least one phase is required")
	}
	if opts.Workers < 0 {
		return nil, errors.Errorf("workers must not be negative, got %d", opts.Workers)
	}
	if err := opts.Filter.Validate(); err != nil {
		return nil, errors.Errorf("validating filter: %w", err)
	}
	seen := make(map[string]bool, len(opts.Phases))
	for i, p := range opts.Phases {
		if err := p.Validate(); err != nil {
			return nil, errors.Errorf("validating phase %d: %w", i, err)
		}
		if seen[p.Name] {
			return nil, errors.Errorf("duplicate phase name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return &migrator{opts: opts}, nil
}

// 🎮 migrator implements the Migrator interface
type migrator struct {
	opts Options

	// Guards result recording so report rows and OnResult callbacks
	// stay interleaving-free in parallel runs
	recordMu sync.Mutex
}

// record is the single funnel for finished files
func (m *migrator) record(b *report.Builder, res report.FileResult) {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()

	b.Add(res)
	if m.opts.OnResult != nil {
		m.opts.OnResult(res)
	}
}

func phaseNames(phases []rewrite.Phase) []string {
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, p.Name)
	}
	return names
}
