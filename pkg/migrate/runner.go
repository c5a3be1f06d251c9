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

package migrate

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/shiftrc/pkg/report"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Run walks the tree once and processes every selected file.
// Files are independent; the only shared state is the report builder.
func (m *migrator) Run(ctx context.Context) (*report.Report, error) {
	logger := zerolog.Ctx(ctx)

	paths, err := m.opts.Tree.Walk(ctx, m.opts.Filter)
	if err != nil {
		return nil, errors.Errorf("enumerating files: %w", err)
	}

	logger.Info().
		Int("files", len(paths)).
		Int("workers", m.opts.Workers).
		Bool("dry_run", m.opts.DryRun).
		Msg("starting migration")

	builder := report.NewBuilder(m.opts.Tree.Root(), phaseNames(m.opts.Phases))

	if m.opts.Workers > 1 {
		err = m.runParallel(ctx, paths, builder)
	} else {
		err = m.runSequential(ctx, paths, builder)
	}
	if err != nil {
		return nil, err
	}

	rep := builder.Finalize()
	logger.Info().
		Str("run_id", rep.RunID).
		Int("changed", rep.Changed).
		Int("unchanged", rep.Unchanged).
		Int("errored", rep.Errored).
		Msg("migration complete")

	return rep, nil
}

// 🔄 runSequential processes files one by one in walk order
func (m *migrator) runSequential(ctx context.Context, paths []string, b *report.Builder) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("migration cancelled: %w", err)
		}
		res := m.processFile(ctx, path)
		m.record(b, res)
		if m.opts.FailFast && res.Status == report.StatusErrored {
			return failFast(res)
		}
	}
	return nil
}

// ⚡ runParallel fans files out to a bounded worker pool. Results
// arrive in completion order; the builder sorts at finalize, so the
// report cannot tell the two runners apart.
func (m *migrator) runParallel(ctx context.Context, paths []string, b *report.Builder) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Workers)

	for _, path := range paths {
		path := path // per-iteration copy: required under Go 1.21 loop semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Errorf("migration cancelled: %w", err)
			}
			res := m.processFile(ctx, path)
			m.record(b, res)
			if m.opts.FailFast && res.Status == report.StatusErrored {
				return failFast(res)
			}
			return nil
		})
	}

	return g.Wait()
}

// failFast turns a recorded per-file failure into the run's error
func failFast(res report.FileResult) error {
	if res.Rule != "" {
		return errors.Errorf("file %s: phase %q: rule %q: %s", res.Path, res.Phase, res.Rule, res.Error)
	}
	return errors.Errorf("file %s: %s", res.Path, res.Error)
}
