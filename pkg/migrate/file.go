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
	"github.com/walteh/shiftrc/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// 🚦 FileState tracks one file through the run
type FileState int

const (
	StatePending     FileState = iota
	StateLoaded                // Content read into memory
	StateTransformed           // Every phase applied
	StateWritten               // Rewritten content persisted
	StateUnchanged             // No phase produced a difference
	StateErrored               // Failed; file on disk untouched
)

// String returns a string representation of FileState
func (s FileState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoaded:
		return "loaded"
	case StateTransformed:
		return "transformed"
	case StateWritten:
		return "written"
	case StateUnchanged:
		return "unchanged"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// 📄 processFile moves one file through the state machine. Every
// failure is contained here: the result records it and the caller
// moves on to the next file. On any error path the file on disk is
// exactly as it was.
func (m *migrator) processFile(ctx context.Context, path string) report.FileResult {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()

	state := StatePending
	advance := func(next FileState) {
		logger.Debug().
			Str("from", state.String()).
			Str("to", next.String()).
			Msg("file state")
		state = next
	}

	raw, err := m.opts.Tree.ReadFile(ctx, path)
	if err != nil {
		advance(StateErrored)
		return report.FileResult{
			Path:   path,
			Status: report.StatusErrored,
			Error:  err.Error(),
		}
	}
	advance(StateLoaded)

	// Guards see original for the whole run; only the cumulative
	// text moves forward.
	original := string(raw)
	current := original
	var firedPhases []string

	for _, phase := range m.opts.Phases {
		out, outcomes, err := phase.Apply(original, current)
		if err != nil {
			advance(StateErrored)
			res := report.FileResult{
				Path:   path,
				Status: report.StatusErrored,
				Error:  err.Error(),
			}
			var ruleErr *rewrite.RuleError
			if errors.As(err, &ruleErr) {
				res.Phase = ruleErr.Phase
				res.Rule = ruleErr.Rule
				res.Error = ruleErr.Err.Error()
			}
			return res
		}
		if anyMatched(outcomes) {
			firedPhases = append(firedPhases, phase.Name)
		}
		current = out
	}
	advance(StateTransformed)

	if current == original {
		advance(StateUnchanged)
		return report.FileResult{
			Path:        path,
			Status:      report.StatusUnchanged,
			FiredPhases: firedPhases,
		}
	}

	if m.opts.DryRun {
		return report.FileResult{
			Path:        path,
			Status:      report.StatusChanged,
			FiredPhases: firedPhases,
		}
	}

	if err := m.opts.Tree.WriteFile(ctx, path, []byte(current)); err != nil {
		advance(StateErrored)
		return report.FileResult{
			Path:   path,
			Status: report.StatusErrored,
			Error:  err.Error(),
		}
	}
	advance(StateWritten)

	return report.FileResult{
		Path:        path,
		Status:      report.StatusWritten,
		FiredPhases: firedPhases,
	}
}

func anyMatched(outcomes []rewrite.RuleOutcome) bool {
	for _, o := range outcomes {
		if o.Matched {
			return true
		}
	}
	return false
}
