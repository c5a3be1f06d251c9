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

package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🧪 TestPhaseApply tests ordered rule composition within a phase
func TestPhaseApply(t *testing.T) {
	t.Run("rules_thread_cumulative_text", func(t *testing.T) {
		phase := NewPhase("rename",
			ReplaceLiteral("first", "alpha", "beta"),
			ReplaceLiteral("second", "beta", "gamma"),
		)

		got, outcomes, err := phase.Apply("alpha", "alpha")
		require.NoError(t, err)
		assert.Equal(t, "gamma", got, "second rule should see the first rule's output")
		assert.Equal(t, []RuleOutcome{
			{Rule: "first", Matched: true},
			{Rule: "second", Matched: true},
		}, outcomes)
	})

	t.Run("every_rule_is_attempted", func(t *testing.T) {
		phase := NewPhase("mixed",
			ReplaceLiteral("misses", "absent", "x"),
			ReplaceLiteral("hits", "present", "replaced"),
		)

		got, outcomes, err := phase.Apply("present", "present")
		require.NoError(t, err)
		assert.Equal(t, "replaced", got)
		assert.Equal(t, []RuleOutcome{
			{Rule: "misses", Matched: false},
			{Rule: "hits", Matched: true},
		}, outcomes)
	})

	t.Run("declared_order_is_applied_order", func(t *testing.T) {
		// Reversed declaration gives a different result, so order
		// is observable and therefore part of the contract.
		forward := NewPhase("fwd",
			ReplaceLiteral("a-to-b", "a", "b"),
			ReplaceLiteral("b-to-c", "b", "c"),
		)
		backward := NewPhase("bwd",
			ReplaceLiteral("b-to-c", "b", "c"),
			ReplaceLiteral("a-to-b", "a", "b"),
		)

		fwd, _, err := forward.Apply("a", "a")
		require.NoError(t, err)
		bwd, _, err := backward.Apply("a", "a")
		require.NoError(t, err)

		assert.Equal(t, "c", fwd)
		assert.Equal(t, "b", bwd)
	})

	t.Run("rule_error_carries_identity", func(t *testing.T) {
		phase := NewPhase("call-sites",
			ReplaceLiteral("fine", "x", "y"),
			Rule{
				Name:  "broken",
				Match: Literal("z"),
				Replace: func(Match) (string, error) {
					return "", errors.Errorf("cannot rewrite this shape")
				},
			},
		)

		_, _, err := phase.Apply("xz", "xz")
		require.Error(t, err)

		var ruleErr *RuleError
		require.ErrorAs(t, err, &ruleErr, "error should be a RuleError")
		assert.Equal(t, "call-sites", ruleErr.Phase)
		assert.Equal(t, "broken", ruleErr.Rule)
		assert.Contains(t, err.Error(), "cannot rewrite this shape")
	})
}

// 🧪 TestPhaseValidate tests phase construction checks
func TestPhaseValidate(t *testing.T) {
	tests := []struct {
		name        string
		phase       Phase
		wantErr     bool
		errContains string
	}{
		{
			name:  "valid_phase",
			phase: NewPhase("imports", ReplaceLiteral("r", "a", "b")),
		},
		{
			name:        "missing_name",
			phase:       NewPhase("", ReplaceLiteral("r", "a", "b")),
			wantErr:     true,
			errContains: "phase name is required",
		},
		{
			name:        "no_rules",
			phase:       NewPhase("empty"),
			wantErr:     true,
			errContains: `phase "empty" has no rules`,
		},
		{
			name: "duplicate_rule_names",
			phase: NewPhase("dups",
				ReplaceLiteral("same", "a", "b"),
				ReplaceLiteral("same", "c", "d"),
			),
			wantErr:     true,
			errContains: `duplicate rule name "same"`,
		},
		{
			name: "invalid_rule_is_located",
			phase: NewPhase("partial",
				ReplaceLiteral("ok", "a", "b"),
				Rule{Name: "no-matcher", Replace: Static("x")},
			),
			wantErr:     true,
			errContains: `phase "partial": rule 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.phase.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}
