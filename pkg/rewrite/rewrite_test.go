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

// 🧪 TestRuleApply tests the core rewrite contract
func TestRuleApply(t *testing.T) {
	tests := []struct {
		name        string
		rule        Rule
		original    string
		current     string
		want        string
		wantMatched bool
		wantErr     bool
		errContains string
	}{
		{
			name:        "replaces_every_occurrence",
			rule:        ReplaceLiteral("date", ".toDate()", ".toJSDate()"),
			original:    "a.toDate(); b.toDate();",
			current:     "a.toDate(); b.toDate();",
			want:        "a.toJSDate(); b.toJSDate();",
			wantMatched: true,
		},
		{
			name:        "no_match_returns_input_unchanged",
			rule:        ReplaceLiteral("date", ".toDate()", ".toJSDate()"),
			original:    "const x = 1;\n",
			current:     "const x = 1;\n",
			want:        "const x = 1;\n",
			wantMatched: false,
		},
		{
			name: "guard_false_blocks_present_pattern",
			rule: ReplaceLiteral("swap", "PaymentInfo", "PaymentMethod").
				When(NotContains("PaymentMethod")),
			original:    "uses PaymentInfo and PaymentMethod",
			current:     "uses PaymentInfo and PaymentMethod",
			want:        "uses PaymentInfo and PaymentMethod",
			wantMatched: false,
		},
		{
			name: "guard_true_lets_rule_fire",
			rule: ReplaceLiteral("swap", "PaymentInfo", "PaymentMethod").
				When(NotContains("PaymentMethod")),
			original:    "uses PaymentInfo only",
			current:     "uses PaymentInfo only",
			want:        "uses PaymentMethod only",
			wantMatched: true,
		},
		{
			name: "guard_sees_original_not_current",
			rule: ReplaceLiteral("second", "alpha", "beta").
				When(Contains("marker")),
			original:    "no sentinel here: alpha",
			current:     "marker introduced earlier: alpha",
			want:        "marker introduced earlier: alpha",
			wantMatched: false,
		},
		{
			name: "matched_even_when_text_is_unchanged",
			rule: Rule{
				Name:    "touch-comment",
				Match:   Literal("// TODO: migrate"),
				Replace: Template("$0"),
			},
			original:    "x()\n// TODO: migrate\n",
			current:     "x()\n// TODO: migrate\n",
			want:        "x()\n// TODO: migrate\n",
			wantMatched: true,
		},
		{
			name: "replacer_error_aborts_with_offset",
			rule: Rule{
				Name:  "explode",
				Match: Literal("boom"),
				Replace: func(Match) (string, error) {
					return "", errors.Errorf("unsupported construct")
				},
			},
			original:    "ok ok boom ok",
			current:     "ok ok boom ok",
			wantErr:     true,
			errContains: "offset 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched, err := tt.rule.Apply(tt.original, tt.current)
			if tt.wantErr {
				require.Error(t, err, "Apply should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should carry context")
				return
			}
			require.NoError(t, err, "Apply should succeed")
			assert.Equal(t, tt.want, got, "rewritten content should match")
			assert.Equal(t, tt.wantMatched, matched, "matched flag should match")
		})
	}
}

// 🧪 TestRuleConvergence tests that applying a rule twice is the same
// as applying it once
func TestRuleConvergence(t *testing.T) {
	rule := ReplaceLiteral("luxon-datetime",
		"import { DateTime } from '@acme/domain/datetime'",
		"import { DateTime } from 'luxon'",
	)
	content := "import { DateTime } from '@acme/domain/datetime'\nexport class A {}\n"

	once, matched, err := rule.Apply(content, content)
	require.NoError(t, err)
	require.True(t, matched, "first pass should fire")

	twice, matched, err := rule.Apply(once, once)
	require.NoError(t, err)
	assert.False(t, matched, "second pass should find nothing left to do")
	assert.Equal(t, once, twice, "second pass should be a fixed point")
}

// 🧪 TestRuleValidate tests rule completeness checks
func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name        string
		rule        Rule
		wantErr     bool
		errContains string
	}{
		{
			name: "valid_rule",
			rule: ReplaceLiteral("ok", "a", "b"),
		},
		{
			name:        "missing_name",
			rule:        Rule{Match: Literal("a"), Replace: Static("b")},
			wantErr:     true,
			errContains: "name is required",
		},
		{
			name:        "missing_matcher",
			rule:        Rule{Name: "x", Replace: Static("b")},
			wantErr:     true,
			errContains: "matcher is required",
		},
		{
			name:        "missing_replacer",
			rule:        Rule{Name: "x", Match: Literal("a")},
			wantErr:     true,
			errContains: "replacer is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}
