package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestTemplateExpansion tests $n group expansion
func TestTemplateExpansion(t *testing.T) {
	match := Match{
		Text:   "TimeSlot.create(start, end)",
		Groups: []string{"TimeSlot.create(start, end)", "TimeSlot.create", "start, end"},
	}

	tests := []struct {
		name        string
		tmpl        string
		want        string
		wantErr     bool
		errContains string
	}{
		{
			name: "plain_text_passes_through",
			tmpl: "DateInterval.of(a, b)",
			want: "DateInterval.of(a, b)",
		},
		{
			name: "numbered_groups",
			tmpl: "DateInterval.of($2)",
			want: "DateInterval.of(start, end)",
		},
		{
			name: "whole_match",
			tmpl: "/* was: $0 */",
			want: "/* was: TimeSlot.create(start, end) */",
		},
		{
			name: "braced_group",
			tmpl: "${1}!",
			want: "TimeSlot.create!",
		},
		{
			name: "dollar_dollar_is_literal",
			tmpl: "cost: $$2",
			want: "cost: $2",
		},
		{
			name: "dollar_before_letter_is_kept",
			tmpl: "jquery: $el",
			want: "jquery: $el",
		},
		{
			name: "trailing_dollar_is_kept",
			tmpl: "end$",
			want: "end$",
		},
		{
			name:        "out_of_range_group_fails",
			tmpl:        "$7",
			wantErr:     true,
			errContains: "group $7 not captured",
		},
		{
			name:        "unclosed_brace_fails",
			tmpl:        "${1",
			wantErr:     true,
			errContains: "unclosed ${",
		},
		{
			name:        "non_numeric_brace_fails",
			tmpl:        "${name}",
			wantErr:     true,
			errContains: "not a group number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Template(tt.tmpl)(match)
			if tt.wantErr {
				require.Error(t, err, "expansion should fail")
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err, "expansion should succeed")
			assert.Equal(t, tt.want, got, "expanded text should match")
		})
	}
}

// 🧪 TestStaticAndDelete tests the trivial replacers
func TestStaticAndDelete(t *testing.T) {
	m := Match{Text: "whatever", Groups: []string{"whatever"}}

	got, err := Static("fixed")(m)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)

	got, err = Delete()(m)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
