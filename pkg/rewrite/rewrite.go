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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📍 Match is a single occurrence of a pattern in file content
type Match struct {
	Text   string   // Matched text
	Groups []string // Capture groups; Groups[0] is the full match
	Start  int      // Byte offset of the first matched byte
	End    int      // Byte offset just past the last matched byte
}

// Group returns capture group n, or "" when the matcher captured fewer groups
func (m Match) Group(n int) string {
	if n < 0 || n >= len(m.Groups) {
		return ""
	}
	return m.Groups[n]
}

// 🔄 Replacer computes the replacement text for a single match
type Replacer func(m Match) (string, error)

// 🛡️ Guard decides whether a rule applies to a file at all.
// Guards are always evaluated against the content as it was loaded,
// never against the partially rewritten text of the current run.
type Guard func(content string) bool

// 🔍 Matcher finds every non-overlapping occurrence of a pattern,
// scanning left to right
type Matcher interface {
	// Find returns all matches in content, ordered by offset
	Find(content string) []Match

	// String describes the pattern for reports and errors
	String() string
}

// 📐 Rule is one named rewrite: a pattern, a replacement, and an
// optional guard
type Rule struct {
	Name    string   // Identifier used in reports and errors
	Match   Matcher  // Where the rule fires
	Replace Replacer // What each occurrence becomes
	Guard   Guard    // Optional file-level precondition
}

// When returns a copy of the rule gated by g
func (r Rule) When(g Guard) Rule {
	r.Guard = g
	return r
}

// Validate checks that the rule is complete
func (r Rule) Validate() error {
	if r.Name == "" {
		return errors.Errorf("rule name is required")
	}
	if r.Match == nil {
		return errors.Errorf("rule %q: matcher is required", r.Name)
	}
	if r.Replace == nil {
		return errors.Errorf("rule %q: replacer is required", r.Name)
	}
	return nil
}

// Apply rewrites every occurrence of the rule's pattern in current.
// The guard sees original, the content as loaded, so rules that ran
// earlier in the same pipeline cannot flip its decision. The matched
// result reports whether the rule fired at all, even when the
// replacement text equals the input.
func (r Rule) Apply(original, current string) (out string, matched bool, err error) {
	if r.Guard != nil && !r.Guard(original) {
		return current, false, nil
	}

	matches := r.Match.Find(current)
	if len(matches) == 0 {
		return current, false, nil
	}

	var b strings.Builder
	b.Grow(len(current))
	last := 0
	for _, m := range matches {
		repl, err := r.Replace(m)
		if err != nil {
			return "", false, errors.Errorf("replacing match at offset %d: %w", m.Start, err)
		}
		b.WriteString(current[last:m.Start])
		b.WriteString(repl)
		last = m.End
	}
	b.WriteString(current[last:])

	return b.String(), true, nil
}
