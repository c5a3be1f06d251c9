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
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🧵 Regex compiles pattern into a matcher with capture group support.
// Patterns use Go regexp syntax; prefix with (?s) to let . span lines
// for multi-line constructs.
func Regex(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return &regexMatcher{re: re}, nil
}

// MustRegex is Regex for hand-written rule sets; it panics on a bad
// pattern the way regexp.MustCompile does.
func MustRegex(pattern string) Matcher {
	m, err := Regex(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) Find(content string) []Match {
	locs := m.re.FindAllStringSubmatchIndex(content, -1)
	if locs == nil {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		groups := make([]string, 0, len(loc)/2)
		for i := 0; i < len(loc); i += 2 {
			if loc[i] < 0 {
				// Unmatched optional group
				groups = append(groups, "")
				continue
			}
			groups = append(groups, content[loc[i]:loc[i+1]])
		}
		matches = append(matches, Match{
			Text:   content[loc[0]:loc[1]],
			Groups: groups,
			Start:  loc[0],
			End:    loc[1],
		})
	}
	return matches
}

func (m *regexMatcher) String() string {
	return fmt.Sprintf("regex(%s)", m.re.String())
}

// 🔤 Literal matches an exact substring
func Literal(text string) Matcher {
	return literalMatcher(text)
}

type literalMatcher string

func (m literalMatcher) Find(content string) []Match {
	if m == "" {
		return nil
	}
	var matches []Match
	for off := 0; ; {
		i := strings.Index(content[off:], string(m))
		if i < 0 {
			return matches
		}
		start := off + i
		end := start + len(m)
		matches = append(matches, Match{
			Text:   string(m),
			Groups: []string{string(m)},
			Start:  start,
			End:    end,
		})
		off = end
	}
}

func (m literalMatcher) String() string {
	return fmt.Sprintf("literal(%q)", string(m))
}

// 📞 Call matches invocations of callee with balanced parentheses.
// The callee may be dotted (TimeSlot.create). Each match captures the
// callee as group 1 and the raw argument text as group 2, so a
// Template replacer can unwrap or rewrap the call:
//
//	Rule{
//	    Name:    "unwrap-create",
//	    Match:   Call("TimeSlot.create"),
//	    Replace: Template("DateInterval.of($2)"),
//	}
//
// The scanner tracks nesting and skips string literals and comments,
// which is exactly where naive regexes for this job fall apart.
func Call(callee string) Matcher {
	return &callMatcher{callee: callee}
}

type callMatcher struct {
	callee string
}

func (m *callMatcher) Find(content string) []Match {
	if m.callee == "" {
		return nil
	}
	var matches []Match
	for off := 0; ; {
		i := strings.Index(content[off:], m.callee)
		if i < 0 {
			return matches
		}
		start := off + i
		end := start + len(m.callee)

		// Occurrence must be a whole identifier followed by an
		// open paren, not a substring of a longer name.
		if !identBoundary(content, start, end) || end >= len(content) || content[end] != '(' {
			off = start + 1
			continue
		}

		rparen, ok := scanBalanced(content, end)
		if !ok {
			off = start + 1
			continue
		}

		args := content[end+1 : rparen]
		matches = append(matches, Match{
			Text:   content[start : rparen+1],
			Groups: []string{content[start : rparen+1], m.callee, args},
			Start:  start,
			End:    rparen + 1,
		})
		off = rparen + 1
	}
}

func (m *callMatcher) String() string {
	return fmt.Sprintf("call(%s)", m.callee)
}

// identBoundary reports whether content[start:end] is not embedded in
// a larger identifier
func identBoundary(content string, start, end int) bool {
	if start > 0 && isIdentByte(content[start-1]) {
		return false
	}
	// A dot before the callee means a longer member chain; treat it
	// as part of the name so Call("create") won't match "x.create(".
	if start > 0 && content[start-1] == '.' {
		return false
	}
	if end < len(content) && isIdentByte(content[end]) {
		return false
	}
	return true
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// scanBalanced walks from the open paren at content[open] to its
// matching close paren. Quoted strings and comments are skipped
// byte by byte so a ')' inside either never closes the call.
// Returns the index of the closing paren.
func scanBalanced(content string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		case '\'', '"', '`':
			end, ok := scanString(content, i)
			if !ok {
				return 0, false
			}
			i = end
		case '/':
			if i+1 < len(content) {
				switch content[i+1] {
				case '/':
					i = scanLineComment(content, i)
				case '*':
					end, ok := scanBlockComment(content, i)
					if !ok {
						return 0, false
					}
					i = end
				}
			}
		}
	}
	return 0, false
}

// scanString returns the index of the closing quote
func scanString(content string, start int) (int, bool) {
	quote := content[start]
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i, true
		}
	}
	return 0, false
}

// scanLineComment returns the index of the trailing newline, or the
// last byte when the content ends mid-comment
func scanLineComment(content string, start int) int {
	for i := start + 2; i < len(content); i++ {
		if content[i] == '\n' {
			return i
		}
	}
	return len(content) - 1
}

// scanBlockComment returns the index of the final '/' of "*/"
func scanBlockComment(content string, start int) (int, bool) {
	for i := start + 2; i+1 < len(content); i++ {
		if content[i] == '*' && content[i+1] == '/' {
			return i + 1, true
		}
	}
	return 0, false
}

// TODO(dr.methodical): 🔧 template-literal ${} interpolation can nest
// backticks; scanString treats the whole literal as opaque instead
