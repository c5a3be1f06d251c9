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

	"gitlab.com/tozd/go/errors"
)

// 🎬 Phase is an ordered group of rules applied as a unit. Rules run
// in declared order over the cumulative text; every rule is attempted
// even when earlier ones already fired. A phase never mutates after
// construction.
type Phase struct {
	Name  string // Identifier used in reports and errors
	Rules []Rule // Applied in this order
}

// 📊 RuleOutcome records whether one rule fired on one file
type RuleOutcome struct {
	Rule    string // Rule name
	Matched bool   // Guard passed and pattern occurred
}

// NewPhase builds a phase from rules in application order
func NewPhase(name string, rules ...Rule) Phase {
	return Phase{Name: name, Rules: rules}
}

// Validate checks the phase and every rule in it
func (p Phase) Validate() error {
	if p.Name == "" {
		return errors.Errorf("phase name is required")
	}
	if len(p.Rules) == 0 {
		return errors.Errorf("phase %q has no rules", p.Name)
	}
	seen := make(map[string]bool, len(p.Rules))
	for i, r := range p.Rules {
		if err := r.Validate(); err != nil {
			return errors.Errorf("phase %q: rule %d: %w", p.Name, i, err)
		}
		if seen[r.Name] {
			return errors.Errorf("phase %q: duplicate rule name %q", p.Name, r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

// Apply runs every rule of the phase against current, threading the
// rewritten text from rule to rule. Guards still see original. The
// outcomes slice has one entry per rule in declared order. A rule
// error aborts the phase; the returned content must not be used.
func (p Phase) Apply(original, current string) (string, []RuleOutcome, error) {
	outcomes := make([]RuleOutcome, 0, len(p.Rules))
	for _, r := range p.Rules {
		out, matched, err := r.Apply(original, current)
		if err != nil {
			return "", nil, &RuleError{Phase: p.Name, Rule: r.Name, Err: err}
		}
		outcomes = append(outcomes, RuleOutcome{Rule: r.Name, Matched: matched})
		current = out
	}
	return current, outcomes, nil
}

// 💥 RuleError identifies exactly which rule of which phase failed,
// so a report can name the culprit without parsing error text
type RuleError struct {
	Phase string
	Rule  string
	Err   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("phase %q: rule %q: %v", e.Phase, e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
