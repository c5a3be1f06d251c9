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

package config

import (
	"regexp"

	"github.com/walteh/shiftrc/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// 🏗️ Compile lowers the declarative config into executable phases.
// Pattern and guard regexes compile here, so a malformed expression is
// rejected before any file is touched.
func (cfg *Config) Compile() ([]rewrite.Phase, error) {
	phases := make([]rewrite.Phase, 0, len(cfg.Phases))

	for _, pc := range cfg.Phases {
		rules := make([]rewrite.Rule, 0, len(pc.Rules))
		for _, rc := range pc.Rules {
			rule, err := rc.compile()
			if err != nil {
				return nil, errors.Errorf("phase %q: rule %q: %w", pc.Name, rc.Name, err)
			}
			rules = append(rules, rule)
		}

		phase := rewrite.NewPhase(pc.Name, rules...)
		if err := phase.Validate(); err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}

	return phases, nil
}

func (r *RuleConfig) compile() (rewrite.Rule, error) {
	var (
		matcher rewrite.Matcher
		replace rewrite.Replacer
		err     error
	)

	switch {
	case r.Pattern != "":
		matcher, err = rewrite.Regex(r.Pattern)
		if err != nil {
			return rewrite.Rule{}, err
		}
		replace = rewrite.Template(r.Replace)
	case r.Literal != "":
		matcher = rewrite.Literal(r.Literal)
		replace = rewrite.Static(r.Replace)
	case r.Call != "":
		matcher = rewrite.Call(r.Call)
		replace = rewrite.Template(r.Replace)
	default:
		return rewrite.Rule{}, errors.Errorf("one of pattern, literal, or call is required")
	}

	rule := rewrite.Rule{Name: r.Name, Match: matcher, Replace: replace}

	if r.Guard != nil {
		guard, err := r.Guard.compile()
		if err != nil {
			return rewrite.Rule{}, err
		}
		rule = rule.When(guard)
	}

	return rule, nil
}

func (g *GuardConfig) compile() (rewrite.Guard, error) {
	var guards []rewrite.Guard

	if g.Contains != "" {
		guards = append(guards, rewrite.Contains(g.Contains))
	}
	if g.NotContains != "" {
		guards = append(guards, rewrite.NotContains(g.NotContains))
	}
	if g.Matches != "" {
		re, err := regexp.Compile(g.Matches)
		if err != nil {
			return nil, errors.Errorf("compiling guard pattern: %w", err)
		}
		guards = append(guards, rewrite.Matches(re))
	}

	switch len(guards) {
	case 0:
		return nil, errors.Errorf("guard requires contains, not_contains, or matches")
	case 1:
		return guards[0], nil
	default:
		return rewrite.All(guards...), nil
	}
}
