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
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".hcl")
}

// hclConfig mirrors Config with gohcl tags. Phases and rules are labeled
// blocks, so the HCL form reads:
//
//	phase "imports" {
//	  rule "swap-module" {
//	    literal = "old"
//	    replace = "new"
//	  }
//	}
type hclConfig struct {
	Root    string     `hcl:"root,optional"`
	Include []string   `hcl:"include,optional"`
	Exclude []string   `hcl:"exclude,optional"`
	Workers int        `hcl:"workers,optional"`
	Phases  []hclPhase `hcl:"phase,block"`
}

type hclPhase struct {
	Name  string    `hcl:"name,label"`
	Rules []hclRule `hcl:"rule,block"`
}

type hclRule struct {
	Name    string    `hcl:"name,label"`
	Pattern string    `hcl:"pattern,optional"`
	Literal string    `hcl:"literal,optional"`
	Call    string    `hcl:"call,optional"`
	Replace string    `hcl:"replace,optional"`
	Guard   *hclGuard `hcl:"guard,block"`
}

type hclGuard struct {
	Contains    string `hcl:"contains,optional"`
	NotContains string `hcl:"not_contains,optional"`
	Matches     string `hcl:"matches,optional"`
}

// 📝 Parse parses the config from HCL bytes
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %w", diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %w", diags)
	}

	return raw.config(), nil
}

// config converts the decoded HCL form into the shared model
func (h *hclConfig) config() *Config {
	cfg := &Config{
		Root:    h.Root,
		Include: h.Include,
		Exclude: h.Exclude,
		Workers: h.Workers,
		Phases:  make([]PhaseConfig, 0, len(h.Phases)),
	}

	for _, hp := range h.Phases {
		phase := PhaseConfig{
			Name:  hp.Name,
			Rules: make([]RuleConfig, 0, len(hp.Rules)),
		}
		for _, hr := range hp.Rules {
			rule := RuleConfig{
				Name:    hr.Name,
				Pattern: hr.Pattern,
				Literal: hr.Literal,
				Call:    hr.Call,
				Replace: hr.Replace,
			}
			if hr.Guard != nil {
				rule.Guard = &GuardConfig{
					Contains:    hr.Guard.Contains,
					NotContains: hr.Guard.NotContains,
					Matches:     hr.Guard.Matches,
				}
			}
			phase.Rules = append(phase.Rules, rule)
		}
		cfg.Phases = append(cfg.Phases, phase)
	}

	return cfg
}
