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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/shiftrc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

const (
	// 📌 DefaultConfigName is the file the CLI looks for when --config is not set
	DefaultConfigName = ".shiftrc.hcl"

	// 📌 BareConfigName carries no extension hint and is probed as YAML, then HCL
	BareConfigName = ".shiftrc"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config is the complete migration configuration
type Config struct {
	Root    string        `json:"root,omitempty" yaml:"root,omitempty" toml:"root"`
	Include []string      `json:"include,omitempty" yaml:"include,omitempty" toml:"include"`
	Exclude []string      `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude"`
	Workers int           `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers"`
	Phases  []PhaseConfig `json:"phases" yaml:"phases" toml:"phases"`
}

// 🎬 PhaseConfig is an ordered group of rules applied as a unit
type PhaseConfig struct {
	Name  string       `json:"name" yaml:"name" toml:"name"`
	Rules []RuleConfig `json:"rules" yaml:"rules" toml:"rules"`
}

// 📐 RuleConfig declares a single rewrite rule. Exactly one of Pattern,
// Literal, or Call selects the matcher. Replace is a template for pattern
// and call rules ($1, $2, ...) and plain text for literal rules.
type RuleConfig struct {
	Name    string       `json:"name" yaml:"name" toml:"name"`
	Pattern string       `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern"`
	Literal string       `json:"literal,omitempty" yaml:"literal,omitempty" toml:"literal"`
	Call    string       `json:"call,omitempty" yaml:"call,omitempty" toml:"call"`
	Replace string       `json:"replace,omitempty" yaml:"replace,omitempty" toml:"replace"`
	Guard   *GuardConfig `json:"guard,omitempty" yaml:"guard,omitempty" toml:"guard"`
}

// 🛡️ GuardConfig gates a rule on the content a file had before any
// phase touched it. Multiple conditions must all hold.
type GuardConfig struct {
	Contains    string `json:"contains,omitempty" yaml:"contains,omitempty" toml:"contains"`
	NotContains string `json:"not_contains,omitempty" yaml:"not_contains,omitempty" toml:"not_contains"`
	Matches     string `json:"matches,omitempty" yaml:"matches,omitempty" toml:"matches"`
}

// 📂 Load reads, parses, and validates the config file at path
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading config")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if p := GetParser(path); p != nil {
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
	} else if filepath.Base(path) == BareConfigName {
		cfg, err = probe(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
	} else {
		return nil, errors.Errorf("no parser found for config file: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// probe handles a bare config file with no extension hint. YAML goes
// first because valid YAML is cheap to rule out, HCL second.
func probe(ctx context.Context, data []byte) (*Config, error) {
	cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr == nil {
		return cfg, nil
	}

	cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
	if hclErr == nil {
		return cfg, nil
	}

	return nil, errors.Errorf("not parseable as YAML (%v) or HCL: %w", yamlErr, hclErr)
}

// ✅ Validate checks structural invariants and applies defaults. A config
// that passes Validate can still fail Compile on a malformed pattern.
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = "."
	}

	if cfg.Workers < 0 {
		return errors.Errorf("workers must be non-negative, got %d", cfg.Workers)
	}

	if err := cfg.Filter().Validate(); err != nil {
		return errors.Errorf("validating file filters: %w", err)
	}

	if len(cfg.Phases) == 0 {
		return errors.Errorf("at least one phase is required")
	}

	seen := make(map[string]bool, len(cfg.Phases))
	for i, phase := range cfg.Phases {
		if err := phase.validate(); err != nil {
			return errors.Errorf("phase %d: %w", i, err)
		}
		if seen[phase.Name] {
			return errors.Errorf("duplicate phase name %q", phase.Name)
		}
		seen[phase.Name] = true
	}

	return nil
}

// 🔍 Filter returns the file filter declared by the config
func (cfg *Config) Filter() walker.Filter {
	return walker.Filter{Include: cfg.Include, Exclude: cfg.Exclude}
}

func (p *PhaseConfig) validate() error {
	if p.Name == "" {
		return errors.Errorf("name is required")
	}

	if len(p.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	for i, rule := range p.Rules {
		if err := rule.validate(); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}

	return nil
}

func (r *RuleConfig) validate() error {
	if r.Name == "" {
		return errors.Errorf("name is required")
	}

	matchers := 0
	for _, field := range []string{r.Pattern, r.Literal, r.Call} {
		if field != "" {
			matchers++
		}
	}
	if matchers == 0 {
		return errors.Errorf("one of pattern, literal, or call is required")
	}
	if matchers > 1 {
		return errors.Errorf("pattern, literal, and call are mutually exclusive")
	}

	if r.Guard != nil && *r.Guard == (GuardConfig{}) {
		return errors.Errorf("guard requires contains, not_contains, or matches")
	}

	return nil
}
