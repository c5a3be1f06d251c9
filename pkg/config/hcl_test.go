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

package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/shiftrc/pkg/config"
)

// 🧪 TestHCLParser tests HCL decoding with labeled phase and rule blocks
func TestHCLParser(t *testing.T) {
	ctx := context.Background()
	parser := &config.HCLParser{}

	t.Run("full_config", func(t *testing.T) {
		data := []byte(`
root    = "src"
include = ["**/*.ts"]
workers = 4

phase "imports" {
  rule "luxon-datetime" {
    literal = "import { DateTime } from '@acme/datetime'"
    replace = "import { DateTime } from 'luxon'"
  }
}

phase "call-sites" {
  rule "to-jsdate" {
    pattern = "\\.toDate\\(\\)"
    replace = ".toJSDate()"

    guard {
      contains = "DateTime"
    }
  }

  rule "unwrap-shim" {
    call    = "shimDate"
    replace = "$2"
  }
}
`)

		cfg, err := parser.Parse(ctx, data)
		require.NoError(t, err, "parsing HCL config")

		assert.Equal(t, "src", cfg.Root, "root should match")
		assert.Equal(t, []string{"**/*.ts"}, cfg.Include, "include globs should match")
		assert.Equal(t, 4, cfg.Workers, "workers should match")

		require.Len(t, cfg.Phases, 2, "should have two phases")
		assert.Equal(t, "imports", cfg.Phases[0].Name, "block label should become the phase name")

		require.Len(t, cfg.Phases[1].Rules, 2, "second phase should have two rules")

		guarded := cfg.Phases[1].Rules[0]
		assert.Equal(t, "to-jsdate", guarded.Name, "block label should become the rule name")
		assert.Equal(t, `\.toDate\(\)`, guarded.Pattern, "escaped pattern should decode")
		require.NotNil(t, guarded.Guard, "guard block should be parsed")
		assert.Equal(t, "DateTime", guarded.Guard.Contains, "guard condition should match")

		call := cfg.Phases[1].Rules[1]
		assert.Equal(t, "shimDate", call.Call, "call matcher should match")
		assert.Equal(t, "$2", call.Replace, "replace template should match")
		assert.Nil(t, call.Guard, "absent guard block should stay nil")
	})

	t.Run("declared_order_is_preserved", func(t *testing.T) {
		data := []byte(`
phase "one" {
  rule "a" {
    literal = "x"
  }
}

phase "two" {
  rule "b" {
    literal = "y"
  }
}
`)

		cfg, err := parser.Parse(ctx, data)
		require.NoError(t, err, "parsing HCL config")

		require.Len(t, cfg.Phases, 2, "should have two phases")
		assert.Equal(t, "one", cfg.Phases[0].Name, "first declared phase should come first")
		assert.Equal(t, "two", cfg.Phases[1].Name, "second declared phase should come second")
	})

	t.Run("syntax_error", func(t *testing.T) {
		data := []byte(`phase "broken" {`)

		_, err := parser.Parse(ctx, data)
		require.Error(t, err, "unclosed block should fail")
		assert.Contains(t, err.Error(), "parsing HCL", "error should come from the parser")
	})

	t.Run("unknown_attribute", func(t *testing.T) {
		data := []byte(`
rooot = "src"

phase "imports" {
  rule "swap" {
    literal = "old"
  }
}
`)

		_, err := parser.Parse(ctx, data)
		require.Error(t, err, "unknown attribute should fail")
		assert.Contains(t, err.Error(), "decoding HCL", "error should come from decoding")
	})
}
