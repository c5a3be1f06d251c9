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

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestGetVersionInfo tests that build metadata always has a usable shape
func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	require.NotNil(t, info, "version info should never be nil")

	assert.NotEmpty(t, info.Version, "version should fall back to dev")
	assert.NotEmpty(t, info.GoVersion, "go version comes from the runtime")
	assert.Contains(t, info.Platform, "/", "platform should be os/arch")
}

// 🧪 TestFormatVersion tests the human rendering
func TestFormatVersion(t *testing.T) {
	out := FormatVersion()

	assert.Contains(t, out, "shiftrc version info", "header should name the binary")
	assert.Contains(t, out, "Go:", "go line should be present")
	assert.True(t, strings.HasSuffix(out, "\n"), "output should end with a newline")
}
