// Copyright 2025 The venvctl Authors
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

package pyenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionOutput(t *testing.T) {
	v, err := ParseVersionOutput("Python 3.12.4\n")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.Major())
	assert.Equal(t, uint64(12), v.Minor())
	assert.Equal(t, uint64(4), v.Patch())

	v, err = ParseVersionOutput("Python 3.9")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v.Minor())

	_, err = ParseVersionOutput("zsh: command not found: python3")
	assert.Error(t, err)

	_, err = ParseVersionOutput("")
	assert.Error(t, err)
}

func TestCheckVersion(t *testing.T) {
	v, err := ParseVersionOutput("Python 3.12.1")
	require.NoError(t, err)

	assert.NoError(t, CheckVersion(v, ">= 3.12"))
	assert.NoError(t, CheckVersion(v, ">= 3, < 4"))
	assert.Error(t, CheckVersion(v, ">= 3.13"))
	assert.Error(t, CheckVersion(v, "not a constraint"))
}

func TestFindInterpreterSkipsEmptyCandidates(t *testing.T) {
	// "sh" stands in for an executable guaranteed to be present; the empty
	// override must not short-circuit the probe order.
	path, err := FindInterpreter("", "definitely-not-a-real-python", "sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestFindInterpreterNotFound(t *testing.T) {
	_, err := FindInterpreter("definitely-not-a-real-python")
	assert.Error(t, err)
}
