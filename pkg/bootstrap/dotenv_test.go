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

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiateDotEnv(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "service")
	require.NoError(t, os.Mkdir(sub, 0755))

	require.NoError(t, os.WriteFile(
		filepath.Join(root, EnvExampleFile),
		[]byte("DATABASE_URL=postgres://localhost\nAPP_SECRET=changeme\n"), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(sub, EnvExampleFile),
		[]byte("APP_SECRET=changeme\n"), 0644))

	prompted := map[string]int{}
	err := InstantiateDotEnv(root, map[string]string{
		"DATABASE_URL": "postgres://db.internal",
	}, func(key, value string) (string, error) {
		prompted[key]++
		return value + "-prompted", nil
	})
	require.NoError(t, err)

	// substituted keys are never prompted, prompted keys only once
	assert.Equal(t, map[string]int{"APP_SECRET": 1}, prompted)

	rootEnv, err := godotenv.Read(filepath.Join(root, EnvLocalFile))
	require.NoError(t, err)
	assert.Equal(t, "postgres://db.internal", rootEnv["DATABASE_URL"])
	assert.Equal(t, "changeme-prompted", rootEnv["APP_SECRET"])

	subEnv, err := godotenv.Read(filepath.Join(sub, EnvLocalFile))
	require.NoError(t, err)
	assert.Equal(t, "changeme-prompted", subEnv["APP_SECRET"])
}

func TestInstantiateDotEnvNoExamples(t *testing.T) {
	root := t.TempDir()
	err := InstantiateDotEnv(root, nil, func(key, value string) (string, error) {
		t.Error("prompt should not be called when no examples exist")
		return value, nil
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, EnvLocalFile))
	assert.True(t, os.IsNotExist(err))
}
