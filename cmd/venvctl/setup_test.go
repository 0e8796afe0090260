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

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/venvctl/venvctl/pkg/config"
	"github.com/venvctl/venvctl/pkg/setup"
)

// resolveWithArgs parses the setup command's flags from args and resolves
// options against dir.
func resolveWithArgs(t *testing.T, dir string, args ...string) (setup.Options, error) {
	t.Helper()
	var opts setup.Options
	var resolveErr error

	// the command also consults the --project global flag
	flags := append([]cli.Flag{&cli.StringFlag{Name: "project"}}, SetupCommands[0].Flags...)
	app := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, resolveErr = resolveSetupOptions(cmd, dir)
			return nil
		},
	}

	require.NoError(t, app.Run(context.Background(), append([]string{"test"}, args...)))
	return opts, resolveErr
}

func TestResolveSetupOptionsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	opts, err := resolveWithArgs(t, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, opts.Dir)
	assert.Empty(t, opts.VenvDir, "venv default is applied by the orchestrator")
	assert.False(t, opts.AssumeYes)
}

func TestResolveSetupOptionsFromTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	local := config.NewVenvctlTOML()
	local.Env.VenvDir = "env"
	local.Env.Python = "python3.12"
	local.Env.RequirePython = ">= 3.12"
	require.NoError(t, local.SaveTOMLFile(dir, config.VenvctlTOMLFile))

	opts, err := resolveWithArgs(t, dir)
	require.NoError(t, err)
	assert.Equal(t, "env", opts.VenvDir)
	assert.Equal(t, "python3.12", opts.Python)
	assert.Equal(t, ">= 3.12", opts.RequirePython)
}

func TestResolveSetupOptionsFlagsWin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	local := config.NewVenvctlTOML()
	local.Env.VenvDir = "env"
	require.NoError(t, local.SaveTOMLFile(dir, config.VenvctlTOMLFile))

	opts, err := resolveWithArgs(t, dir,
		"--venv", "other-env",
		"--requirements", "requirements-dev.txt",
		"--yes",
		"--upgrade-pip",
		"--env", "PIP_INDEX_URL=https://pypi.internal",
	)
	require.NoError(t, err)
	assert.Equal(t, "other-env", opts.VenvDir, "flags override venvctl.toml")
	assert.Equal(t, "requirements-dev.txt", opts.RequirementsFile)
	assert.True(t, opts.AssumeYes)
	assert.True(t, opts.UpgradePip)
	assert.Equal(t, "https://pypi.internal", opts.PipEnv["PIP_INDEX_URL"])
}

func TestResolveSetupOptionsFromUserProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	conf, err := config.LoadOrCreate()
	require.NoError(t, err)
	conf.Projects = []config.ProjectConfig{{
		Name:         "api",
		Dir:          "/work/api",
		VenvDir:      ".venv-api",
		Requirements: "requirements/prod.txt",
	}}
	conf.DefaultProject = "api"
	require.NoError(t, conf.PersistIfNeeded())

	opts, err := resolveWithArgs(t, ".")
	require.NoError(t, err)
	assert.Equal(t, "/work/api", opts.Dir, "default project supplies the working dir")
	assert.Equal(t, ".venv-api", opts.VenvDir)
	assert.Equal(t, "requirements/prod.txt", opts.RequirementsFile)
}
