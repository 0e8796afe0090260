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

// Package bootstrap covers the optional project scaffolding that surrounds
// environment setup: post-setup tasks from a taskfile, .env instantiation,
// and probing for external tools.
package bootstrap

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path"
	"runtime"
	"strings"

	"github.com/go-task/task/v3"
	"gopkg.in/yaml.v3"
)

const (
	EnvExampleFile = ".env.example"
	EnvLocalFile   = ".env.local"
	TaskFile       = "taskfile.yaml"
)

const (
	TaskPostSetup = "post_setup"
)

// HasTask reports whether the project's taskfile defines the named task.
// The taskfile is inspected structurally so that a missing or malformed file
// simply means "no task" rather than an error.
func HasTask(rootPath, taskName string) bool {
	file, err := os.ReadFile(path.Join(rootPath, TaskFile))
	if err != nil {
		return false
	}
	var tf struct {
		Tasks map[string]any `yaml:"tasks"`
	}
	if err := yaml.Unmarshal(file, &tf); err != nil {
		return false
	}
	_, ok := tf.Tasks[taskName]
	return ok
}

func NewTaskExecutor(dir string, verbose bool) *task.Executor {
	var o io.Writer = io.Discard
	var e io.Writer = os.Stderr
	if verbose {
		o = os.Stdout
	}
	return &task.Executor{
		Dir:       dir,
		Force:     false,
		ForceAll:  false,
		Insecure:  false,
		Download:  false,
		Offline:   false,
		Watch:     false,
		Verbose:   false,
		Silent:    !verbose,
		AssumeYes: false,
		Dry:       false,
		Summary:   false,
		Parallel:  false,
		Color:     true,

		Stdin:  os.Stdin,
		Stdout: o,
		Stderr: e,
	}
}

func NewTask(ctx context.Context, dir, taskName string, verbose bool) (func() error, error) {
	exe := NewTaskExecutor(dir, verbose)
	err := exe.Setup()
	if err != nil {
		return nil, err
	}

	return func() error {
		return exe.Run(ctx, &task.Call{
			Task: taskName,
		})
	}, nil
}

// Determine if `cmd` is a binary in PATH or a known alias
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return (err == nil || CommandIsAlias(cmd))
}

// Determine if `cmd` is a known alias
func CommandIsAlias(cmd string) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	out, err := exec.Command("alias", cmd).Output()
	if err != nil {
		return false
	}
	output := strings.TrimSpace(string(out))
	return strings.HasPrefix(output, cmd+"=")
}
