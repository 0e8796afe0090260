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

package setup

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Runner executes external commands. Besides the filesystem it is the only
// side-effecting dependency of the orchestrator.
type Runner interface {
	Run(ctx context.Context, dir string, env map[string]string, name string, args ...string) error
}

type execRunner struct {
	verbose bool
}

func NewExecRunner(verbose bool) Runner {
	return &execRunner{verbose: verbose}
}

func (r *execRunner) Run(ctx context.Context, dir string, env map[string]string, name string, args ...string) error {
	log := logr.FromContextOrDiscard(ctx)
	log.V(1).Info("running command", "name", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	if r.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return errors.Wrapf(err, "%s failed", name)
		}
		return nil
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s failed: %s", name, lastLines(string(out), 10))
	}
	return nil
}

// lastLines keeps error output readable by reporting only the tail of a
// command's combined output.
func lastLines(out string, n int) string {
	out = strings.TrimSpace(out)
	if out == "" {
		return "(no output)"
	}
	lines := strings.Split(out, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
