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

// Package setup implements the environment setup sequence: confirm, clear an
// existing environment if asked to, create the venv, verify its layout, and
// install dependencies. Each step is gated on the previous one and failures
// map to distinct exit codes for scripting.
package setup

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/venvctl/venvctl/pkg/pyenv"
	"github.com/venvctl/venvctl/pkg/util"
)

// Step identifies a phase of the setup sequence.
type Step string

const (
	StepVersionGate Step = "version gate"
	StepConfirm     Step = "confirm"
	StepRecreate    Step = "recreate"
	StepRemove      Step = "remove"
	StepCreate      Step = "create"
	StepActivate    Step = "activate"
	StepInstall     Step = "install"
)

// Exit codes, one per failure point. Callers rely on these being stable.
const (
	ExitDeclinedStart    = 1
	ExitDeclinedRecreate = 2
	ExitRemoveFailed     = 3
	ExitCreateFailed     = 4
	ExitActivateFailed   = 5
	ExitInstallFailed    = 6

	// version gate, only reachable with Options.RequirePython set
	ExitPythonMissing     = 11
	ExitPythonUnparseable = 12
	ExitPythonTooOld      = 13
)

// StepError reports which step failed and the exit code the process should
// terminate with.
type StepError struct {
	Step Step
	Code int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step Step, code int, err error) *StepError {
	return &StepError{Step: step, Code: code, Err: err}
}

// ConfirmFunc answers a yes/no question put to the user. Implementations
// must return false for anything other than an explicit affirmative.
type ConfirmFunc func(title, description string) (bool, error)

// ProgressFunc wraps a long-running action, typically with a spinner. A nil
// ProgressFunc runs the action directly.
type ProgressFunc func(title string, ctx context.Context, action func(ctx context.Context) error) error

type Options struct {
	// Dir is the project directory; venv and requirements paths are
	// resolved against it.
	Dir              string
	VenvDir          string
	RequirementsFile string
	// Python is the interpreter used to create the environment. When empty
	// the default candidates are probed.
	Python string
	// RequirePython enables the interpreter version gate with a semver
	// constraint such as ">= 3.12". Empty disables the gate.
	RequirePython string
	// AssumeYes answers every confirmation affirmatively.
	AssumeYes  bool
	UpgradePip bool
	// PipEnv is extra environment passed to pip, e.g. index credentials.
	PipEnv map[string]string
}

func (o *Options) applyDefaults() {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.VenvDir == "" {
		o.VenvDir = ".venv"
	}
	if o.RequirementsFile == "" {
		o.RequirementsFile = "requirements.txt"
	}
}

type Orchestrator struct {
	opts     Options
	confirm  ConfirmFunc
	runner   Runner
	progress ProgressFunc
}

func New(opts Options, confirm ConfirmFunc, runner Runner, progress ProgressFunc) *Orchestrator {
	opts.applyDefaults()
	if opts.AssumeYes {
		confirm = func(string, string) (bool, error) { return true, nil }
	} else if confirm == nil {
		// without AssumeYes the cancellation gates must not vanish
		confirm = func(string, string) (bool, error) {
			return false, errors.New("no confirmation handler configured")
		}
	}
	if progress == nil {
		progress = func(_ string, ctx context.Context, action func(ctx context.Context) error) error {
			return action(ctx)
		}
	}
	return &Orchestrator{opts: opts, confirm: confirm, runner: runner, progress: progress}
}

// Venv returns the environment the orchestrator creates or replaces.
func (o *Orchestrator) Venv() pyenv.Venv {
	return pyenv.NewVenv(util.ExpandPath(o.opts.Dir, o.opts.VenvDir))
}

// Run executes the whole sequence. Any failure terminates the run and is
// returned as a *StepError; nothing is retried.
func (o *Orchestrator) Run(ctx context.Context) error {
	log := logr.FromContextOrDiscard(ctx)

	python, err := o.resolveInterpreter(ctx)
	if err != nil {
		return err
	}
	log.V(1).Info("using interpreter", "python", python)

	if ok, err := o.confirm(
		fmt.Sprintf("Set up a virtual environment in [%s]?", o.opts.VenvDir),
		"Dependencies from "+o.opts.RequirementsFile+" will be installed into it.",
	); err != nil {
		return stepErr(StepConfirm, ExitDeclinedStart, err)
	} else if !ok {
		return stepErr(StepConfirm, ExitDeclinedStart, errors.New("setup cancelled"))
	}

	venv := o.Venv()
	if venv.Exists() {
		if ok, err := o.confirm(
			fmt.Sprintf("An environment already exists at [%s]. Delete and re-create it?", venv.Root),
			"The existing environment and everything installed in it will be removed.",
		); err != nil {
			return stepErr(StepRecreate, ExitDeclinedRecreate, err)
		} else if !ok {
			return stepErr(StepRecreate, ExitDeclinedRecreate, errors.New("existing environment left untouched"))
		}
		if err := os.RemoveAll(venv.Root); err != nil {
			return stepErr(StepRemove, ExitRemoveFailed, err)
		}
		log.V(1).Info("removed existing environment", "root", venv.Root)
	}

	if err := o.progress("Creating virtual environment...", ctx, func(ctx context.Context) error {
		return o.runner.Run(ctx, o.opts.Dir, nil, python, "-m", "venv", venv.Root)
	}); err != nil {
		return stepErr(StepCreate, ExitCreateFailed, err)
	}

	// A child process cannot activate the environment on behalf of the
	// parent shell, so activation is verified structurally and installs go
	// through the venv's own pip.
	if err := venv.Validate(); err != nil {
		return stepErr(StepActivate, ExitActivateFailed, err)
	}

	if err := o.progress("Installing dependencies...", ctx, func(ctx context.Context) error {
		if o.opts.UpgradePip {
			if err := o.runner.Run(ctx, o.opts.Dir, o.opts.PipEnv, venv.Python(), "-m", "pip", "install", "--upgrade", "pip"); err != nil {
				return err
			}
		}
		requirements := util.ExpandPath(o.opts.Dir, o.opts.RequirementsFile)
		return o.runner.Run(ctx, o.opts.Dir, o.opts.PipEnv, venv.Pip(), "install", "-r", requirements)
	}); err != nil {
		return stepErr(StepInstall, ExitInstallFailed, err)
	}

	return nil
}

// resolveInterpreter locates the interpreter and, when a constraint is
// configured, enforces the version gate before anything else runs.
func (o *Orchestrator) resolveInterpreter(ctx context.Context) (string, error) {
	candidates := pyenv.DefaultInterpreters
	if o.opts.Python != "" {
		candidates = append([]string{o.opts.Python}, candidates...)
	}
	python, err := pyenv.FindInterpreter(candidates...)
	if err != nil {
		if o.opts.RequirePython != "" {
			return "", stepErr(StepVersionGate, ExitPythonMissing, err)
		}
		// without a gate, let creation fail with its own code
		return firstNonEmpty(o.opts.Python, pyenv.DefaultInterpreters[0]), nil
	}

	if o.opts.RequirePython == "" {
		return python, nil
	}

	v, err := pyenv.InterpreterVersion(ctx, python)
	if err != nil {
		return "", stepErr(StepVersionGate, ExitPythonUnparseable, err)
	}
	if err := pyenv.CheckVersion(v, o.opts.RequirePython); err != nil {
		return "", stepErr(StepVersionGate, ExitPythonTooOld, err)
	}
	return python, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
