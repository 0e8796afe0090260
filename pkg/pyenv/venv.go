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
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/venvctl/venvctl/pkg/util"
)

// Venv models the on-disk layout of a virtual environment. The layout is
// produced entirely by `python -m venv`; this type only knows where to find
// things inside it.
type Venv struct {
	Root string
	goos string
}

func NewVenv(root string) Venv {
	return Venv{Root: root, goos: runtime.GOOS}
}

func newVenvForOS(root, goos string) Venv {
	return Venv{Root: root, goos: goos}
}

func (v Venv) windows() bool {
	return v.goos == "windows"
}

func (v Venv) BinDir() string {
	if v.windows() {
		return filepath.Join(v.Root, "Scripts")
	}
	return filepath.Join(v.Root, "bin")
}

func (v Venv) Python() string {
	if v.windows() {
		return filepath.Join(v.BinDir(), "python.exe")
	}
	return filepath.Join(v.BinDir(), "python")
}

func (v Venv) Pip() string {
	if v.windows() {
		return filepath.Join(v.BinDir(), "pip.exe")
	}
	return filepath.Join(v.BinDir(), "pip")
}

func (v Venv) ActivateScript() string {
	if v.windows() {
		return filepath.Join(v.BinDir(), "Activate.ps1")
	}
	return filepath.Join(v.BinDir(), "activate")
}

// ActivationCommand is the command a user runs in their own shell to enter
// the environment. A child process cannot activate an environment on the
// parent shell's behalf, so this is reported rather than executed.
func (v Venv) ActivationCommand() string {
	if v.windows() {
		return v.ActivateScript()
	}
	return "source " + v.ActivateScript()
}

func (v Venv) Exists() bool {
	return util.DirExists(v.Root)
}

// Validate checks that the environment has the pieces later steps rely on:
// the activation script and a pip executable.
func (v Venv) Validate() error {
	for _, p := range []string{v.ActivateScript(), v.Pip()} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("environment at %s is missing %s: %w", v.Root, filepath.Base(p), err)
		}
	}
	return nil
}
