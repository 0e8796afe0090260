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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// scaffoldVenv creates the minimal on-disk layout Validate expects.
func scaffoldVenv(t *testing.T, root string) {
	t.Helper()
	v := NewVenv(root)
	if err := os.MkdirAll(v.BinDir(), 0755); err != nil {
		t.Fatalf("failed to scaffold venv: %v", err)
	}
	for _, p := range []string{v.ActivateScript(), v.Pip()} {
		if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatalf("failed to scaffold venv: %v", err)
		}
	}
}

func TestVenvLayoutUnix(t *testing.T) {
	v := newVenvForOS("/work/.venv", "linux")
	if v.BinDir() != filepath.Join("/work/.venv", "bin") {
		t.Errorf("unexpected bin dir %s", v.BinDir())
	}
	if filepath.Base(v.Pip()) != "pip" {
		t.Errorf("unexpected pip path %s", v.Pip())
	}
	if !strings.HasPrefix(v.ActivationCommand(), "source ") {
		t.Errorf("unix activation should be sourced, got %s", v.ActivationCommand())
	}
}

func TestVenvLayoutWindows(t *testing.T) {
	v := newVenvForOS(`C:\work\.venv`, "windows")
	if filepath.Base(v.BinDir()) != "Scripts" {
		t.Errorf("unexpected bin dir %s", v.BinDir())
	}
	if filepath.Base(v.Pip()) != "pip.exe" {
		t.Errorf("unexpected pip path %s", v.Pip())
	}
	if !strings.HasSuffix(v.ActivationCommand(), "Activate.ps1") {
		t.Errorf("windows activation should point at the powershell script, got %s", v.ActivationCommand())
	}
}

func TestVenvValidate(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".venv")
	v := NewVenv(root)

	if v.Exists() {
		t.Error("venv should not exist before scaffolding")
	}
	if err := v.Validate(); err == nil {
		t.Error("validation should fail for a missing environment")
	}

	scaffoldVenv(t, root)

	if !v.Exists() {
		t.Error("venv should exist after scaffolding")
	}
	if err := v.Validate(); err != nil {
		t.Errorf("validation should pass for a complete environment: %v", err)
	}

	// a venv without pip is unusable for installs
	if err := os.Remove(v.Pip()); err != nil {
		t.Fatal(err)
	}
	if err := v.Validate(); err == nil {
		t.Error("validation should fail when pip is missing")
	}
}
