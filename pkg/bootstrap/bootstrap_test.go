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
)

func TestHasTask(t *testing.T) {
	dir := t.TempDir()

	if HasTask(dir, TaskPostSetup) {
		t.Error("hasTask should be false when no taskfile exists")
	}

	taskfile := `version: "3"
tasks:
  post_setup:
    cmds:
      - echo done
  lint:
    cmds:
      - ruff check .
`
	if err := os.WriteFile(filepath.Join(dir, TaskFile), []byte(taskfile), 0644); err != nil {
		t.Fatal(err)
	}

	if !HasTask(dir, TaskPostSetup) {
		t.Error("hasTask should find post_setup")
	}
	if !HasTask(dir, "lint") {
		t.Error("hasTask should find lint")
	}
	if HasTask(dir, "deploy") {
		t.Error("hasTask should not find undefined tasks")
	}
}

func TestHasTaskMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TaskFile), []byte(":\tnot yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if HasTask(dir, TaskPostSetup) {
		t.Error("hasTask should be false for a malformed taskfile")
	}
}

func TestCommandExists(t *testing.T) {
	if !CommandExists("sh") {
		t.Error("sh should exist on any supported platform")
	}
	if CommandExists("definitely-not-a-real-command-xyz") {
		t.Error("nonexistent commands should not be reported as present")
	}
}
