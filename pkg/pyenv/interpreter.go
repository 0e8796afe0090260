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
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Interpreter candidates probed in order when none is configured.
var DefaultInterpreters = []string{"python3", "python"}

var versionPattern = regexp.MustCompile(`Python\s+(\d+\.\d+(?:\.\d+)?)`)

// FindInterpreter returns the path of the first python executable found in
// PATH among the given candidates. Empty candidates are skipped, so callers
// can pass a possibly-unset override followed by DefaultInterpreters.
func FindInterpreter(candidates ...string) (string, error) {
	if len(candidates) == 0 {
		candidates = DefaultInterpreters
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no python interpreter found in PATH")
}

// InterpreterVersion runs `python --version` and parses the reported version.
func InterpreterVersion(ctx context.Context, python string) (*semver.Version, error) {
	// Older interpreters print the version banner on stderr
	out, err := exec.CommandContext(ctx, python, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", python, err)
	}
	return ParseVersionOutput(string(out))
}

// ParseVersionOutput extracts a semantic version from a `python --version`
// banner such as "Python 3.12.4".
func ParseVersionOutput(out string) (*semver.Version, error) {
	matches := versionPattern.FindStringSubmatch(strings.TrimSpace(out))
	if len(matches) < 2 {
		return nil, fmt.Errorf("unrecognized version output %q", strings.TrimSpace(out))
	}
	v, err := semver.NewVersion(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid interpreter version %q: %w", matches[1], err)
	}
	return v, nil
}

// CheckVersion verifies the interpreter version against a semver constraint
// such as ">= 3.12".
func CheckVersion(v *semver.Version, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("python %s does not satisfy %q", v, constraint)
	}
	return nil
}
