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
	"errors"
	"io/fs"

	"github.com/pelletier/go-toml"

	"github.com/venvctl/venvctl/pkg/util"
)

type ProjectKind string

const (
	ProjectKindPip     ProjectKind = "python.pip"
	ProjectKindUV      ProjectKind = "python.uv"
	ProjectKindPoetry  ProjectKind = "python.poetry"
	ProjectKindPipenv  ProjectKind = "python.pipenv"
	ProjectKindPDM     ProjectKind = "python.pdm"
	ProjectKindUnknown ProjectKind = "unknown"
)

// Manifest is the dependency manifest conventionally installed from for this
// kind of project.
func (k ProjectKind) Manifest() string {
	switch k {
	case ProjectKindPip:
		return "requirements.txt"
	case ProjectKindPipenv:
		return "Pipfile"
	case ProjectKindUV, ProjectKindPoetry, ProjectKindPDM:
		return "pyproject.toml"
	default:
		return ""
	}
}

// Installable reports whether a plain `pip install -r` is the right way to
// set the project up.
func (k ProjectKind) Installable() bool {
	return k == ProjectKindPip
}

// DetectProjectKind identifies the packaging tool a project uses by checking
// for lock files and pyproject tool tables, most definitive indicators first.
func DetectProjectKind(dir fs.FS) (ProjectKind, error) {
	if util.FileExists(dir, "uv.lock") {
		return ProjectKindUV, nil
	}
	if util.FileExists(dir, "poetry.lock") {
		return ProjectKindPoetry, nil
	}
	if util.FileExists(dir, "Pipfile.lock") || util.FileExists(dir, "Pipfile") {
		return ProjectKindPipenv, nil
	}
	if util.FileExists(dir, "pdm.lock") {
		return ProjectKindPDM, nil
	}
	if util.FileExists(dir, "requirements.txt") {
		return ProjectKindPip, nil
	}

	if util.FileExists(dir, "pyproject.toml") {
		data, err := fs.ReadFile(dir, "pyproject.toml")
		if err == nil {
			var doc map[string]any
			if err := toml.Unmarshal(data, &doc); err == nil {
				if tool, ok := doc["tool"].(map[string]any); ok {
					if _, hasPoetry := tool["poetry"]; hasPoetry {
						return ProjectKindPoetry, nil
					}
					if _, hasUv := tool["uv"]; hasUv {
						return ProjectKindUV, nil
					}
					if _, hasPdm := tool["pdm"]; hasPdm {
						return ProjectKindPDM, nil
					}
					if _, hasHatch := tool["hatch"]; hasHatch {
						return ProjectKindPip, nil
					}
				}
			}
		}
		// pyproject.toml present but not informative
		return ProjectKindPip, nil
	}

	return ProjectKindUnknown, errors.New("expected requirements.txt, pyproject.toml, or a lock file")
}
