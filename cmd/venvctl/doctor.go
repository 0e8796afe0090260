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
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/venvctl/venvctl/pkg/bootstrap"
	"github.com/venvctl/venvctl/pkg/pyenv"
	"github.com/venvctl/venvctl/pkg/setup"
	"github.com/venvctl/venvctl/pkg/util"
)

const pythonDownloadsURL = "https://www.python.org/downloads/"

type toolCheck struct {
	name     string
	required bool
	probe    func(ctx context.Context) (string, error)
}

type toolResult struct {
	check   toolCheck
	version string
	err     error
}

var (
	DoctorCommands = []*cli.Command{
		{
			Name:     "doctor",
			Usage:    "Check that the external tools setup relies on are available",
			Category: "Core",
			Action:   runDoctor,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "open",
					Usage: "Open the Python downloads page in a browser if no interpreter is found",
				},
			},
		},
	}
)

func doctorChecks() []toolCheck {
	return []toolCheck{
		{
			name:     "python",
			required: true,
			probe: func(ctx context.Context) (string, error) {
				python, err := pyenv.FindInterpreter()
				if err != nil {
					return "", err
				}
				v, err := pyenv.InterpreterVersion(ctx, python)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (%s)", v, python), nil
			},
		},
		{
			name:     "pip",
			required: true,
			probe: func(ctx context.Context) (string, error) {
				python, err := pyenv.FindInterpreter()
				if err != nil {
					return "", fmt.Errorf("no interpreter to probe pip with: %w", err)
				}
				r := setup.NewExecRunner(false)
				if err := r.Run(ctx, ".", nil, python, "-m", "pip", "--version"); err != nil {
					return "", err
				}
				return "available via " + python + " -m pip", nil
			},
		},
		{
			name:     "uv",
			required: false,
			probe: func(ctx context.Context) (string, error) {
				if !bootstrap.CommandExists("uv") {
					return "", fmt.Errorf("not installed")
				}
				return "installed", nil
			},
		},
		{
			name:     "task",
			required: false,
			probe: func(ctx context.Context) (string, error) {
				if !bootstrap.CommandExists("task") {
					return "", fmt.Errorf("not installed (post-setup tasks run through the embedded executor)")
				}
				return "installed", nil
			},
		},
	}
}

func runDoctor(ctx context.Context, cmd *cli.Command) error {
	checks := doctorChecks()
	results := make([]toolResult, len(checks))

	eg, probeCtx := errgroup.WithContext(ctx)
	for i, check := range checks {
		eg.Go(func() error {
			version, err := check.probe(probeCtx)
			results[i] = toolResult{check: check, version: version, err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var missing []string
	for _, res := range results {
		switch {
		case res.err == nil:
			fmt.Printf("%s %s: %s\n", okStyle.Render("✓"), res.check.name, res.version)
		case res.check.required:
			fmt.Printf("%s %s: %s\n", failStyle.Render("✗"), res.check.name, res.err)
			missing = append(missing, res.check.name)
		default:
			fmt.Printf("%s %s: %s\n", warnStyle.Render("•"), res.check.name, util.Dimmed(res.err.Error()))
		}
	}

	if len(missing) == 0 {
		return nil
	}

	if cmd.Bool("open") {
		if err := browser.OpenURL(pythonDownloadsURL); err != nil {
			fmt.Println(util.Dimmed("failed to open " + pythonDownloadsURL))
		}
	}
	return fmt.Errorf("missing required tools: %s",
		strings.Join(util.MapStrings(missing, util.WrapWith("\"")), ", "))
}
