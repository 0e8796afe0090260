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
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/venvctl/venvctl/pkg/bootstrap"
	"github.com/venvctl/venvctl/pkg/config"
	"github.com/venvctl/venvctl/pkg/pyenv"
	"github.com/venvctl/venvctl/pkg/setup"
	"github.com/venvctl/venvctl/pkg/util"
)

var (
	SetupCommands = []*cli.Command{
		{
			Name:      "setup",
			Usage:     "Create a virtual environment and install dependencies into it",
			Category:  "Core",
			Action:    setupEnvironment,
			ArgsUsage: "[dir]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "venv",
					Usage: "`DIR` of the virtual environment, relative to the project (default: .venv)",
				},
				&cli.StringFlag{
					Name:    "requirements",
					Aliases: []string{"r"},
					Usage:   "Requirements `FILE` to install from (default: requirements.txt)",
				},
				&cli.StringFlag{
					Name:  "python",
					Usage: "Python `INTERPRETER` used to create the environment",
				},
				&cli.StringFlag{
					Name:  "require-python",
					Usage: "Refuse to proceed unless the interpreter satisfies `CONSTRAINT`, e.g. \">= 3.12\"",
				},
				&cli.StringSliceFlag{
					Name:  "env",
					Usage: "KEY=VALUE pairs passed to pip, e.g. index credentials",
				},
				&cli.BoolFlag{
					Name:  "upgrade-pip",
					Usage: "Upgrade pip inside the environment before installing",
				},
				&cli.BoolFlag{
					Name:  "skip-post-setup",
					Usage: "Do not offer to run the post_setup task even if the project defines one",
				},
				&cli.BoolFlag{
					Name:  "save",
					Usage: "Write the resolved settings to " + config.VenvctlTOMLFile + " so later runs need no flags",
				},
				yesFlag,
			},
		},
	}
)

func setupEnvironment(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		dir = "."
	}

	opts, err := resolveSetupOptions(cmd, dir)
	if err != nil {
		return err
	}

	if !opts.AssumeYes && !stdinIsTTY() {
		return errors.New("stdin is not a terminal; pass --yes to run unattended")
	}

	warnIfNotPipProject(opts.Dir)

	orch := setup.New(opts, confirmPrompt, setup.NewExecRunner(cmd.Bool("verbose")), util.Await)
	if err := orch.Run(ctx); err != nil {
		return err
	}

	venv := orch.Venv()
	fmt.Println("Environment ready at [" + util.Accented(venv.Root) + "]")
	fmt.Println("Activate it with: " + activationStyle.Render(venv.ActivationCommand()))

	if cmd.Bool("save") {
		if err := saveSetupOptions(opts); err != nil {
			return err
		}
	}

	if !cmd.Bool("skip-post-setup") {
		if err := offerPostSetupTask(ctx, cmd, opts); err != nil {
			return err
		}
	}

	return nil
}

// resolveSetupOptions layers flags over venvctl.toml over user-level project
// defaults.
func resolveSetupOptions(cmd *cli.Command, dir string) (setup.Options, error) {
	opts := setup.Options{
		Dir:        dir,
		AssumeYes:  cmd.Bool("yes"),
		UpgradePip: cmd.Bool("upgrade-pip"),
	}

	local, exists, err := config.LoadTOMLFile(dir, tomlFilename)
	if exists && err != nil {
		return opts, err
	}
	if local != nil {
		opts.VenvDir = local.Env.VenvDir
		opts.RequirementsFile = local.Env.Requirements
		opts.Python = local.Env.Python
		opts.RequirePython = local.Env.RequirePython
	} else {
		p, err := namedOrDefaultProject(cmd)
		if err != nil {
			return opts, err
		}
		if p != nil {
			opts.VenvDir = p.VenvDir
			opts.RequirementsFile = p.Requirements
			opts.Python = p.Python
			if dir == "." && p.Dir != "" {
				opts.Dir = p.Dir
			}
		}
	}

	if v := cmd.String("venv"); v != "" {
		opts.VenvDir = v
	}
	if v := cmd.String("requirements"); v != "" {
		opts.RequirementsFile = v
	}
	if v := cmd.String("python"); v != "" {
		opts.Python = v
	}
	if v := cmd.String("require-python"); v != "" {
		opts.RequirePython = v
	}

	pipEnv, err := parseKeyValuePairs(cmd, "env")
	if err != nil {
		return opts, err
	}
	opts.PipEnv = pipEnv

	return opts, nil
}

func saveSetupOptions(opts setup.Options) error {
	local := config.NewVenvctlTOML()
	if opts.VenvDir != "" {
		local.Env.VenvDir = opts.VenvDir
	}
	if opts.RequirementsFile != "" {
		local.Env.Requirements = opts.RequirementsFile
	}
	local.Env.Python = opts.Python
	local.Env.RequirePython = opts.RequirePython
	return local.SaveTOMLFile(opts.Dir, tomlFilename)
}

// warnIfNotPipProject points users of uv or poetry projects at their own
// tool instead of silently installing half a dependency set.
func warnIfNotPipProject(dir string) {
	kind, err := pyenv.DetectProjectKind(os.DirFS(dir))
	if err != nil || kind.Installable() {
		return
	}
	fmt.Println(util.Dimmed(fmt.Sprintf(
		"This looks like a %s project; its own tooling may manage the environment better.", kind)))
}

func offerPostSetupTask(ctx context.Context, cmd *cli.Command, opts setup.Options) error {
	if !bootstrap.HasTask(opts.Dir, bootstrap.TaskPostSetup) {
		return nil
	}

	runIt := cmd.Bool("yes")
	if !runIt {
		var err error
		runIt, err = confirmPrompt(
			fmt.Sprintf("The project defines a [%s] task. Run it now?", bootstrap.TaskPostSetup),
			"Defined in "+bootstrap.TaskFile,
		)
		if err != nil {
			return err
		}
	}
	if !runIt {
		return nil
	}

	task, err := bootstrap.NewTask(ctx, opts.Dir, bootstrap.TaskPostSetup, cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	return util.Await("Running post-setup task...", ctx, func(ctx context.Context) error {
		return task()
	})
}
