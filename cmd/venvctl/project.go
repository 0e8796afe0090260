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
	"regexp"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/venvctl/venvctl/pkg/config"
	"github.com/venvctl/venvctl/pkg/util"
)

var (
	projectNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

	ProjectCommands = []*cli.Command{
		{
			Name:     "project",
			Usage:    "Manage per-project setup defaults",
			Category: "Config",
			Commands: []*cli.Command{
				{
					Name:   "list",
					Usage:  "List configured projects",
					Action: listProjects,
				},
				{
					Name:      "add",
					Usage:     "Add a project and its setup defaults",
					Action:    addProject,
					ArgsUsage: "`NAME`",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "dir",
							Usage: "Project `DIR` the defaults apply to",
						},
						&cli.StringFlag{
							Name:  "venv",
							Usage: "Default venv `DIR`",
							Value: ".venv",
						},
						&cli.StringFlag{
							Name:  "requirements",
							Usage: "Default requirements `FILE`",
							Value: "requirements.txt",
						},
						&cli.StringFlag{
							Name:  "python",
							Usage: "Default `INTERPRETER`",
						},
						&cli.BoolFlag{
							Name:  "default",
							Usage: "Make this the default project",
						},
					},
				},
				{
					Name:      "remove",
					Usage:     "Remove a project",
					Action:    removeProject,
					ArgsUsage: "`NAME`",
				},
				{
					Name:      "set-default",
					Usage:     "Set the default project",
					Action:    setDefaultProject,
					ArgsUsage: "`NAME`",
				},
			},
		},
	}
)

func listProjects(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.LoadOrCreate()
	if err != nil {
		return err
	}
	if len(conf.Projects) == 0 {
		fmt.Println("No projects configured")
		return nil
	}
	for _, p := range conf.Projects {
		marker := "  "
		if p.Name == conf.DefaultProject {
			marker = okStyle.Render("* ")
		}
		fmt.Printf("%s%s  %s\n", marker, util.Accented(p.Name), util.Dimmed(util.EllipsizeTo(p.Dir, 60)))
	}
	return nil
}

func addProject(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.LoadOrCreate()
	if err != nil {
		return err
	}

	name := cmd.Args().First()
	if name == "" {
		if !stdinIsTTY() {
			return errors.New("project name required")
		}
		if err := huh.NewInput().
			Title("Project Name").
			Placeholder("my-project").
			Value(&name).
			Validate(func(s string) error {
				if len(s) < 2 {
					return errors.New("name is too short")
				}
				if !projectNameRegex.MatchString(s) {
					return errors.New("try a simpler name")
				}
				return nil
			}).
			WithTheme(util.Theme).
			Run(); err != nil {
			return err
		}
	}
	if !projectNameRegex.MatchString(name) {
		return fmt.Errorf("invalid project name %q", name)
	}
	if conf.ProjectExists(name) {
		return fmt.Errorf("project %q already exists", name)
	}

	conf.Projects = append(conf.Projects, config.ProjectConfig{
		Name:         name,
		Dir:          cmd.String("dir"),
		VenvDir:      cmd.String("venv"),
		Requirements: cmd.String("requirements"),
		Python:       cmd.String("python"),
	})

	// the first project becomes the default
	if cmd.Bool("default") || conf.DefaultProject == "" {
		conf.DefaultProject = name
	}

	return conf.PersistIfNeeded()
}

func removeProject(ctx context.Context, cmd *cli.Command) error {
	name, err := extractArg(cmd)
	if err != nil {
		return err
	}
	conf, err := config.LoadOrCreate()
	if err != nil {
		return err
	}
	if !conf.ProjectExists(name) {
		return fmt.Errorf("project %q not found", name)
	}
	return conf.RemoveProject(name)
}

func setDefaultProject(ctx context.Context, cmd *cli.Command) error {
	name, err := extractArg(cmd)
	if err != nil {
		return err
	}
	conf, err := config.LoadOrCreate()
	if err != nil {
		return err
	}
	if !conf.ProjectExists(name) {
		return fmt.Errorf("project %q not found", name)
	}
	conf.DefaultProject = name
	return conf.PersistIfNeeded()
}
