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
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/venvctl/venvctl/pkg/config"
	"github.com/venvctl/venvctl/pkg/util"
)

var (
	tomlFilename string = config.VenvctlTOMLFile

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Answer every confirmation affirmatively; required when stdin is not a terminal",
	}

	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Config `TOML` to use in the working directory",
			Value:       config.VenvctlTOMLFile,
			Destination: &tomlFilename,
			Required:    false,
		},
		&cli.StringFlag{
			Name:  "project",
			Usage: "`NAME` of a configured project",
		},
		&cli.BoolFlag{
			Name:     "verbose",
			Required: false,
		},
	}
)

func extractArg(c *cli.Command) (string, error) {
	if !c.Args().Present() {
		return "", errors.New("no argument provided")
	}
	return c.Args().First(), nil
}

func parseKeyValuePairs(c *cli.Command, flag string) (map[string]string, error) {
	pairs := c.StringSlice(flag)
	if len(pairs) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		if m, err := godotenv.Unmarshal(pair); err != nil {
			return nil, fmt.Errorf("invalid key-value pair: %s: %w", pair, err)
		} else {
			maps.Copy(result, m)
		}
	}
	return result, nil
}

func stdinIsTTY() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmPrompt is the interactive ConfirmFunc used by setup. Anything other
// than an explicit affirmative cancels.
func confirmPrompt(title, description string) (bool, error) {
	var ok bool
	if err := huh.NewForm(huh.NewGroup(huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&ok).
		Inline(false).
		WithTheme(util.Theme))).
		Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// namedOrDefaultProject loads the project selected with --project, falling
// back to the configured default. Returning nil means no project defaults
// apply, which is fine.
func namedOrDefaultProject(c *cli.Command) (*config.ProjectConfig, error) {
	if name := c.String("project"); name != "" {
		p, err := config.LoadProject(name)
		if err != nil {
			return nil, err
		}
		fmt.Println("Using project [" + util.Accented(name) + "]")
		return p, nil
	}

	if dp, err := config.LoadDefaultProject(); err == nil {
		fmt.Println("Using default project [" + util.Accented(dp.Name) + "]")
		return dp, nil
	}

	return nil, nil
}
