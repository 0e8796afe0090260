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

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/venvctl/venvctl/pkg/bootstrap"
	"github.com/venvctl/venvctl/pkg/util"
)

var (
	EnvCommands = []*cli.Command{
		{
			Name:      "env",
			Usage:     "Instantiate " + bootstrap.EnvLocalFile + " files from " + bootstrap.EnvExampleFile + " templates",
			Category:  "Core",
			Action:    instantiateEnv,
			ArgsUsage: "[dir]",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  "var",
					Usage: "KEY=VALUE substitutions applied without prompting",
				},
				yesFlag,
			},
		},
	}
)

func instantiateEnv(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		dir = "."
	}

	substitutions, err := parseKeyValuePairs(cmd, "var")
	if err != nil {
		return err
	}

	assumeYes := cmd.Bool("yes")
	if !assumeYes && !stdinIsTTY() {
		return errors.New("stdin is not a terminal; pass --yes to keep example values")
	}

	prompt := func(key, value string) (string, error) {
		if assumeYes {
			return value, nil
		}
		newValue := value
		if err := huh.NewInput().
			Title(key).
			Placeholder(value).
			Value(&newValue).
			WithTheme(util.Theme).
			Run(); err != nil {
			return "", err
		}
		return newValue, nil
	}

	if err := bootstrap.InstantiateDotEnv(dir, substitutions, prompt); err != nil {
		return err
	}

	fmt.Println("Wrote " + util.Accented(bootstrap.EnvLocalFile) + " files")
	return nil
}
