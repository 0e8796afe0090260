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
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/urfave/cli/v3"

	venvctl "github.com/venvctl/venvctl"
	"github.com/venvctl/venvctl/pkg/setup"
)

func main() {
	app := &cli.Command{
		Name:                   "venvctl",
		Usage:                  "Set up and manage Python virtual environments",
		Description:            "Creates virtual environments, installs dependencies from a requirements manifest, and keeps per-project setup defaults, so a checkout goes from clone to runnable in one command.",
		Version:                venvctl.Version,
		EnableShellCompletion:  true,
		Suggest:                true,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags:                  globalFlags,
		Commands: []*cli.Command{
			{
				Name:   "generate-fish-completion",
				Action: generateFishCompletion,
				Hidden: true,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
					},
				},
			},
		},
		Before: initLogger,
	}

	app.Commands = append(app.Commands, SetupCommands...)
	app.Commands = append(app.Commands, DoctorCommands...)
	app.Commands = append(app.Commands, EnvCommands...)
	app.Commands = append(app.Commands, ProjectCommands...)

	// Register cleanup hook for SIGINT, SIGTERM, SIGQUIT
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a setup step failure to its documented exit status; any
// other error exits 1.
func exitCode(err error) int {
	var stepErr *setup.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code
	}
	return 1
}

func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	stdr.SetVerbosity(0)
	if cmd.Bool("verbose") {
		stdr.SetVerbosity(1)
	}
	log := stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags)).WithName("venvctl")

	return logr.NewContext(ctx, log), nil
}

func generateFishCompletion(ctx context.Context, cmd *cli.Command) error {
	fishScript, err := cmd.ToFishCompletion()
	if err != nil {
		return err
	}

	outPath := cmd.String("out")
	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(fishScript), 0o644); err != nil {
			return err
		}
	} else {
		fmt.Println(fishScript)
	}

	return nil
}
