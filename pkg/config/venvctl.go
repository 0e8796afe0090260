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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/venvctl/venvctl/pkg/util"
)

const (
	VenvctlTOMLFile = "venvctl.toml"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration file")
)

// VenvctlTOML is the per-repository configuration file. Values here override
// user-level project defaults and are themselves overridden by flags.
type VenvctlTOML struct {
	Env *VenvctlTOMLEnvConfig `toml:"env"` // Required
}

type VenvctlTOMLEnvConfig struct {
	VenvDir       string `toml:"venv_dir"`
	Requirements  string `toml:"requirements"`
	Python        string `toml:"python"`
	RequirePython string `toml:"require_python"`
}

func NewVenvctlTOML() *VenvctlTOML {
	return &VenvctlTOML{
		Env: &VenvctlTOMLEnvConfig{
			VenvDir:      ".venv",
			Requirements: "requirements.txt",
		},
	}
}

func (c *VenvctlTOML) Validate() error {
	if c.Env == nil {
		return fmt.Errorf("missing [env] section: %w", ErrInvalidConfig)
	}
	return nil
}

func (c *VenvctlTOML) SaveTOMLFile(dir string, tomlFileName string) error {
	f, err := os.Create(filepath.Join(dir, tomlFileName))
	if err != nil {
		return err
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}
	fmt.Printf("Saving config file [%s]\n", util.Accented(tomlFileName))
	return nil
}

func LoadTOMLFile(dir string, tomlFileName string) (*VenvctlTOML, bool, error) {
	var config *VenvctlTOML
	var err error
	var configExists bool

	tomlFile := filepath.Join(dir, tomlFileName)

	if _, err = os.Stat(tomlFile); err == nil {
		configExists = true
		if _, err = toml.DecodeFile(tomlFile, &config); err != nil {
			return nil, configExists, err
		}
		if err = config.Validate(); err != nil {
			return nil, configExists, err
		}
	} else {
		configExists = !errors.Is(err, fs.ErrNotExist)
	}

	return config, configExists, err
}
