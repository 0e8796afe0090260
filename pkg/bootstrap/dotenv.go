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
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/joho/godotenv"
)

type PromptFunc func(key string, value string) (string, error)

// InstantiateDotEnv recursively walks the project, reading in any
// .env.example file present in a directory, replacing all `substitutions`,
// prompting for the rest, and writing the result to .env.local alongside it.
// A key prompted once keeps its answer for every later file.
func InstantiateDotEnv(rootDir string, substitutions map[string]string, prompt PromptFunc) error {
	promptedVars := map[string]string{}

	return filepath.WalkDir(rootDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.Name() == EnvExampleFile {
			envMap, err := godotenv.Read(filePath)
			if err != nil {
				return err
			}

			for key, oldValue := range envMap {
				if value, ok := substitutions[key]; ok {
					envMap[key] = value
				} else if alreadyPromptedValue, ok := promptedVars[key]; ok {
					envMap[key] = alreadyPromptedValue
				} else {
					newValue, err := prompt(key, oldValue)
					if err != nil {
						return err
					}
					envMap[key] = newValue
					promptedVars[key] = newValue
				}
			}

			envContents, err := godotenv.Marshal(envMap)
			if err != nil {
				return err
			}

			envLocalPath := path.Join(path.Dir(filePath), EnvLocalFile)
			if err := os.WriteFile(envLocalPath, []byte(envContents), 0700); err != nil {
				return err
			}
		}

		return nil
	})
}
