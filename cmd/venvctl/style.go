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
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.AdaptiveColor{Light: "#06B7DB", Dark: "#1FD5F9"}
	red    = lipgloss.AdaptiveColor{Light: "#CE4A3B", Dark: "#FF6352"}
	yellow = lipgloss.AdaptiveColor{Light: "#DB9406", Dark: "#F9B11F"}
	green  = lipgloss.AdaptiveColor{Light: "#036D26", Dark: "#06DB4D"}

	activationStyle = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	okStyle         = lipgloss.NewStyle().Foreground(green)
	warnStyle       = lipgloss.NewStyle().Foreground(yellow)
	failStyle       = lipgloss.NewStyle().Foreground(red)
)
