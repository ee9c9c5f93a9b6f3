/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/hoteltv/pkg/models"
)

// CmdConfig holds parsed command-line configuration.
type CmdConfig struct {
	Help           bool
	SubCmd         string
	ConfigFile     string
	Namespace      string
	ID             int64
	Data           string
	Output         string
	Yes            bool
	Username       string
	Password       string
	NonInteractive bool
	PairingCode    string
	HotelID        int64
	RoomNumber     string
	DeviceName     string
	DeviceID       string
	Command        string
	Value          int
	HasValue       bool
	Status         string
	Args           []string
}

// logStyles defines styles for toast lines printed to the terminal.
type logStyles struct {
	info, success, warning, error lipgloss.Style
}

// LoginFunc performs the login the TUI collects credentials for.
type LoginFunc func(ctx context.Context, req models.LoginRequest) (*models.Session, error)

type loginMsg struct {
	session *models.Session
	err     error
}

type model struct {
	ctx           context.Context
	login         LoginFunc
	usernameInput textinput.Model
	passwordInput textinput.Model
	session       *models.Session
	err           error
	focused       int
	busy          bool
	copyMessage   string
	canCopy       bool
	styles        struct {
		focused, focused2, help, hint, success, error, token, app lipgloss.Style
	}
}
