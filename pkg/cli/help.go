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
	"fmt"
	"io"
	"strings"

	"github.com/carverauto/hoteltv/pkg/cms"
)

// ShowHelp writes the usage text to w.
func ShowHelp(w io.Writer) {
	names := make([]string, 0, len(cms.AllNamespaces()))
	for _, ns := range cms.AllNamespaces() {
		names = append(names, string(ns))
	}

	fmt.Fprintf(w, `hoteltv-dashboard: hotel TV content management from the terminal
Usage:
  hoteltv-dashboard [-config file] <command> [options]

Commands:
  login            Sign in and print the session token (TUI when no password is given)
  list             List the records of a namespace as JSON
  create           Create a record from JSON
  update           Update a record from JSON
  delete           Delete a record (asks for confirmation)
  export           Export a namespace to an .xlsx spreadsheet
  pair             Pair the TV showing a code with a room
  command          Queue a remote command for a TV
  volume           Set the volume of a TV
  request-status   Move a guest service request to a new status
  watch            Follow new guest service requests live

Global options:
  -config string   path to dashboard config file (default "/etc/hoteltv/dashboard.json")
  -help            show this help message

Options for login:
  -user string        staff username (defaults to the configured one)
  -password string    password
  -non-interactive    fail instead of starting the TUI

Options for list, create, update, delete, export:
  -ns string       namespace: %s
  -id int          record id (update, delete)
  -data string     record as JSON, @file, or - for stdin (create, update)
  -o string        output file (export)
  -yes             skip the delete confirmation

Options for pair:
  -code string     pairing code shown on the TV
  -room string     room number
  -hotel int       hotel id (defaults to the configured hotel)
  -name string     device name

Options for command and volume:
  -device string   device id
  -cmd string      power_off, restart, volume_up, volume_down, mute, unmute, set_volume
  -value int       volume 0-100

Options for request-status:
  -id int          service request id
  -status string   pending, in_progress, completed or cancelled

Examples:
  # Sign in interactively
  hoteltv-dashboard login

  # Add a channel
  hoteltv-dashboard create -ns tvChannels -data '{"name":"Channel 1","streamUrl":"https://x/stream","category":"TV"}'

  # Remove a menu item without the prompt
  hoteltv-dashboard delete -ns menuItems -id 12 -yes

  # Pair the TV in room 305
  hoteltv-dashboard pair -code 482913 -room 305

  # Mute a TV
  hoteltv-dashboard command -device LOYW3V28ABC -cmd mute
`, strings.Join(names, ", "))
}
