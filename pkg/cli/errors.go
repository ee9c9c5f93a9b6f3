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

import "errors"

var (
	errNoSubcommand       = errors.New("no command given, see -help")
	errUnknownSubcommand  = errors.New("unknown command")
	errNamespaceRequired  = errors.New("-ns is required")
	errUnknownNamespace   = errors.New("unknown namespace")
	errIDRequired         = errors.New("-id is required")
	errDataRequired       = errors.New("-data is required (JSON, or @file to read a file)")
	errOutputRequired     = errors.New("-o is required")
	errCredentials        = errors.New("username and password are required")
	errPairArgsRequired   = errors.New("pair requires -code and -room")
	errDeviceRequired     = errors.New("-device is required")
	errCommandRequired    = errors.New("-cmd is required")
	errVolumeRequired     = errors.New("volume requires -value")
	errStatusArgsRequired = errors.New("request-status requires -id and -status")
	errDeleteDeclined     = errors.New("delete cancelled")
	errLoginAborted       = errors.New("login cancelled")
)
