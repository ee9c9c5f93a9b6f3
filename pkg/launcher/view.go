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

package launcher

import (
	"time"

	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/pairing"
)

// Screen is what the TV shows.
type Screen int

const (
	ScreenPairing Screen = iota
	ScreenWelcome
	ScreenStandby
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenStandby:
		return "standby"
	default:
		return "pairing"
	}
}

// View is a point-in-time copy of everything the TUI renders.
type View struct {
	Screen        Screen
	Now           time.Time
	DeviceID      string
	PairingCode   string
	CodeDigits    []string
	State         pairing.State
	Stale         bool
	HotelID       int64
	Room          string
	Content       *Content
	Toast         *notify.Toast
	Device        pairing.DeviceState
	Alarms        []AlarmEntry
	PushConnected bool
}

// Title is the welcome heading: branding first, then the hotel name.
func (v View) Title() string {
	if v.Content == nil {
		return ""
	}

	if b := v.Content.Branding; b != nil && b.WelcomeTitle != "" {
		return b.WelcomeTitle
	}

	return v.Content.Hotel.Name
}

// Greeting addresses the checked-in guest, if any.
func (v View) Greeting() string {
	if v.Content == nil || v.Content.Guest == nil {
		return "Welcome"
	}

	if w := v.Content.Guest.WelcomeText; w != nil && *w != "" {
		return *w
	}

	return "Welcome, " + v.Content.Guest.GuestName
}

func screenFor(state pairing.State, dev pairing.DeviceState) Screen {
	switch {
	case !dev.PoweredOn:
		return ScreenStandby
	case state == pairing.StatePaired:
		return ScreenWelcome
	default:
		return ScreenPairing
	}
}
