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

package pairing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
)

const (
	volumeStep    = 10
	maxVolume     = 100
	defaultVolume = 50
)

var (
	errMissingVolume = errors.New("set_volume without a value")
	errVolumeRange   = errors.New("volume out of range")
)

// DeviceState is the simulated output state of the TV.
type DeviceState struct {
	Volume    int
	Muted     bool
	PoweredOn bool
	Restarts  int
}

// Hooks let the host react to power commands.
type Hooks struct {
	PowerOff func()
	Restart  func()
}

// DeviceExecutor tracks volume, mute and power in memory and tells the guest what happened.
type DeviceExecutor struct {
	notifier notify.Notifier
	hooks    Hooks

	mu    sync.Mutex
	state DeviceState
}

var _ Executor = (*DeviceExecutor)(nil)

func NewDeviceExecutor(n notify.Notifier, hooks Hooks) *DeviceExecutor {
	return &DeviceExecutor{
		notifier: n,
		hooks:    hooks,
		state:    DeviceState{Volume: defaultVolume, PoweredOn: true},
	}
}

func (d *DeviceExecutor) State() DeviceState {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

func (d *DeviceExecutor) Execute(_ context.Context, cmd models.RemoteCommand) error {
	d.mu.Lock()

	var (
		title string
		hook  func()
	)

	switch cmd.Command {
	case models.CommandPowerOff:
		d.state.PoweredOn = false
		title, hook = "Turning off", d.hooks.PowerOff
	case models.CommandRestart:
		d.state.Restarts++
		d.state.PoweredOn = true
		title, hook = "Restarting", d.hooks.Restart
	case models.CommandVolumeUp:
		d.state.Volume = clampVolume(d.state.Volume + volumeStep)
		d.state.Muted = false
		title = fmt.Sprintf("Volume %d", d.state.Volume)
	case models.CommandVolumeDown:
		d.state.Volume = clampVolume(d.state.Volume - volumeStep)
		title = fmt.Sprintf("Volume %d", d.state.Volume)
	case models.CommandMute:
		d.state.Muted = true
		title = "Muted"
	case models.CommandUnmute:
		d.state.Muted = false
		title = "Unmuted"
	case models.CommandSetVolume:
		if cmd.Value == nil {
			d.mu.Unlock()
			return errMissingVolume
		}

		if *cmd.Value < 0 || *cmd.Value > maxVolume {
			d.mu.Unlock()
			return fmt.Errorf("%w: %d", errVolumeRange, *cmd.Value)
		}

		d.state.Volume = *cmd.Value
		d.state.Muted = false
		title = fmt.Sprintf("Volume %d", d.state.Volume)
	default:
		d.mu.Unlock()
		return fmt.Errorf("unsupported command %q", cmd.Command)
	}

	d.mu.Unlock()

	notify.Info(d.notifier, title, "Remote command from front desk")

	if hook != nil {
		hook()
	}

	return nil
}

func clampVolume(v int) int {
	switch {
	case v < 0:
		return 0
	case v > maxVolume:
		return maxVolume
	default:
		return v
	}
}
