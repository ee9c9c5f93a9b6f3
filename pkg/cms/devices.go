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

package cms

import (
	"context"
	"fmt"

	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// Device procedures beyond the standard namespace operations.
const (
	ProcDevicePair        = "devices.pair"
	ProcDeviceSendCommand = "devices.sendCommand"
	ProcDeviceSetVolume   = "devices.setVolume"
)

type setVolumeInput struct {
	DeviceID string `json:"deviceId" validate:"required"`
	Volume   int    `json:"volume" validate:"gte=0,lte=100"`
}

// DeviceControl pairs TVs to rooms and queues remote commands for them.
type DeviceControl struct {
	deps Deps
}

func NewDeviceControl(deps Deps) *DeviceControl {
	return &DeviceControl{deps: deps.withDefaults()}
}

// Pair assigns the TV showing code to a hotel room.
func (d *DeviceControl) Pair(ctx context.Context, req models.PairDeviceRequest) (*models.Device, error) {
	if req.HotelID == 0 {
		req.HotelID = d.deps.Scope.HotelID
	}

	if err := validateForm(d.deps.Validator, &req); err != nil {
		notify.Error(d.deps.Notifier, "Please fill in all required fields", err.Error())
		return nil, err
	}

	var device models.Device
	if err := d.deps.Caller.Mutate(ctx, ProcDevicePair, req, &device); err != nil {
		notify.Error(d.deps.Notifier, "Pairing failed", rpc.UserMessage(err))
		return nil, err
	}

	notify.Success(d.deps.Notifier, "Device paired", fmt.Sprintf("Room %s", req.RoomNumber))
	d.deps.Cache.Invalidate(Devices)

	return &device, nil
}

// SendCommand queues cmd for the device; the TV picks it up on its next command poll.
func (d *DeviceControl) SendCommand(ctx context.Context, req models.DeviceCommandRequest) error {
	if err := validateForm(d.deps.Validator, &req); err != nil {
		notify.Error(d.deps.Notifier, "Please fill in all required fields", err.Error())
		return err
	}

	if !req.Command.IsKnown() {
		err := &ValidationError{Fields: []string{"command"}}
		notify.Error(d.deps.Notifier, "Unknown command", string(req.Command))

		return err
	}

	if err := d.deps.Caller.Mutate(ctx, ProcDeviceSendCommand, req, nil); err != nil {
		notify.Error(d.deps.Notifier, "Failed to send command", rpc.UserMessage(err))
		return err
	}

	notify.Success(d.deps.Notifier, "Command sent", string(req.Command))

	return nil
}

// SetVolume sets the device volume (0-100) and records it on the device.
func (d *DeviceControl) SetVolume(ctx context.Context, deviceID string, volume int) error {
	in := setVolumeInput{DeviceID: deviceID, Volume: volume}

	if err := validateForm(d.deps.Validator, &in); err != nil {
		notify.Error(d.deps.Notifier, "Volume must be between 0 and 100", err.Error())
		return err
	}

	if err := d.deps.Caller.Mutate(ctx, ProcDeviceSetVolume, in, nil); err != nil {
		notify.Error(d.deps.Notifier, "Failed to set volume", rpc.UserMessage(err))
		return err
	}

	notify.Success(d.deps.Notifier, fmt.Sprintf("Volume set to %d", volume), "")
	d.deps.Cache.Invalidate(Devices)

	return nil
}
