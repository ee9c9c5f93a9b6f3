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

package models

import "time"

// PairingStatus is the backend's latest view of this device's pairing.
type PairingStatus struct {
	IsPaired    bool    `json:"isPaired"`
	HotelID     *int64  `json:"hotelId"`
	RoomNumber  *string `json:"roomNumber"`
	PairingCode *string `json:"pairingCode"`
}

// HotelScope returns the hotel id only when the device is paired to one.
func (s *PairingStatus) HotelScope() (int64, bool) {
	if s == nil || !s.IsPaired || s.HotelID == nil || *s.HotelID <= 0 {
		return 0, false
	}

	return *s.HotelID, true
}

// Room returns the room number or "".
func (s *PairingStatus) Room() string {
	if s == nil || s.RoomNumber == nil {
		return ""
	}

	return *s.RoomNumber
}

// DeviceInfo describes the TV device when it asks for a pairing code.
type DeviceInfo struct {
	Model      string `json:"model,omitempty"`
	OS         string `json:"os,omitempty"`
	Platform   string `json:"platform,omitempty"`
	Kernel     string `json:"kernel,omitempty"`
	Hostname   string `json:"hostname,omitempty"`
	AppVersion string `json:"appVersion,omitempty"`
}

type PairingCodeRequest struct {
	DeviceID   string     `json:"deviceId"`
	DeviceName string     `json:"deviceName"`
	DeviceInfo DeviceInfo `json:"deviceInfo"`
}

type PairingCode struct {
	PairingCode string    `json:"pairingCode"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// DeviceRef is the input of every device-scoped pairing procedure.
type DeviceRef struct {
	DeviceID string `json:"deviceId"`
}

// CommandType names a remote-control action queued by staff.
type CommandType string

const (
	CommandPowerOff   CommandType = "power_off"
	CommandRestart    CommandType = "restart"
	CommandVolumeUp   CommandType = "volume_up"
	CommandVolumeDown CommandType = "volume_down"
	CommandMute       CommandType = "mute"
	CommandUnmute     CommandType = "unmute"
	CommandSetVolume  CommandType = "set_volume"
)

// IsKnown reports whether the launcher knows how to execute c.
func (c CommandType) IsKnown() bool {
	switch c {
	case CommandPowerOff, CommandRestart, CommandVolumeUp, CommandVolumeDown,
		CommandMute, CommandUnmute, CommandSetVolume:
		return true
	default:
		return false
	}
}

type RemoteCommand struct {
	ID       int64       `json:"id"`
	Command  CommandType `json:"command"`
	Value    *int        `json:"value,omitempty"`
	IssuedAt time.Time   `json:"issuedAt,omitempty"`
}

type CommandList struct {
	Commands []RemoteCommand `json:"commands"`
}

type CommandAck struct {
	DeviceID  string `json:"deviceId"`
	CommandID int64  `json:"commandId"`
}

// PairDeviceRequest is what staff submit after reading the code off the TV.
type PairDeviceRequest struct {
	PairingCode string `json:"pairingCode" validate:"required,numeric"`
	HotelID     int64  `json:"hotelId" validate:"required,gt=0"`
	RoomNumber  string `json:"roomNumber" validate:"required"`
	DeviceName  string `json:"deviceName,omitempty"`
}

// DeviceCommandRequest queues a command for a paired device from the dashboard.
type DeviceCommandRequest struct {
	DeviceID string      `json:"deviceId" validate:"required"`
	Command  CommandType `json:"command" validate:"required"`
	Value    *int        `json:"value,omitempty"`
}
