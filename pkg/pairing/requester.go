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
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

const defaultDeviceName = "Room TV"

// Requester obtains the short pairing code the guest room TV displays.
type Requester struct {
	backend    Backend
	ids        DeviceIDSource
	notifier   notify.Notifier
	logger     logger.Logger
	deviceName string
	info       models.DeviceInfo

	mu   sync.Mutex
	code string
}

func NewRequester(backend Backend, ids DeviceIDSource, n notify.Notifier, log logger.Logger,
	deviceName string, info models.DeviceInfo) *Requester {
	if deviceName == "" {
		deviceName = defaultDeviceName
	}

	return &Requester{
		backend:    backend,
		ids:        ids,
		notifier:   n,
		logger:     log,
		deviceName: deviceName,
		info:       info,
	}
}

// Request asks the backend for a new pairing code. On failure the previous code is cleared,
// an error toast is shown and the error is returned; the caller decides whether to retry.
func (r *Requester) Request(ctx context.Context) (string, error) {
	req := &models.PairingCodeRequest{
		DeviceID:   r.ids.DeviceID(ctx),
		DeviceName: r.deviceName,
		DeviceInfo: r.info,
	}

	resp, err := r.backend.RequestCode(ctx, req)
	if err != nil {
		r.setCode("")

		if ctx.Err() == nil {
			r.logger.Warn().Err(err).Str("device_id", req.DeviceID).Msg("Pairing code request failed")
			notify.Error(r.notifier, "Failed to get pairing code", rpc.UserMessage(err))
		}

		return "", err
	}

	r.setCode(resp.PairingCode)

	r.logger.Info().Str("device_id", req.DeviceID).Str("code", resp.PairingCode).Msg("Pairing code received")
	notify.Success(r.notifier, "Pairing code generated", "Enter this code in the hotel dashboard")

	return resp.PairingCode, nil
}

// Code returns the last code received, or "" when none is held.
func (r *Requester) Code() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.code
}

// Clear forgets the held code, e.g. once the device is paired.
func (r *Requester) Clear() {
	r.setCode("")
}

func (r *Requester) setCode(code string) {
	r.mu.Lock()
	r.code = code
	r.mu.Unlock()
}

// Digits splits a code into its characters so each can be rendered in its own box.
func Digits(code string) []string {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}

	out := make([]string, 0, len(code))
	for _, c := range code {
		out = append(out, string(c))
	}

	return out
}

// CollectDeviceInfo describes the host the launcher runs on. Fields the platform cannot
// report are left empty.
func CollectDeviceInfo(ctx context.Context, appVersion string) models.DeviceInfo {
	info := models.DeviceInfo{
		OS:         runtime.GOOS,
		AppVersion: appVersion,
	}

	stat, err := host.InfoWithContext(ctx)
	if err != nil || stat == nil {
		return info
	}

	info.OS = stat.OS
	info.Platform = stat.Platform
	info.Kernel = stat.KernelVersion
	info.Hostname = stat.Hostname
	info.Model = strings.TrimSpace(stat.Platform + " " + stat.PlatformVersion + " " + stat.KernelArch)

	return info
}
