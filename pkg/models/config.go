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

import (
	"errors"
	"net/url"
	"time"

	"github.com/carverauto/hoteltv/pkg/logger"
)

var (
	errBackendURLRequired = errors.New("backend.base_url is required")
	errBackendURLInvalid  = errors.New("backend.base_url must be an absolute http(s) URL")
	errUnknownStorage     = errors.New("identity_storage must be one of bolt, file, memory")
	errHotelRequired      = errors.New("hotel_id is required unless super_admin is set")
)

// Default launcher timings.
const (
	DefaultClockInterval       = time.Second
	DefaultStatusPollInterval  = 5 * time.Second
	DefaultHeartbeatInterval   = 30 * time.Second
	DefaultCommandPollInterval = 3 * time.Second
	DefaultRequestTimeout      = 10 * time.Second
	DefaultStaleAfter          = 3
)

// BackendConfig points at the CMS backend RPC endpoint.
type BackendConfig struct {
	BaseURL string   `json:"base_url"`
	Timeout Duration `json:"timeout"`
	Token   string   `json:"token,omitempty" sensitive:"true"`
}

func (b *BackendConfig) Validate() error {
	if b.BaseURL == "" {
		return errBackendURLRequired
	}

	u, err := url.Parse(b.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errBackendURLInvalid
	}

	return nil
}

type IntervalsConfig struct {
	Clock       Duration `json:"clock"`
	StatusPoll  Duration `json:"status_poll"`
	Heartbeat   Duration `json:"heartbeat"`
	CommandPoll Duration `json:"command_poll"`
}

// LauncherConfig configures cmd/launcher.
type LauncherConfig struct {
	Backend         BackendConfig   `json:"backend"`
	Logging         *logger.Config  `json:"logging"`
	StateDir        string          `json:"state_dir"`
	IdentityStorage string          `json:"identity_storage"`
	IdentityKey     string          `json:"identity_key"`
	DeviceName      string          `json:"device_name"`
	Intervals       IntervalsConfig `json:"intervals"`
	StaleAfter      int             `json:"stale_after"`
	Headless        bool            `json:"headless"`
	Timezone        string          `json:"timezone"`
}

func (c *LauncherConfig) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return err
	}

	switch c.IdentityStorage {
	case "", "bolt", "file", "memory":
	default:
		return errUnknownStorage
	}

	return nil
}

// DashboardConfig configures cmd/dashboard.
type DashboardConfig struct {
	Backend    BackendConfig  `json:"backend"`
	Logging    *logger.Config `json:"logging"`
	HotelID    int64          `json:"hotel_id"`
	SuperAdmin bool           `json:"super_admin"`
	Username   string         `json:"username,omitempty"`
	Password   string         `json:"password,omitempty" sensitive:"true"`
}

func (c *DashboardConfig) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return err
	}

	if c.HotelID <= 0 && !c.SuperAdmin {
		return errHotelRequired
	}

	return nil
}
