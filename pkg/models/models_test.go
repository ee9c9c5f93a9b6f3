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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	var cfg struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"5s","b":3000000000}`), &cfg))
	assert.Equal(t, 5*time.Second, time.Duration(cfg.A))
	assert.Equal(t, 3*time.Second, time.Duration(cfg.B))

	var bad Duration
	require.Error(t, json.Unmarshal([]byte(`"soon"`), &bad))
	require.ErrorIs(t, json.Unmarshal([]byte(`true`), &bad), errInvalidDuration)
}

func TestDurationOr(t *testing.T) {
	assert.Equal(t, time.Second, Duration(0).Or(time.Second))
	assert.Equal(t, 2*time.Second, Duration(2*time.Second).Or(time.Second))
}

func TestPairingStatusHotelScope(t *testing.T) {
	hotel := int64(7)
	room := "1204"

	_, ok := (*PairingStatus)(nil).HotelScope()
	assert.False(t, ok)

	_, ok = (&PairingStatus{IsPaired: false, HotelID: &hotel}).HotelScope()
	assert.False(t, ok, "unpaired devices never expose a hotel scope")

	_, ok = (&PairingStatus{IsPaired: true}).HotelScope()
	assert.False(t, ok)

	id, ok := (&PairingStatus{IsPaired: true, HotelID: &hotel, RoomNumber: &room}).HotelScope()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestCommandTypeIsKnown(t *testing.T) {
	assert.True(t, CommandMute.IsKnown())
	assert.True(t, CommandSetVolume.IsKnown())
	assert.False(t, CommandType("factory_reset").IsKnown())
}

func TestHotelWeatherEnabled(t *testing.T) {
	city := "Bangkok"
	on := true
	off := false

	assert.False(t, (&Hotel{}).WeatherEnabled())
	assert.False(t, (&Hotel{WeatherCity: &city, ShowWeather: &off}).WeatherEnabled())
	assert.True(t, (&Hotel{WeatherCity: &city, ShowWeather: &on}).WeatherEnabled())
}

func TestLauncherConfigValidate(t *testing.T) {
	cfg := &LauncherConfig{}
	require.ErrorIs(t, cfg.Validate(), errBackendURLRequired)

	cfg.Backend.BaseURL = "ftp://cms"
	require.ErrorIs(t, cfg.Validate(), errBackendURLInvalid)

	cfg.Backend.BaseURL = "https://cms.example.com"
	cfg.IdentityStorage = "sqlite"
	require.ErrorIs(t, cfg.Validate(), errUnknownStorage)

	cfg.IdentityStorage = "bolt"
	require.NoError(t, cfg.Validate())
}

func TestDashboardConfigValidate(t *testing.T) {
	cfg := &DashboardConfig{Backend: BackendConfig{BaseURL: "http://localhost:3000"}}
	require.ErrorIs(t, cfg.Validate(), errHotelRequired)

	cfg.SuperAdmin = true
	require.NoError(t, cfg.Validate())
}
