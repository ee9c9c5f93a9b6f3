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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hoteltv/pkg/cms"
	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/rpc"
	"github.com/carverauto/hoteltv/pkg/rpc/rpctest"
)

func newCaller(t *testing.T, srv *rpctest.Server) *rpc.Client {
	t.Helper()

	cfg := models.BackendConfig{BaseURL: srv.URL, Timeout: models.Duration(2 * time.Second)}

	return rpc.NewClient(cfg, logger.NewTestLogger())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func respondHotel(srv *rpctest.Server, hotel models.Hotel) {
	srv.Respond(cms.Hotels.Procedure(cms.OpGetByID), hotel)
}

func TestRPCContentLoad(t *testing.T) {
	srv := rpctest.New(t)
	respondHotel(srv, models.Hotel{
		ID: 3, Name: "Riverside", WeatherCity: strPtr("Bangkok"), ShowWeather: boolPtr(true), IsActive: true,
	})
	srv.Respond(ProcBranding, models.Branding{HotelID: 3, WelcomeTitle: "Sawasdee"})
	srv.Respond(cms.TVChannels.Procedure(cms.OpList), []models.TVChannel{
		{ID: 1, HotelID: 3, Name: "ช่อง1", IsActive: true},
		{ID: 2, HotelID: 3, Name: "Off air"},
	})
	srv.Respond(cms.MenuItems.Procedure(cms.OpList), []models.MenuItem{{ID: 4, Name: "Pad Thai"}})
	srv.Respond(ProcGuestRoom, models.GuestInfo{ID: 8, HotelID: 3, RoomNumber: "305", GuestName: "Ms. Lee"})
	srv.Respond(cms.WakeUpCalls.Procedure(cms.OpList), []models.WakeUpCall{
		{ID: 10, RoomNumber: "305", Status: "pending"},
		{ID: 11, RoomNumber: "101", Status: "pending"},
	})
	srv.Respond(ProcWeather, models.Weather{City: "Bangkok", Temperature: 31, Condition: "Sunny"})

	c := NewRPCContent(newCaller(t, srv), logger.NewTestLogger())

	content, err := c.Load(context.Background(), 3, "305")
	require.NoError(t, err)

	assert.Equal(t, "Riverside", content.Hotel.Name)
	require.NotNil(t, content.Branding)
	assert.Equal(t, "Sawasdee", content.Branding.WelcomeTitle)
	require.Len(t, content.Channels, 1)
	assert.Equal(t, "ช่อง1", content.Channels[0].Name)
	assert.Len(t, content.Menu, 1)
	require.NotNil(t, content.Guest)
	assert.Equal(t, "Ms. Lee", content.Guest.GuestName)
	require.Len(t, content.WakeUpCalls, 1)
	assert.Equal(t, int64(10), content.WakeUpCalls[0].ID)
	require.NotNil(t, content.Weather)
	assert.Equal(t, "Sunny", content.Weather.Condition)
	assert.False(t, content.LoadedAt.IsZero())

	calls := srv.Calls(cms.TVChannels.Procedure(cms.OpList))
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)

	var in map[string]int64
	require.NoError(t, json.Unmarshal(calls[0].Input, &in))
	assert.Equal(t, int64(3), in["hotelId"])

	weather := srv.Calls(ProcWeather)
	require.Len(t, weather, 1)
	assert.JSONEq(t, `{"city":"Bangkok"}`, string(weather[0].Input))
}

func TestRPCContentOptionalPiecesMayFail(t *testing.T) {
	srv := rpctest.New(t)
	respondHotel(srv, models.Hotel{ID: 3, Name: "Riverside"})
	srv.Fail(ProcBranding, http.StatusInternalServerError, "boom")

	c := NewRPCContent(newCaller(t, srv), logger.NewTestLogger())

	content, err := c.Load(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Nil(t, content.Branding)
	assert.Nil(t, content.Guest)
	assert.Nil(t, content.Weather)
	assert.Empty(t, content.Channels)

	assert.Zero(t, srv.CallCount(ProcGuestRoom), "no room, no guest lookup")
	assert.Zero(t, srv.CallCount(ProcWeather), "weather is opt-in")
}

func TestRPCContentHotelFailureFails(t *testing.T) {
	srv := rpctest.New(t)
	srv.Fail(cms.Hotels.Procedure(cms.OpGetByID), http.StatusForbidden, "Hotel suspended")

	c := NewRPCContent(newCaller(t, srv), logger.NewTestLogger())

	_, err := c.Load(context.Background(), 3, "305")
	require.Error(t, err)
	assert.Equal(t, "Hotel suspended", rpc.UserMessage(err))
}

func TestRPCContentRefusesUnpaired(t *testing.T) {
	srv := rpctest.New(t)
	c := NewRPCContent(newCaller(t, srv), logger.NewTestLogger())

	_, err := c.Load(context.Background(), 0, "305")
	require.True(t, errors.Is(err, errNotPaired))
	assert.Empty(t, srv.Calls(""))
}
