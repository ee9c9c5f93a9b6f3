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

package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/rpc/rpctest"
)

func newTestClient(t *testing.T, srv *rpctest.Server) *Client {
	t.Helper()

	return NewClient(models.BackendConfig{
		BaseURL: srv.URL,
		Timeout: models.Duration(2 * time.Second),
	}, logger.NewTestLogger())
}

func TestQueryEncodesInputAndDecodesData(t *testing.T) {
	srv := rpctest.New(t)
	srv.Handle("pairing.checkStatus", func(input json.RawMessage) (interface{}, error) {
		var ref models.DeviceRef
		require.NoError(t, json.Unmarshal(input, &ref))
		assert.Equal(t, "DEV1", ref.DeviceID)

		return map[string]interface{}{"isPaired": true, "hotelId": 9, "roomNumber": "301"}, nil
	})

	client := newTestClient(t, srv)

	var status models.PairingStatus
	require.NoError(t, client.Query(context.Background(), "pairing.checkStatus", models.DeviceRef{DeviceID: "DEV1"}, &status))

	hotel, ok := status.HotelScope()
	require.True(t, ok)
	assert.Equal(t, int64(9), hotel)
	assert.Equal(t, "301", status.Room())

	calls := srv.Calls("pairing.checkStatus")
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
}

func TestMutatePostsBody(t *testing.T) {
	srv := rpctest.New(t)
	srv.Respond("pairing.requestCode", map[string]string{"pairingCode": "482913"})

	client := newTestClient(t, srv)

	var code models.PairingCode
	err := client.Mutate(context.Background(), "pairing.requestCode", models.PairingCodeRequest{
		DeviceID:   "DEV1",
		DeviceName: "Room TV",
	}, &code)
	require.NoError(t, err)
	assert.Equal(t, "482913", code.PairingCode)

	calls := srv.Calls("pairing.requestCode")
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.JSONEq(t, `{"deviceId":"DEV1","deviceName":"Room TV","deviceInfo":{}}`, string(calls[0].Input))
}

func TestServerErrorCarriesMessage(t *testing.T) {
	srv := rpctest.New(t)
	srv.Fail("tvChannels.create", http.StatusBadRequest, "Stream URL already exists")

	client := newTestClient(t, srv)

	err := client.Mutate(context.Background(), "tvChannels.create", map[string]string{}, nil)
	require.Error(t, err)

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "BAD_REQUEST", rpcErr.Code)
	assert.Equal(t, http.StatusBadRequest, rpcErr.HTTPStatus)
	assert.Equal(t, "Stream URL already exists", UserMessage(err))
}

func TestUnknownProcedureIsNotFound(t *testing.T) {
	srv := rpctest.New(t)
	client := newTestClient(t, srv)

	err := client.Query(context.Background(), "nope.list", nil, nil)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestUnreachableBackend(t *testing.T) {
	srv := rpctest.New(t)
	client := newTestClient(t, srv)
	srv.Close()

	err := client.Query(context.Background(), "pairing.checkStatus", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, UserMessage(err), "Cannot reach the server")
}

func TestCancelledContext(t *testing.T) {
	srv := rpctest.New(t)
	srv.Respond("pairing.heartbeat", nil)
	client := newTestClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Mutate(ctx, "pairing.heartbeat", nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBearerTokenAttached(t *testing.T) {
	srv := rpctest.New(t)
	srv.Respond("hotels.list", []models.Hotel{})
	client := newTestClient(t, srv)

	require.NoError(t, client.Query(context.Background(), "hotels.list", nil, nil))
	client.SetToken("abc")
	require.NoError(t, client.Query(context.Background(), "hotels.list", nil, nil))

	calls := srv.Calls("hotels.list")
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Auth)
	assert.Equal(t, "Bearer abc", calls[1].Auth)
}

func TestNullDataLeavesOutUntouched(t *testing.T) {
	srv := rpctest.New(t)
	srv.Respond("guestInfo.getByRoom", nil)
	client := newTestClient(t, srv)

	guest := &models.GuestInfo{GuestName: "unchanged"}
	require.NoError(t, client.Query(context.Background(), "guestInfo.getByRoom", nil, guest))
	assert.Equal(t, "unchanged", guest.GuestName)
}
