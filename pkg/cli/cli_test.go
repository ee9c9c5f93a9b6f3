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

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/carverauto/hoteltv/pkg/cms"
	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/rpc/rpctest"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		check   func(t *testing.T, cfg *CmdConfig)
	}{
		{
			name:    "no command",
			args:    nil,
			wantErr: errNoSubcommand,
		},
		{
			name:    "unknown command",
			args:    []string{"reboot"},
			wantErr: errUnknownSubcommand,
		},
		{
			name: "help",
			args: []string{"-help"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.True(t, cfg.Help)
			},
		},
		{
			name: "list with config",
			args: []string{"-config", "/tmp/d.json", "list", "-ns", "tvChannels"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.Equal(t, "/tmp/d.json", cfg.ConfigFile)
				assert.Equal(t, subList, cfg.SubCmd)
				assert.Equal(t, "tvChannels", cfg.Namespace)
			},
		},
		{
			name:    "list needs a namespace",
			args:    []string{"list"},
			wantErr: errNamespaceRequired,
		},
		{
			name:    "update needs an id",
			args:    []string{"update", "-ns", "rooms", "-data", "{}"},
			wantErr: errIDRequired,
		},
		{
			name:    "create needs data",
			args:    []string{"create", "-ns", "rooms"},
			wantErr: errDataRequired,
		},
		{
			name:    "export needs output",
			args:    []string{"export", "-ns", "rooms"},
			wantErr: errOutputRequired,
		},
		{
			name: "delete with yes",
			args: []string{"delete", "-ns", "menuItems", "-id", "12", "-yes"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.Equal(t, int64(12), cfg.ID)
				assert.True(t, cfg.Yes)
			},
		},
		{
			name: "pair",
			args: []string{"pair", "-code", " 482913 ", "-room", "305"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.Equal(t, "482913", cfg.PairingCode)
				assert.Equal(t, "305", cfg.RoomNumber)
			},
		},
		{
			name:    "pair needs a room",
			args:    []string{"pair", "-code", "482913"},
			wantErr: errPairArgsRequired,
		},
		{
			name:    "volume needs a value",
			args:    []string{"volume", "-device", "TV1"},
			wantErr: errVolumeRequired,
		},
		{
			name: "command with value",
			args: []string{"command", "-device", "TV1", "-cmd", "set_volume", "-value", "0"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.True(t, cfg.HasValue)
				assert.Equal(t, 0, cfg.Value)
			},
		},
		{
			name:    "request status needs both",
			args:    []string{"request-status", "-id", "3"},
			wantErr: errStatusArgsRequired,
		},
		{
			name: "subcommand help",
			args: []string{"pair", "-h"},
			check: func(t *testing.T, cfg *CmdConfig) {
				assert.True(t, cfg.Help)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseArgs(tt.args)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestShowHelpListsNamespaces(t *testing.T) {
	var buf bytes.Buffer
	ShowHelp(&buf)

	for _, ns := range cms.AllNamespaces() {
		assert.Contains(t, buf.String(), string(ns))
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeInto(m *model, s string) {
	for _, r := range s {
		m.Update(key(string(r)))
	}
}

func TestLoginModel(t *testing.T) {
	var got models.LoginRequest

	login := func(_ context.Context, req models.LoginRequest) (*models.Session, error) {
		got = req
		if req.Password != "s3cret" {
			return nil, errors.New("invalid credentials")
		}

		return &models.Session{Token: "tok-1", User: models.User{Username: req.Username, Role: models.RoleStaff}}, nil
	}

	m := initialModel(context.Background(), login, "")
	m.canCopy = false

	assert.Equal(t, focusedUsername, m.focused)

	typeInto(m, "frontdesk")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusedPassword, m.focused)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.err, errCredentials)

	typeInto(m, "wrong")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m.Update(cmd())
	assert.False(t, m.busy)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "invalid credentials")
	assert.Empty(t, m.passwordInput.Value(), "a failed login clears the password")

	typeInto(m, "s3cret")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, models.LoginRequest{Username: "frontdesk", Password: "s3cret"}, got)
	assert.Equal(t, focusedDone, m.focused)
	require.NotNil(t, m.session)

	view := m.View()
	assert.Contains(t, view, "tok-1")
	assert.Contains(t, view, "Signed in as frontdesk")
	assert.NotContains(t, view, "Press C to copy")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLoginModelPrefilledUsername(t *testing.T) {
	m := initialModel(context.Background(), nil, "frontdesk")

	assert.Equal(t, focusedPassword, m.focused)
	assert.Equal(t, "frontdesk", m.usernameInput.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusedUsername, m.focused)
}

// backend is a fake CMS with an in-memory channel list and a login procedure.
type backend struct {
	*rpctest.Server

	mu       sync.Mutex
	channels []models.TVChannel
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{Server: rpctest.New(t)}
	b.channels = []models.TVChannel{
		{ID: 1, HotelID: 3, Name: "News", StreamURL: "https://x/news", Category: "News", IsActive: true},
	}

	b.Handle(cms.TVChannels.Procedure(cms.OpList), func(json.RawMessage) (interface{}, error) {
		b.mu.Lock()
		defer b.mu.Unlock()

		return append([]models.TVChannel(nil), b.channels...), nil
	})
	b.Handle(cms.TVChannels.Procedure(cms.OpCreate), func(in json.RawMessage) (interface{}, error) {
		var ch models.TVChannel
		if err := json.Unmarshal(in, &ch); err != nil {
			return nil, err
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		ch.ID = int64(len(b.channels) + 1)
		b.channels = append(b.channels, ch)

		return ch, nil
	})
	b.Handle(cms.TVChannels.Procedure(cms.OpUpdate), func(in json.RawMessage) (interface{}, error) {
		var ch models.TVChannel
		if err := json.Unmarshal(in, &ch); err != nil {
			return nil, err
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		for i := range b.channels {
			if b.channels[i].ID == ch.ID {
				b.channels[i] = ch
				return ch, nil
			}
		}

		return nil, &rpctest.Err{Status: http.StatusNotFound, Message: "Channel not found"}
	})
	b.Respond(cms.TVChannels.Procedure(cms.OpDelete), nil)
	b.Handle(cms.ProcLogin, func(in json.RawMessage) (interface{}, error) {
		var req models.LoginRequest
		_ = json.Unmarshal(in, &req)

		if req.Password != "s3cret" {
			return nil, &rpctest.Err{Status: http.StatusUnauthorized, Message: "Invalid username or password"}
		}

		return models.Session{Token: "tok-1", User: models.User{Username: req.Username, Role: models.RoleStaff}}, nil
	})

	return b
}

type testApp struct {
	*App
	out, errOut *bytes.Buffer
}

func newTestApp(t *testing.T, b *backend, stdin string, mutate func(*models.DashboardConfig)) *testApp {
	t.Helper()

	cfg := &models.DashboardConfig{
		Backend: models.BackendConfig{BaseURL: b.URL, Timeout: models.Duration(2 * time.Second)},
		HotelID: 3,
	}

	if mutate != nil {
		mutate(cfg)
	}

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	return &testApp{
		App:    NewApp(cfg, logger.NewTestLogger(), out, errOut, strings.NewReader(stdin)),
		out:    out,
		errOut: errOut,
	}
}

func run(t *testing.T, a *testApp, args ...string) error {
	t.Helper()

	cmd, err := ParseArgs(args)
	require.NoError(t, err)

	return a.Run(context.Background(), cmd)
}

func TestRunListPrintsJSON(t *testing.T) {
	b := newBackend(t)
	a := newTestApp(t, b, "", nil)

	require.NoError(t, run(t, a, "list", "-ns", "tvChannels"))

	var got []models.TVChannel
	require.NoError(t, json.Unmarshal(a.out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "News", got[0].Name)

	assert.JSONEq(t, `{"hotelId":3}`, string(b.Calls(cms.TVChannels.Procedure(cms.OpList))[0].Input))
}

func TestRunUnknownNamespace(t *testing.T) {
	a := newTestApp(t, newBackend(t), "", nil)

	require.ErrorIs(t, run(t, a, "list", "-ns", "spaceships"), errUnknownNamespace)
}

func TestRunCreateAndUpdate(t *testing.T) {
	b := newBackend(t)
	a := newTestApp(t, b, "", nil)

	require.NoError(t, run(t, a, "create", "-ns", "tvChannels",
		"-data", `{"name":"ช่อง1","nameEn":"Channel 1","streamUrl":"https://x/stream","category":"TV"}`))
	assert.Contains(t, a.errOut.String(), "Channel created")

	var created models.TVChannel
	require.NoError(t, json.Unmarshal(b.Calls(cms.TVChannels.Procedure(cms.OpCreate))[0].Input, &created))
	assert.Equal(t, int64(3), created.HotelID)
	assert.True(t, created.IsActive, "form defaults apply")

	var listed []models.TVChannel
	require.NoError(t, json.Unmarshal(a.out.Bytes(), &listed))
	require.Len(t, listed, 2)

	dir := t.TempDir()
	file := filepath.Join(dir, "channel.json")
	require.NoError(t, os.WriteFile(file,
		[]byte(`{"hotelId":3,"name":"News 24","streamUrl":"https://x/news","category":"News"}`), 0o600))

	require.NoError(t, run(t, a, "update", "-ns", "tvChannels", "-id", "1", "-data", "@"+file))
	assert.Contains(t, a.errOut.String(), "Channel updated")

	var updated models.TVChannel
	require.NoError(t, json.Unmarshal(b.Calls(cms.TVChannels.Procedure(cms.OpUpdate))[0].Input, &updated))
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "News 24", updated.Name)
}

func TestRunCreateValidationSendsNothing(t *testing.T) {
	b := newBackend(t)
	a := newTestApp(t, b, "", nil)

	err := run(t, a, "create", "-ns", "tvChannels", "-data", `{"name":"No stream"}`)
	require.ErrorIs(t, err, cms.ErrValidation)
	assert.Zero(t, b.CallCount(cms.TVChannels.Procedure(cms.OpCreate)))
	assert.Contains(t, a.errOut.String(), "Please fill in all required fields")
}

func TestRunDeleteConfirmation(t *testing.T) {
	b := newBackend(t)

	declined := newTestApp(t, b, "n\n", nil)
	require.ErrorIs(t, run(t, declined, "delete", "-ns", "tvChannels", "-id", "1"), errDeleteDeclined)
	assert.Contains(t, declined.errOut.String(), "[y/N]")
	assert.Zero(t, b.CallCount(cms.TVChannels.Procedure(cms.OpDelete)))

	accepted := newTestApp(t, b, "yes\n", nil)
	require.NoError(t, run(t, accepted, "delete", "-ns", "tvChannels", "-id", "1"))
	assert.Equal(t, 1, b.CallCount(cms.TVChannels.Procedure(cms.OpDelete)))

	skipped := newTestApp(t, b, "", nil)
	require.NoError(t, run(t, skipped, "delete", "-ns", "tvChannels", "-id", "1", "-yes"))
	assert.NotContains(t, skipped.errOut.String(), "[y/N]")
	assert.Equal(t, 2, b.CallCount(cms.TVChannels.Procedure(cms.OpDelete)))
}

func TestRunExportWritesSpreadsheet(t *testing.T) {
	b := newBackend(t)
	a := newTestApp(t, b, "", nil)

	out := filepath.Join(t.TempDir(), "channels.xlsx")
	require.NoError(t, run(t, a, "export", "-ns", "tvChannels", "-o", out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "streamUrl")
	assert.Contains(t, rows[1], "News")
}

func TestRunLoginNonInteractive(t *testing.T) {
	b := newBackend(t)
	a := newTestApp(t, b, "", nil)

	require.ErrorIs(t, run(t, a, "login", "-user", "frontdesk", "-non-interactive"), errCredentials)

	require.NoError(t, run(t, a, "login", "-user", "frontdesk", "-password", "s3cret"))
	assert.Equal(t, "tok-1\n", a.out.String())

	err := run(t, a, "login", "-user", "frontdesk", "-password", "nope")
	require.Error(t, err)
	assert.Contains(t, a.errOut.String(), "Invalid username or password")
}

func TestRunAuthenticatesWithConfiguredCredentials(t *testing.T) {
	b := newBackend(t)
	a := newTestApp(t, b, "", func(c *models.DashboardConfig) {
		c.Username = "frontdesk"
		c.Password = "s3cret"
	})

	require.NoError(t, run(t, a, "list", "-ns", "tvChannels"))
	require.NoError(t, run(t, a, "list", "-ns", "tvChannels"))

	assert.Equal(t, 1, b.CallCount(cms.ProcLogin), "the token is reused")
	assert.Equal(t, "Bearer tok-1", b.Calls(cms.TVChannels.Procedure(cms.OpList))[0].Auth)
}

func TestRunDeviceControl(t *testing.T) {
	b := newBackend(t)
	b.Respond(cms.ProcDevicePair, models.Device{ID: 7, DeviceID: "LOYW3V28ABC", RoomNumber: strPtr("305")})
	b.Respond(cms.ProcDeviceSendCommand, nil)
	b.Respond(cms.ProcDeviceSetVolume, nil)

	a := newTestApp(t, b, "", nil)

	require.NoError(t, run(t, a, "pair", "-code", "482913", "-room", "305"))
	assert.JSONEq(t, `{"pairingCode":"482913","hotelId":3,"roomNumber":"305"}`,
		string(b.Calls(cms.ProcDevicePair)[0].Input))
	assert.Contains(t, a.out.String(), "LOYW3V28ABC")

	require.NoError(t, run(t, a, "command", "-device", "LOYW3V28ABC", "-cmd", "mute"))
	assert.JSONEq(t, `{"deviceId":"LOYW3V28ABC","command":"mute"}`,
		string(b.Calls(cms.ProcDeviceSendCommand)[0].Input))

	require.NoError(t, run(t, a, "volume", "-device", "LOYW3V28ABC", "-value", "35"))
	assert.JSONEq(t, `{"deviceId":"LOYW3V28ABC","volume":35}`,
		string(b.Calls(cms.ProcDeviceSetVolume)[0].Input))

	require.Error(t, run(t, a, "command", "-device", "LOYW3V28ABC", "-cmd", "self_destruct"))
	assert.Equal(t, 1, b.CallCount(cms.ProcDeviceSendCommand))
}

func TestRunRequestStatus(t *testing.T) {
	b := newBackend(t)
	b.Respond(cms.ProcServiceRequestStatus, nil)
	b.Respond(cms.GuestServices.Procedure(cms.OpList), []models.ServiceRequest{})

	a := newTestApp(t, b, "", nil)

	require.NoError(t, run(t, a, "request-status", "-id", "4", "-status", "completed"))
	assert.JSONEq(t, `{"id":4,"status":"completed"}`, string(b.Calls(cms.ProcServiceRequestStatus)[0].Input))
	assert.Contains(t, a.errOut.String(), "Request updated")
}

func TestRunWatchStreamsServiceRequests(t *testing.T) {
	b := newBackend(t)
	b.Respond(cms.GuestServices.Procedure(cms.OpList), []models.ServiceRequest{
		{ID: 1, RoomNumber: "101", RequestType: "towels", Status: "pending"},
		{ID: 2, RoomNumber: "102", RequestType: "taxi", Status: "completed"},
	})

	a := newTestApp(t, b, "", nil)

	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)

	a.ErrOut = &lockedWriter{mu: &mu, w: &buf}
	a.deps.Notifier = NewToastPrinter(a.ErrOut)
	a.Dashboard = cms.NewDashboard(a.deps)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- a.Run(ctx, &CmdConfig{SubCmd: subWatch}) }()

	require.Eventually(t, func() bool { return b.OpenConnections() == 1 }, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Contains(t, buf.String(), "1 open service requests")
	mu.Unlock()

	b.Push(`{"type":"new_service_request","payload":{"requestType":"room service","roomNumber":"305"}}`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return strings.Contains(buf.String(), "Room 305: room service [View]")
	}, 2*time.Second, 10*time.Millisecond)

	dials := b.Dials()
	require.NotEmpty(t, dials)
	assert.Equal(t, []string{"client"}, dials[0]["type"])
	assert.Equal(t, []string{"3"}, dials[0]["hotelId"])

	cancel()
	require.NoError(t, <-done)
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}

func strPtr(s string) *string { return &s }
