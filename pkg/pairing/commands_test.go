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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
)

const testDeviceID = "LOYW3V28ABC"

var errBackendDown = errors.New("backend down")

type staticID string

func (s staticID) DeviceID(context.Context) string { return string(s) }

func cmd(id int64, c models.CommandType) models.RemoteCommand {
	return models.RemoteCommand{ID: id, Command: c}
}

func TestCommandPollerActsOnFirstCommandOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)
	executor := NewMockExecutor(ctrl)

	backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).
		Return([]models.RemoteCommand{cmd(1, models.CommandMute), cmd(2, models.CommandVolumeUp)}, nil)
	executor.EXPECT().Execute(gomock.Any(), cmd(1, models.CommandMute)).Return(nil)
	backend.EXPECT().AckCommand(gomock.Any(), testDeviceID, int64(1)).Return(nil)

	p := NewCommandPoller(backend, staticID(testDeviceID), executor, logger.NewTestLogger())

	handled := p.Poll(context.Background())
	require.NotNil(t, handled)
	assert.Equal(t, models.CommandMute, handled.Command)
}

func TestCommandPollerDoesNotRepeatUnackedCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)
	executor := NewMockExecutor(ctrl)

	queue := []models.RemoteCommand{cmd(7, models.CommandMute)}

	gomock.InOrder(
		backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).Return(queue, nil),
		executor.EXPECT().Execute(gomock.Any(), queue[0]).Return(nil),
		backend.EXPECT().AckCommand(gomock.Any(), testDeviceID, int64(7)).Return(errBackendDown),

		// head unchanged: only the ack is retried
		backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).Return(queue, nil),
		backend.EXPECT().AckCommand(gomock.Any(), testDeviceID, int64(7)).Return(nil),

		backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).
			Return([]models.RemoteCommand{cmd(8, models.CommandUnmute)}, nil),
		executor.EXPECT().Execute(gomock.Any(), cmd(8, models.CommandUnmute)).Return(nil),
		backend.EXPECT().AckCommand(gomock.Any(), testDeviceID, int64(8)).Return(nil),
	)

	p := NewCommandPoller(backend, staticID(testDeviceID), executor, logger.NewTestLogger())

	require.NotNil(t, p.Poll(context.Background()))
	assert.Nil(t, p.Poll(context.Background()))

	handled := p.Poll(context.Background())
	require.NotNil(t, handled)
	assert.Equal(t, int64(8), handled.ID)
}

func TestCommandPollerRunsCommandsWithoutID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)
	executor := NewMockExecutor(ctrl)

	mute := models.RemoteCommand{Command: models.CommandMute}
	up := models.RemoteCommand{Command: models.CommandVolumeUp}

	// no AckCommand expectations: id-less commands are never acknowledged
	gomock.InOrder(
		backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).Return([]models.RemoteCommand{mute}, nil),
		executor.EXPECT().Execute(gomock.Any(), mute).Return(nil),
		backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).Return([]models.RemoteCommand{up}, nil),
		executor.EXPECT().Execute(gomock.Any(), up).Return(nil),
	)

	p := NewCommandPoller(backend, staticID(testDeviceID), executor, logger.NewTestLogger())

	first := p.Poll(context.Background())
	require.NotNil(t, first)
	assert.Equal(t, models.CommandMute, first.Command)

	second := p.Poll(context.Background())
	require.NotNil(t, second)
	assert.Equal(t, models.CommandVolumeUp, second.Command)
}

func TestCommandPollerSkipsUnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)
	executor := NewMockExecutor(ctrl)

	backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).
		Return([]models.RemoteCommand{cmd(3, "self_destruct")}, nil)
	backend.EXPECT().AckCommand(gomock.Any(), testDeviceID, int64(3)).Return(nil)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)

	p := NewCommandPoller(backend, staticID(testDeviceID), executor, logger.NewTestLogger())

	assert.Nil(t, p.Poll(context.Background()))
}

func TestCommandPollerAcksFailedExecution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)
	executor := NewMockExecutor(ctrl)

	backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).
		Return([]models.RemoteCommand{cmd(4, models.CommandSetVolume)}, nil)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(errMissingVolume)
	backend.EXPECT().AckCommand(gomock.Any(), testDeviceID, int64(4)).Return(nil)

	p := NewCommandPoller(backend, staticID(testDeviceID), executor, logger.NewTestLogger())

	assert.NotNil(t, p.Poll(context.Background()))
}

func TestCommandPollerFetchFailureIsQuiet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)
	executor := NewMockExecutor(ctrl)

	backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).Return(nil, errBackendDown)

	p := NewCommandPoller(backend, staticID(testDeviceID), executor, logger.NewTestLogger())

	assert.Nil(t, p.Poll(context.Background()))
}

func TestCommandPollerEmptyQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)
	backend.EXPECT().GetCommands(gomock.Any(), testDeviceID).Return(nil, nil)

	p := NewCommandPoller(backend, staticID(testDeviceID), NewMockExecutor(ctrl), logger.NewTestLogger())

	assert.Nil(t, p.Poll(context.Background()))
}
