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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
)

func pairedStatus(hotel int64, room string) *models.PairingStatus {
	return &models.PairingStatus{IsPaired: true, HotelID: &hotel, RoomNumber: &room}
}

func TestStatusPollerTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)

	gomock.InOrder(
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(&models.PairingStatus{}, nil),
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(pairedStatus(3, "101"), nil),
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(pairedStatus(3, "101"), nil),
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(&models.PairingStatus{}, nil),
	)

	p := NewStatusPoller(backend, staticID(testDeviceID), logger.NewTestLogger(), 3)

	var changes []State

	p.OnChange(func(prev, next Snapshot) {
		if prev.State != next.State {
			changes = append(changes, next.State)
		}
	})

	p.Poll(context.Background())
	assert.Empty(t, changes)

	_, ok := p.Snapshot().HotelScope()
	assert.False(t, ok)

	p.Poll(context.Background())
	require.Equal(t, []State{StatePaired}, changes)

	snap := p.Snapshot()
	hotel, ok := snap.HotelScope()
	require.True(t, ok)
	assert.Equal(t, int64(3), hotel)
	assert.Equal(t, "101", snap.Status.Room())

	p.Poll(context.Background())
	assert.Len(t, changes, 1)

	p.Poll(context.Background())
	assert.Equal(t, []State{StatePaired, StateUnpaired}, changes)
	assert.Equal(t, "UNPAIRED", p.Snapshot().State.String())
}

func TestStatusPollerMarksStaleAfterFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)

	gomock.InOrder(
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(pairedStatus(1, "7"), nil),
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(nil, errBackendDown).Times(3),
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(pairedStatus(1, "7"), nil),
	)

	p := NewStatusPoller(backend, staticID(testDeviceID), logger.NewTestLogger(), 3)

	var staleChanges []bool

	p.OnChange(func(prev, next Snapshot) {
		if prev.Stale != next.Stale {
			staleChanges = append(staleChanges, next.Stale)
		}
	})

	p.Poll(context.Background())

	p.Poll(context.Background())
	p.Poll(context.Background())
	assert.False(t, p.Snapshot().Stale)
	assert.Equal(t, StatePaired, p.Snapshot().State)

	p.Poll(context.Background())
	assert.True(t, p.Snapshot().Stale)
	assert.Equal(t, StatePaired, p.Snapshot().State, "failures never unpair")

	p.Poll(context.Background())
	assert.False(t, p.Snapshot().Stale)
	assert.Zero(t, p.Snapshot().Failures)
	assert.Equal(t, []bool{true, false}, staleChanges)
}

func TestStatusPollerIgnoresCancelledPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())

	backend := NewMockBackend(ctrl)
	backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).DoAndReturn(
		func(context.Context, string) (*models.PairingStatus, error) {
			cancel()
			return nil, context.Canceled
		})

	p := NewStatusPoller(backend, staticID(testDeviceID), logger.NewTestLogger(), 1)
	p.Poll(ctx)

	assert.Zero(t, p.Snapshot().Failures)
	assert.False(t, p.Snapshot().Stale)
}

func TestStatusPollerReassignmentIsAChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := NewMockBackend(ctrl)

	gomock.InOrder(
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(pairedStatus(1, "101"), nil),
		backend.EXPECT().CheckStatus(gomock.Any(), testDeviceID).Return(pairedStatus(1, "202"), nil),
	)

	p := NewStatusPoller(backend, staticID(testDeviceID), logger.NewTestLogger(), 0)

	calls := 0
	p.OnChange(func(_, _ Snapshot) { calls++ })

	p.Poll(context.Background())
	p.Poll(context.Background())

	assert.Equal(t, 2, calls)

	snap := p.Snapshot()
	assert.Equal(t, "202", snap.Status.Room())
}
