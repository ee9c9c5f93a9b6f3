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

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hoteltv/pkg/logger"
)

const waitFor = time.Second

func TestEveryRunsOnTicks(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	var runs atomic.Int32

	task := Every(context.Background(), clock, "poll", 5*time.Second, func(context.Context) {
		runs.Add(1)
	})
	defer task.Cancel()

	clock.Advance(4 * time.Second)
	assert.Never(t, func() bool { return runs.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return runs.Load() == 1 }, waitFor, time.Millisecond)

	clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool { return runs.Load() == 2 }, waitFor, time.Millisecond)
}

func TestEveryImmediately(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	var runs atomic.Int32

	task := Every(context.Background(), clock, "status", time.Minute, func(context.Context) {
		runs.Add(1)
	}, Immediately())
	defer task.Cancel()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, waitFor, time.Millisecond)
}

func TestTriggerRunsOutOfBand(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	var runs atomic.Int32

	task := Every(context.Background(), clock, "commands", time.Hour, func(context.Context) {
		runs.Add(1)
	})
	defer task.Cancel()

	task.Trigger()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, waitFor, time.Millisecond)
}

func TestCancelStopsTickerAndWaits(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	var runs atomic.Int32

	task := Every(context.Background(), clock, "heartbeat", time.Second, func(context.Context) {
		runs.Add(1)
	})

	require.Equal(t, 1, clock.ActiveTickers())

	task.Cancel()
	task.Cancel()

	assert.Equal(t, 0, clock.ActiveTickers())

	select {
	case <-task.Done():
	default:
		t.Fatal("task loop still running after Cancel")
	}

	clock.Advance(10 * time.Second)
	assert.Never(t, func() bool { return runs.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestCancelAbortsInFlightRun(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	started := make(chan struct{})

	task := Every(context.Background(), clock, "slow", time.Second, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	}, Immediately())

	<-started
	task.Cancel()
}

func TestGroupCancelAll(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	group := NewGroup(clock, logger.NewTestLogger())
	ctx := context.Background()

	noop := func(context.Context) {}

	group.Every(ctx, "clock", time.Second, noop)
	group.Every(ctx, "status", 5*time.Second, noop, Immediately())
	group.Every(ctx, "heartbeat", 30*time.Second, noop)
	group.Every(ctx, "commands", 3*time.Second, noop)

	assert.Equal(t, 4, group.Active())
	assert.Equal(t, 4, clock.ActiveTickers())

	group.CancelAll()

	assert.Equal(t, 0, group.Active())
	assert.Equal(t, 0, clock.ActiveTickers())
}

func TestGroupParentContextCancel(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	group := NewGroup(clock, logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	task := group.Every(ctx, "status", time.Second, func(context.Context) {})

	cancel()

	select {
	case <-task.Done():
	case <-time.After(waitFor):
		t.Fatal("task did not stop on parent cancellation")
	}

	assert.Equal(t, 0, group.Active())
}
