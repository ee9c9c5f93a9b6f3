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
	"sync"
	"time"

	"github.com/carverauto/hoteltv/pkg/logger"
)

// TaskFunc is one run of a periodic task. ctx is cancelled when the task is.
type TaskFunc func(ctx context.Context)

type options struct {
	immediate bool
}

// Option tweaks a task.
type Option func(*options)

// Immediately runs the task once on start instead of waiting for the first tick.
func Immediately() Option {
	return func(o *options) { o.immediate = true }
}

// Task is the handle of a running periodic task. Runs of the same task never overlap;
// a tick that arrives while fn is still running is dropped.
type Task struct {
	name     string
	interval time.Duration
	cancel   context.CancelFunc
	trigger  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// Every starts fn on its own goroutine every interval until ctx is done or Cancel is called.
func Every(ctx context.Context, clock Clock, name string, interval time.Duration, fn TaskFunc, opts ...Option) *Task {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)

	t := &Task{
		name:     name,
		interval: interval,
		cancel:   cancel,
		trigger:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	ticker := clock.Ticker(interval)

	go t.run(ctx, ticker, fn, o)

	return t
}

func (t *Task) run(ctx context.Context, ticker Ticker, fn TaskFunc, o options) {
	defer close(t.done)
	defer ticker.Stop()

	if o.immediate {
		fn(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		case <-t.trigger:
		}

		if ctx.Err() != nil {
			return
		}

		fn(ctx)
	}
}

// Name returns the task name given to Every.
func (t *Task) Name() string { return t.name }

// Interval returns the configured period.
func (t *Task) Interval() time.Duration { return t.interval }

// Trigger asks for an out-of-band run. Requests coalesce while one is pending.
func (t *Task) Trigger() {
	select {
	case t.trigger <- struct{}{}:
	default:
	}
}

// Cancel stops the task and waits for an in-flight run to return. Safe to call twice.
func (t *Task) Cancel() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the task loop has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Group owns the tasks of one component so they can be torn down together.
type Group struct {
	mu     sync.Mutex
	clock  Clock
	logger logger.Logger
	tasks  []*Task
}

// NewGroup creates an empty group. A nil clock means RealClock.
func NewGroup(clock Clock, log logger.Logger) *Group {
	if clock == nil {
		clock = RealClock()
	}

	return &Group{clock: clock, logger: log}
}

// Every starts a task that belongs to the group.
func (g *Group) Every(ctx context.Context, name string, interval time.Duration, fn TaskFunc, opts ...Option) *Task {
	t := Every(ctx, g.clock, name, interval, fn, opts...)

	g.mu.Lock()
	g.tasks = append(g.tasks, t)
	g.mu.Unlock()

	g.logger.Debug().Str("task", name).Dur("interval", interval).Msg("Periodic task started")

	return t
}

// CancelAll cancels every task in the group and waits for all of them to exit.
func (g *Group) CancelAll() {
	g.mu.Lock()
	tasks := g.tasks
	g.tasks = nil
	g.mu.Unlock()

	for _, t := range tasks {
		t.Cancel()
		g.logger.Debug().Str("task", t.name).Msg("Periodic task stopped")
	}
}

// Active returns how many tasks are still running.
func (g *Group) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0

	for _, t := range g.tasks {
		select {
		case <-t.done:
		default:
			n++
		}
	}

	return n
}

// Clock returns the clock the group schedules on.
func (g *Group) Clock() Clock {
	return g.clock
}
