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
	"sync"
	"time"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
)

// State is the launcher's pairing state.
type State int

const (
	StateUnpaired State = iota
	StatePaired
)

func (s State) String() string {
	if s == StatePaired {
		return "PAIRED"
	}

	return "UNPAIRED"
}

// Snapshot is the status poller's latest view.
type Snapshot struct {
	State     State
	Status    models.PairingStatus
	Stale     bool
	Failures  int
	CheckedAt time.Time
}

// HotelScope returns the hotel id hotel-scoped queries may use.
func (s Snapshot) HotelScope() (int64, bool) {
	if s.State != StatePaired {
		return 0, false
	}

	return s.Status.HotelScope()
}

// ChangeFunc is called after a poll changed the snapshot. prev and next differ in state,
// assignment or staleness.
type ChangeFunc func(prev, next Snapshot)

// StatusPoller tracks whether the backend considers this device paired.
type StatusPoller struct {
	backend    Backend
	ids        DeviceIDSource
	logger     logger.Logger
	staleAfter int
	now        func() time.Time

	mu        sync.Mutex
	snap      Snapshot
	listeners []ChangeFunc
}

func NewStatusPoller(backend Backend, ids DeviceIDSource, log logger.Logger, staleAfter int) *StatusPoller {
	if staleAfter <= 0 {
		staleAfter = models.DefaultStaleAfter
	}

	return &StatusPoller{
		backend:    backend,
		ids:        ids,
		logger:     log,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// OnChange registers fn. Listeners run on the polling goroutine, in registration order.
func (p *StatusPoller) OnChange(fn ChangeFunc) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

func (p *StatusPoller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snap
}

// Poll runs one status check. Failures never change the pairing state; after staleAfter
// consecutive failures the snapshot is marked stale until the next success.
func (p *StatusPoller) Poll(ctx context.Context) {
	deviceID := p.ids.DeviceID(ctx)

	status, err := p.backend.CheckStatus(ctx, deviceID)
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	prev := p.snap
	next := prev

	if err != nil {
		next.Failures++
		next.Stale = next.Failures >= p.staleAfter
	} else {
		next.Failures = 0
		next.Stale = false
		next.Status = *status
		next.CheckedAt = p.now()
		next.State = StateUnpaired

		if status.IsPaired {
			next.State = StatePaired
		}
	}

	p.snap = next
	listeners := append([]ChangeFunc(nil), p.listeners...)
	p.mu.Unlock()

	if err != nil {
		p.logger.Debug().Err(err).Int("failures", next.Failures).Msg("Pairing status check failed")

		if next.Stale && !prev.Stale {
			p.logger.Warn().Int("failures", next.Failures).Msg("Backend unreachable, pairing status is stale")
		}
	}

	if !changed(prev, next) {
		return
	}

	if prev.State != next.State {
		p.logger.Info().
			Str("from", prev.State.String()).
			Str("to", next.State.String()).
			Str("room", next.Status.Room()).
			Msg("Pairing state changed")
	}

	for _, fn := range listeners {
		fn(prev, next)
	}
}

func changed(prev, next Snapshot) bool {
	if prev.State != next.State || prev.Stale != next.Stale {
		return true
	}

	ph, _ := prev.Status.HotelScope()
	nh, _ := next.Status.HotelScope()

	return ph != nh || prev.Status.Room() != next.Status.Room()
}
