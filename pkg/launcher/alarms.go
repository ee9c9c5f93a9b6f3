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
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
)

const (
	wakeUpPending  = "pending"
	defaultWakeMsg = "Good morning"
)

// AlarmEntry is one scheduled wake-up call.
type AlarmEntry struct {
	CallID    int64
	Recurring bool
	Next      time.Time
}

// Alarms rings the room's wake-up calls locally as toasts. One-shot calls are removed
// after they fire; recurring calls ring every day at the same local time.
type Alarms struct {
	cron     *cron.Cron
	loc      *time.Location
	notifier notify.Notifier
	logger   logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[int64]cron.EntryID
	calls   map[int64]models.WakeUpCall
	rung    int
}

// NewAlarms builds a stopped scheduler. A nil location means time.Local.
func NewAlarms(loc *time.Location, n notify.Notifier, log logger.Logger) *Alarms {
	if loc == nil {
		loc = time.Local
	}

	return &Alarms{
		cron:     cron.New(cron.WithLocation(loc)),
		loc:      loc,
		notifier: n,
		logger:   log,
		now:      time.Now,
		entries:  make(map[int64]cron.EntryID),
		calls:    make(map[int64]models.WakeUpCall),
	}
}

func (a *Alarms) Start() { a.cron.Start() }

// Stop halts the scheduler and waits for a ringing alarm to finish. Scheduled calls are kept.
func (a *Alarms) Stop() {
	<-a.cron.Stop().Done()
}

// Schedule replaces every scheduled call with calls. Calls that are not pending, or
// one-shot calls already in the past, are skipped.
func (a *Alarms) Schedule(calls []models.WakeUpCall) int {
	a.Clear()

	now := a.now()
	n := 0

	for _, call := range calls {
		if call.Status != "" && call.Status != wakeUpPending {
			continue
		}

		if !call.IsRecurring && !call.WakeUpTime.After(now) {
			continue
		}

		if err := a.add(call); err != nil {
			a.logger.Warn().Err(err).Int64("call_id", call.ID).Msg("Could not schedule wake-up call")

			continue
		}

		n++
	}

	if n > 0 {
		a.logger.Info().Int("count", n).Msg("Wake-up calls scheduled")
	}

	return n
}

func (a *Alarms) add(call models.WakeUpCall) error {
	id, err := a.cron.AddFunc(cronSpec(call, a.loc), func() { a.fire(call.ID) })
	if err != nil {
		return fmt.Errorf("wake-up call %d: %w", call.ID, err)
	}

	a.mu.Lock()
	a.entries[call.ID] = id
	a.calls[call.ID] = call
	a.mu.Unlock()

	return nil
}

// cronSpec pins one-shot calls to their date; recurring ones repeat daily.
func cronSpec(call models.WakeUpCall, loc *time.Location) string {
	t := call.WakeUpTime.In(loc)

	if call.IsRecurring {
		return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
	}

	return fmt.Sprintf("%d %d %d %d *", t.Minute(), t.Hour(), t.Day(), int(t.Month()))
}

func (a *Alarms) fire(callID int64) {
	a.mu.Lock()
	call, ok := a.calls[callID]

	if ok && !call.IsRecurring {
		a.cron.Remove(a.entries[callID])
		delete(a.entries, callID)
		delete(a.calls, callID)
	}

	if ok {
		a.rung++
	}
	a.mu.Unlock()

	if !ok {
		return
	}

	msg := call.Message
	if msg == "" {
		msg = defaultWakeMsg
	}

	a.logger.Info().Int64("call_id", callID).Str("room", call.RoomNumber).Msg("Wake-up call ringing")
	notify.Actionable(a.notifier, "Wake-up call", msg, "Dismiss")
}

// Clear removes every scheduled call.
func (a *Alarms) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for callID, id := range a.entries {
		a.cron.Remove(id)
		delete(a.entries, callID)
		delete(a.calls, callID)
	}
}

// Entries lists the scheduled calls ordered by next ring time.
func (a *Alarms) Entries() []AlarmEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now().In(a.loc)
	out := make([]AlarmEntry, 0, len(a.entries))

	for callID, id := range a.entries {
		e := a.cron.Entry(id)
		if e.Schedule == nil {
			continue
		}

		out = append(out, AlarmEntry{
			CallID:    callID,
			Recurring: a.calls[callID].IsRecurring,
			Next:      e.Schedule.Next(now),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Next.Before(out[j].Next) })

	return out
}

// Rung counts alarms that have fired.
func (a *Alarms) Rung() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.rung
}
