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

// Package launcher runs the TV side of the hotel CMS: pairing, polling, remote control,
// hotel content and wake-up alarms, exposed as a View for the terminal UI.
package launcher

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/carverauto/hoteltv/pkg/lifecycle"
	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/pairing"
	"github.com/carverauto/hoteltv/pkg/realtime"
	"github.com/carverauto/hoteltv/pkg/rpc"
	"github.com/carverauto/hoteltv/pkg/scheduler"
)

const toastHistory = 20

// Options wires a Session. Backend, Content and IDs are required.
type Options struct {
	Backend    pairing.Backend
	Content    ContentSource
	IDs        pairing.DeviceIDSource
	Notifier   notify.Notifier
	Logger     logger.Logger
	Clock      scheduler.Clock
	Intervals  models.IntervalsConfig
	StaleAfter int
	DeviceName string
	DeviceInfo models.DeviceInfo
	Hooks      pairing.Hooks
	Location   *time.Location

	// PushBaseURL enables the device push channel when set.
	PushBaseURL string
	PushOptions []realtime.Option
}

// Session is one mount of the launcher. Start and Stop may be called once each.
type Session struct {
	opts     Options
	logger   logger.Logger
	recorder *notify.Recorder
	notifier notify.Notifier

	requester *pairing.Requester
	status    *pairing.StatusPoller
	heartbeat *pairing.Heartbeat
	commands  *pairing.CommandPoller
	executor  *pairing.DeviceExecutor
	alarms    *Alarms
	group     *scheduler.Group

	updates chan struct{}

	mu           sync.Mutex
	ctx          context.Context
	cancel       context.CancelFunc
	started      bool
	deviceID     string
	now          time.Time
	content      *Content
	contentFails int
	statusTask   *scheduler.Task
	commandTask  *scheduler.Task
	push         *realtime.Client
}

var _ lifecycle.Service = (*Session)(nil)

func NewSession(opts Options) (*Session, error) {
	switch {
	case opts.Backend == nil:
		return nil, errNoBackend
	case opts.Content == nil:
		return nil, errNoContent
	case opts.IDs == nil:
		return nil, errNoIdentity
	}

	if opts.Logger == nil {
		opts.Logger = logger.NewTestLogger()
	}

	if opts.Clock == nil {
		opts.Clock = scheduler.RealClock()
	}

	s := &Session{
		opts:     opts,
		logger:   opts.Logger,
		recorder: notify.NewRecorder(toastHistory),
		updates:  make(chan struct{}, 1),
		now:      opts.Clock.Now(),
	}

	s.notifier = notify.Multi{s.recorder, opts.Notifier}
	s.recorder.OnNotify(func(notify.Toast) { s.changed() })

	log := opts.Logger

	s.requester = pairing.NewRequester(opts.Backend, opts.IDs, s.notifier,
		lifecycle.Component(log, "pairing"), opts.DeviceName, opts.DeviceInfo)
	s.status = pairing.NewStatusPoller(opts.Backend, opts.IDs, lifecycle.Component(log, "status"), opts.StaleAfter)
	s.heartbeat = pairing.NewHeartbeat(opts.Backend, opts.IDs, lifecycle.Component(log, "heartbeat"))
	s.executor = pairing.NewDeviceExecutor(s.notifier, opts.Hooks)
	s.commands = pairing.NewCommandPoller(opts.Backend, opts.IDs, s.executor, lifecycle.Component(log, "commands"))
	s.alarms = NewAlarms(opts.Location, s.notifier, lifecycle.Component(log, "alarms"))
	s.group = scheduler.NewGroup(opts.Clock, lifecycle.Component(log, "scheduler"))

	s.status.OnChange(s.onStatusChange)

	return s, nil
}

// Start mounts the session: device id, first pairing code, the four periodic tasks
// and the device push channel. A failed code request is shown as a toast, not returned.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errAlreadyStarted
	}

	s.started = true
	ctx, cancel := context.WithCancel(ctx)
	s.ctx, s.cancel = ctx, cancel
	s.mu.Unlock()

	deviceID := s.opts.IDs.DeviceID(ctx)

	s.mu.Lock()
	s.deviceID = deviceID
	s.mu.Unlock()

	s.logger.Info().Str("device_id", deviceID).Msg("Launcher starting")

	var push *realtime.Client

	if s.opts.PushBaseURL != "" {
		opts := append([]realtime.Option{realtime.OnConnectionChange(func(bool) { s.changed() })}, s.opts.PushOptions...)

		c, err := realtime.New(s.opts.PushBaseURL,
			realtime.Params{Scope: realtime.ScopeDevice, ID: deviceID},
			lifecycle.Component(s.logger, "push"), opts...)
		if err != nil {
			cancel()
			return err
		}

		push = c
	}

	if _, err := s.requester.Request(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Initial pairing code request failed")
	}

	iv := s.opts.Intervals

	s.group.Every(ctx, "clock", iv.Clock.Or(models.DefaultClockInterval), s.tick)
	statusTask := s.group.Every(ctx, "status", iv.StatusPoll.Or(models.DefaultStatusPollInterval),
		s.pollStatus, scheduler.Immediately())
	s.group.Every(ctx, "heartbeat", iv.Heartbeat.Or(models.DefaultHeartbeatInterval),
		s.heartbeat.Beat, scheduler.Immediately())
	commandTask := s.group.Every(ctx, "commands", iv.CommandPoll.Or(models.DefaultCommandPollInterval), s.pollCommands)

	s.mu.Lock()
	s.statusTask, s.commandTask, s.push = statusTask, commandTask, push
	s.mu.Unlock()

	s.alarms.Start()

	if push != nil {
		push.Handle(models.PushCommandPending, func(context.Context, json.RawMessage) { commandTask.Trigger() })
		push.Handle(models.PushPairingChanged, func(context.Context, json.RawMessage) { statusTask.Trigger() })
		push.Start(ctx)
	}

	s.changed()

	return nil
}

// Stop unmounts the session. Once it returns no task, push connection or alarm is left running.
func (s *Session) Stop() error {
	s.mu.Lock()
	if !s.started || s.cancel == nil {
		s.mu.Unlock()
		return nil
	}

	cancel, push := s.cancel, s.push
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.group.CancelAll()
	s.alarms.Stop()

	var err error
	if push != nil {
		err = push.Close()
	}

	sent, failed := s.heartbeat.Stats()
	s.logger.Info().Int64("heartbeats", sent).Int64("heartbeat_failures", failed).Msg("Launcher stopped")

	return err
}

// RequestCode asks for a fresh pairing code. It is refused once the device is paired.
func (s *Session) RequestCode(ctx context.Context) (string, error) {
	if s.status.Snapshot().State == pairing.StatePaired {
		return "", errAlreadyPaired
	}

	code, err := s.requester.Request(ctx)
	s.changed()

	return code, err
}

// Updates signals that View may have changed. Signals coalesce.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

func (s *Session) View() View {
	snap := s.status.Snapshot()
	dev := s.executor.State()
	code := s.requester.Code()

	s.mu.Lock()
	v := View{
		Now:      s.now,
		DeviceID: s.deviceID,
		Content:  s.content,
	}
	push := s.push
	s.mu.Unlock()

	hotelID, _ := snap.HotelScope()

	v.Screen = screenFor(snap.State, dev)
	v.State = snap.State
	v.Stale = snap.Stale
	v.HotelID = hotelID
	v.Room = snap.Status.Room()
	v.Device = dev
	v.Alarms = s.alarms.Entries()

	if snap.State != pairing.StatePaired {
		v.PairingCode = code
		v.CodeDigits = pairing.Digits(code)
	}

	if t, ok := s.recorder.Last(); ok {
		v.Toast = &t
	}

	if push != nil {
		v.PushConnected = push.Connected()
	}

	return v
}

func (s *Session) tick(context.Context) {
	now := s.opts.Clock.Now()

	s.mu.Lock()
	s.now = now
	s.mu.Unlock()

	s.changed()
}

func (s *Session) pollStatus(ctx context.Context) {
	s.status.Poll(ctx)
	s.ensureContent(ctx)
}

func (s *Session) pollCommands(ctx context.Context) {
	if cmd := s.commands.Poll(ctx); cmd != nil {
		s.changed()
	}
}

// onStatusChange runs on the status task goroutine.
func (s *Session) onStatusChange(prev, next pairing.Snapshot) {
	defer s.changed()

	switch {
	case next.State == pairing.StatePaired:
		ph, _ := prev.HotelScope()
		nh, _ := next.HotelScope()

		if prev.State == pairing.StatePaired && ph == nh && prev.Status.Room() == next.Status.Room() {
			return
		}

		s.requester.Clear()
		s.dropContent()
	case prev.State == pairing.StatePaired:
		s.logger.Info().Msg("Device was unpaired, requesting a new code")
		s.dropContent()

		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if _, err := s.requester.Request(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Pairing code request failed")
		}
	}
}

// ensureContent loads hotel content while paired and none is loaded. It never runs while unpaired.
func (s *Session) ensureContent(ctx context.Context) {
	snap := s.status.Snapshot()

	hotelID, ok := snap.HotelScope()
	if !ok {
		return
	}

	s.mu.Lock()
	loaded := s.content != nil
	s.mu.Unlock()

	if loaded {
		return
	}

	content, err := s.opts.Content.Load(ctx, hotelID, snap.Status.Room())
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		s.mu.Lock()
		s.contentFails++
		first := s.contentFails == 1
		s.mu.Unlock()

		s.logger.Warn().Err(err).Int64("hotel_id", hotelID).Msg("Hotel content failed to load")

		if first {
			notify.Error(s.notifier, "Failed to load hotel content", rpc.UserMessage(err))
		}

		return
	}

	s.mu.Lock()
	s.content = content
	s.contentFails = 0
	s.mu.Unlock()

	s.alarms.Schedule(content.WakeUpCalls)
	s.changed()
}

func (s *Session) dropContent() {
	s.mu.Lock()
	s.content = nil
	s.contentFails = 0
	s.mu.Unlock()

	s.alarms.Clear()
}

func (s *Session) changed() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
