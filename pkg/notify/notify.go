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

//go:generate mockgen -destination=mock_notify.go -package=notify github.com/carverauto/hoteltv/pkg/notify Notifier

// Package notify delivers user-visible toasts.
package notify

import (
	"sync"
	"time"

	"github.com/carverauto/hoteltv/pkg/logger"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Toast is a short message shown to the operator or guest.
type Toast struct {
	Kind    Kind      `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message,omitempty"`
	Action  string    `json:"action,omitempty"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(t Toast)
}

func Success(n Notifier, title, message string) {
	n.Notify(Toast{Kind: KindSuccess, Title: title, Message: message, At: time.Now()})
}

func Error(n Notifier, title, message string) {
	n.Notify(Toast{Kind: KindError, Title: title, Message: message, At: time.Now()})
}

func Info(n Notifier, title, message string) {
	n.Notify(Toast{Kind: KindInfo, Title: title, Message: message, At: time.Now()})
}

func Warning(n Notifier, title, message string) {
	n.Notify(Toast{Kind: KindWarning, Title: title, Message: message, At: time.Now()})
}

// Actionable sends an info toast carrying an action label, e.g. "View".
func Actionable(n Notifier, title, message, action string) {
	n.Notify(Toast{Kind: KindInfo, Title: title, Message: message, Action: action, At: time.Now()})
}

// LogNotifier writes toasts to the log.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (l *LogNotifier) Notify(t Toast) {
	ev := l.logger.Info()

	switch t.Kind {
	case KindError:
		ev = l.logger.Error()
	case KindWarning:
		ev = l.logger.Warn()
	case KindSuccess, KindInfo:
	}

	ev = ev.Str("toast", string(t.Kind))
	if t.Message != "" {
		ev = ev.Str("detail", t.Message)
	}

	if t.Action != "" {
		ev = ev.Str("action", t.Action)
	}

	ev.Msg(t.Title)
}

const defaultHistory = 50

// Recorder keeps the most recent toasts in memory.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	toasts  []Toast
	watcher func(Toast)
}

// NewRecorder creates a Recorder keeping at most limit toasts. A non-positive limit uses 50.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = defaultHistory
	}

	return &Recorder{limit: limit}
}

// OnNotify registers a callback run after each toast is recorded.
func (r *Recorder) OnNotify(fn func(Toast)) {
	r.mu.Lock()
	r.watcher = fn
	r.mu.Unlock()
}

func (r *Recorder) Notify(t Toast) {
	if t.At.IsZero() {
		t.At = time.Now()
	}

	r.mu.Lock()
	r.toasts = append(r.toasts, t)

	if over := len(r.toasts) - r.limit; over > 0 {
		r.toasts = append([]Toast(nil), r.toasts[over:]...)
	}

	watcher := r.watcher
	r.mu.Unlock()

	if watcher != nil {
		watcher(t)
	}
}

// Toasts returns a copy of the recorded history, oldest first.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Toast(nil), r.toasts...)
}

// Last returns the newest toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.toasts) == 0 {
		return Toast{}, false
	}

	return r.toasts[len(r.toasts)-1], true
}

func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0

	for _, t := range r.toasts {
		if t.Kind == kind {
			n++
		}
	}

	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.toasts = nil
	r.mu.Unlock()
}

// Multi fans a toast out to every notifier.
type Multi []Notifier

func (m Multi) Notify(t Toast) {
	for _, n := range m {
		if n != nil {
			n.Notify(t)
		}
	}
}

// Discard drops every toast.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Toast) {}
