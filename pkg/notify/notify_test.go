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

package notify

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/hoteltv/pkg/lifecycle"
)

func TestRecorderKeepsBoundedHistory(t *testing.T) {
	r := NewRecorder(3)

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		Info(r, title, "")
	}

	toasts := r.Toasts()
	require.Len(t, toasts, 3)
	assert.Equal(t, "c", toasts[0].Title)
	assert.Equal(t, "e", toasts[2].Title)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "e", last.Title)
}

func TestRecorderCountsByKind(t *testing.T) {
	r := NewRecorder(0)

	Success(r, "Saved", "")
	Error(r, "Failed", "Stream URL already exists")
	Success(r, "Saved", "")

	assert.Equal(t, 2, r.Count(KindSuccess))
	assert.Equal(t, 1, r.Count(KindError))
	assert.Equal(t, 0, r.Count(KindWarning))

	r.Reset()

	_, ok := r.Last()
	assert.False(t, ok)
}

func TestRecorderWatcher(t *testing.T) {
	r := NewRecorder(0)

	var seen []string
	r.OnNotify(func(t Toast) { seen = append(seen, t.Title) })

	Warning(r, "Connection lost", "")
	assert.Equal(t, []string{"Connection lost"}, seen)
}

func TestMultiFansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockNotifier(ctrl)
	mock.EXPECT().Notify(gomock.Cond(func(t Toast) bool {
		return t.Kind == KindInfo && t.Action == "View"
	})).Times(1)

	r := NewRecorder(0)
	Actionable(Multi{r, nil, mock}, "New service request", "Room 101", "View")

	assert.Equal(t, 1, r.Count(KindInfo))
}

func TestLogNotifierWritesToast(t *testing.T) {
	var buf bytes.Buffer

	n := NewLogNotifier(lifecycle.Wrap(zerolog.New(&buf)))
	Error(n, "Failed to save", "Stream URL already exists")

	assert.Contains(t, buf.String(), "Failed to save")
	assert.Contains(t, buf.String(), "Stream URL already exists")
	assert.Contains(t, buf.String(), `"toast":"error"`)
	assert.Contains(t, buf.String(), `"level":"error"`)
}
