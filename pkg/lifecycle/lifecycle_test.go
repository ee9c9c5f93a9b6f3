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

package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hoteltv/pkg/logger"
)

func TestCreateComponentLogger(t *testing.T) {
	l, err := CreateComponentLogger("launcher", &logger.Config{Level: "warn", Output: "discard"})
	require.NoError(t, err)

	l.SetDebug(true)
	impl, ok := l.(*LoggerImpl)
	require.True(t, ok)
	assert.Equal(t, zerolog.DebugLevel, impl.logger.GetLevel())
}

func TestCreateLoggerRejectsBadLevel(t *testing.T) {
	_, err := CreateLogger(&logger.Config{Level: "nope", Output: "discard"})
	require.Error(t, err)
}

type fakeService struct {
	started, stopped bool
}

func (f *fakeService) Start(context.Context) error { f.started = true; return nil }
func (f *fakeService) Stop() error                 { f.stopped = true; return nil }

func TestRunUntilSignalStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	svc := &fakeService{}
	require.NoError(t, RunUntilSignal(ctx, svc, logger.NewTestLogger()))

	assert.True(t, svc.started)
	assert.True(t, svc.stopped)
}
