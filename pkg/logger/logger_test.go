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

package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	config := &Config{
		Level:  "debug",
		Debug:  true,
		Output: "discard",
	}

	require.NoError(t, Init(config))

	logger := GetLogger()
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(&Config{Level: "loud", Output: "discard"})
	require.Error(t, err)
}

func TestSetDebug(t *testing.T) {
	SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(&Config{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel(&Config{Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)

	level, err = ParseLevel(&Config{Level: "error", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_OUTPUT", "stderr")
	t.Setenv("DEBUG", "yes")

	config := DefaultConfig()

	assert.Equal(t, "info", config.Level)
	assert.Equal(t, "stderr", config.Output)
	assert.True(t, config.Debug)
}

func TestNewTestLoggerDiscards(t *testing.T) {
	l := NewTestLogger()
	l.Info().Msg("nothing")
	l.SetDebug(true)

	componentLogger := l.WithComponent("test-component")
	assert.Equal(t, zerolog.Disabled, componentLogger.GetLevel())
}
