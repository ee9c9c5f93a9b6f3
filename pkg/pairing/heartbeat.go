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
	"sync/atomic"

	"github.com/carverauto/hoteltv/pkg/logger"
)

// Heartbeat tells the backend the device is alive. Failures are only logged at debug level.
type Heartbeat struct {
	backend Backend
	ids     DeviceIDSource
	logger  logger.Logger

	sent   atomic.Int64
	failed atomic.Int64
}

func NewHeartbeat(backend Backend, ids DeviceIDSource, log logger.Logger) *Heartbeat {
	return &Heartbeat{backend: backend, ids: ids, logger: log}
}

// Beat sends one heartbeat. It never reports an error.
func (h *Heartbeat) Beat(ctx context.Context) {
	h.sent.Add(1)

	if err := h.backend.Heartbeat(ctx, h.ids.DeviceID(ctx)); err != nil {
		h.failed.Add(1)
		h.logger.Debug().Err(err).Msg("Heartbeat failed")
	}
}

// Stats returns how many heartbeats were sent and how many of them failed.
func (h *Heartbeat) Stats() (sent, failed int64) {
	return h.sent.Load(), h.failed.Load()
}
