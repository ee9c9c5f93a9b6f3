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

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
)

// Executor carries out a remote command on the device.
type Executor interface {
	Execute(ctx context.Context, cmd models.RemoteCommand) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, cmd models.RemoteCommand) error

func (f ExecutorFunc) Execute(ctx context.Context, cmd models.RemoteCommand) error {
	return f(ctx, cmd)
}

// CommandPoller fetches queued commands and executes at most one per poll.
type CommandPoller struct {
	backend  Backend
	ids      DeviceIDSource
	executor Executor
	logger   logger.Logger

	mu sync.Mutex
	// executed but not yet acknowledged
	unacked map[int64]struct{}
}

func NewCommandPoller(backend Backend, ids DeviceIDSource, executor Executor, log logger.Logger) *CommandPoller {
	return &CommandPoller{
		backend:  backend,
		ids:      ids,
		executor: executor,
		logger:   log,
		unacked:  make(map[int64]struct{}),
	}
}

// Poll fetches the queue and handles its head. It returns the command that was executed, if any.
// A command whose acknowledgement failed is not executed again; only the ack is retried.
// Commands without an id cannot be acknowledged and run on every poll that returns them.
func (c *CommandPoller) Poll(ctx context.Context) *models.RemoteCommand {
	deviceID := c.ids.DeviceID(ctx)

	cmds, err := c.backend.GetCommands(ctx, deviceID)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Debug().Err(err).Msg("Command poll failed")
		}

		return nil
	}

	c.forgetMissing(cmds)

	if len(cmds) == 0 {
		return nil
	}

	cmd := cmds[0]

	if cmd.ID != 0 && c.isUnacked(cmd.ID) {
		c.ack(ctx, deviceID, cmd)
		return nil
	}

	if !cmd.Command.IsKnown() {
		c.logger.Warn().Int64("command_id", cmd.ID).Str("command", string(cmd.Command)).Msg("Skipping unknown remote command")
		c.ack(ctx, deviceID, cmd)

		return nil
	}

	c.logger.Info().Int64("command_id", cmd.ID).Str("command", string(cmd.Command)).Msg("Executing remote command")

	if err := c.executor.Execute(ctx, cmd); err != nil {
		c.logger.Warn().Err(err).Int64("command_id", cmd.ID).Str("command", string(cmd.Command)).Msg("Remote command failed")
	}

	c.ack(ctx, deviceID, cmd)

	return &cmd
}

func (c *CommandPoller) ack(ctx context.Context, deviceID string, cmd models.RemoteCommand) {
	if cmd.ID == 0 {
		return
	}

	if err := c.backend.AckCommand(ctx, deviceID, cmd.ID); err != nil {
		c.logger.Debug().Err(err).Int64("command_id", cmd.ID).Msg("Command ack failed, will retry")

		c.mu.Lock()
		c.unacked[cmd.ID] = struct{}{}
		c.mu.Unlock()

		return
	}

	c.mu.Lock()
	delete(c.unacked, cmd.ID)
	c.mu.Unlock()
}

func (c *CommandPoller) isUnacked(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.unacked[id]

	return ok
}

// forgetMissing drops remembered ids the backend no longer queues.
func (c *CommandPoller) forgetMissing(cmds []models.RemoteCommand) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.unacked) == 0 {
		return
	}

	queued := make(map[int64]struct{}, len(cmds))
	for _, cmd := range cmds {
		queued[cmd.ID] = struct{}{}
	}

	for id := range c.unacked {
		if _, ok := queued[id]; !ok {
			delete(c.unacked, id)
		}
	}
}
