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

//go:generate mockgen -destination=mock_pairing.go -package=pairing github.com/carverauto/hoteltv/pkg/pairing Backend,Executor

// Package pairing implements the launcher side of the device pairing and liveness protocol:
// requesting a pairing code, polling pairing status, sending heartbeats and executing queued
// remote commands.
package pairing

import (
	"context"

	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// Procedure names on the backend.
const (
	ProcRequestCode = "pairing.requestCode"
	ProcCheckStatus = "pairing.checkStatus"
	ProcHeartbeat   = "pairing.heartbeat"
	ProcGetCommands = "pairing.getCommands"
	ProcAckCommand  = "pairing.ackCommand"
)

// Backend is the pairing API of the CMS backend.
type Backend interface {
	RequestCode(ctx context.Context, req *models.PairingCodeRequest) (*models.PairingCode, error)
	CheckStatus(ctx context.Context, deviceID string) (*models.PairingStatus, error)
	Heartbeat(ctx context.Context, deviceID string) error
	GetCommands(ctx context.Context, deviceID string) ([]models.RemoteCommand, error)
	AckCommand(ctx context.Context, deviceID string, commandID int64) error
}

// DeviceIDSource hands out the stable device id.
type DeviceIDSource interface {
	DeviceID(ctx context.Context) string
}

// RPCBackend talks to the backend over the RPC client.
type RPCBackend struct {
	caller rpc.Caller
}

var _ Backend = (*RPCBackend)(nil)

func NewRPCBackend(caller rpc.Caller) *RPCBackend {
	return &RPCBackend{caller: caller}
}

func (b *RPCBackend) RequestCode(ctx context.Context, req *models.PairingCodeRequest) (*models.PairingCode, error) {
	var out models.PairingCode

	if err := b.caller.Mutate(ctx, ProcRequestCode, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (b *RPCBackend) CheckStatus(ctx context.Context, deviceID string) (*models.PairingStatus, error) {
	var out models.PairingStatus

	if err := b.caller.Query(ctx, ProcCheckStatus, models.DeviceRef{DeviceID: deviceID}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (b *RPCBackend) Heartbeat(ctx context.Context, deviceID string) error {
	return b.caller.Mutate(ctx, ProcHeartbeat, models.DeviceRef{DeviceID: deviceID}, nil)
}

func (b *RPCBackend) GetCommands(ctx context.Context, deviceID string) ([]models.RemoteCommand, error) {
	var out models.CommandList

	if err := b.caller.Query(ctx, ProcGetCommands, models.DeviceRef{DeviceID: deviceID}, &out); err != nil {
		return nil, err
	}

	return out.Commands, nil
}

func (b *RPCBackend) AckCommand(ctx context.Context, deviceID string, commandID int64) error {
	return b.caller.Mutate(ctx, ProcAckCommand, models.CommandAck{DeviceID: deviceID, CommandID: commandID}, nil)
}
