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

package models

import "encoding/json"

// Push message types.
const (
	PushNewServiceRequest = "new_service_request"
	PushCommandPending    = "command_pending"
	PushPairingChanged    = "pairing_changed"
)

// PushMessage is the envelope of every websocket message.
type PushMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ServiceRequestNotice struct {
	RequestType string `json:"requestType"`
	RoomNumber  string `json:"roomNumber"`
}
