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

package cms

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/realtime"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

const ProcServiceRequestStatus = "guestServices.updateStatus"

type statusInput struct {
	ID     int64  `json:"id" validate:"required,gt=0"`
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// UpdateServiceRequestStatus moves a guest service request through its workflow.
func UpdateServiceRequestStatus(ctx context.Context, page *Page[models.ServiceRequest], id int64, status string) error {
	in := statusInput{ID: id, Status: status}

	if err := validateForm(page.deps.Validator, &in); err != nil {
		notify.Error(page.deps.Notifier, "Invalid status", err.Error())
		return err
	}

	if err := page.deps.Caller.Mutate(ctx, ProcServiceRequestStatus, in, nil); err != nil {
		notify.Error(page.deps.Notifier, "Failed to update request", rpc.UserMessage(err))
		return err
	}

	notify.Success(page.deps.Notifier, "Request updated", status)
	page.afterMutation(ctx)

	return nil
}

// WatchServiceRequests alerts staff about new guest requests pushed over ch and refreshes the
// request list. The refresh runs on the read loop with the client's context, so Close waits for it.
func WatchServiceRequests(ch *realtime.Client, page *Page[models.ServiceRequest]) {
	ch.Handle(models.PushNewServiceRequest, func(ctx context.Context, payload json.RawMessage) {
		var notice models.ServiceRequestNotice
		if err := json.Unmarshal(payload, &notice); err != nil {
			page.deps.Logger.Debug().Err(err).Msg("Ignoring malformed service request notice")
			return
		}

		notify.Actionable(page.deps.Notifier, "New service request",
			fmt.Sprintf("Room %s: %s", notice.RoomNumber, notice.RequestType), "View")

		if err := page.Refresh(ctx); err != nil {
			page.deps.Logger.Debug().Err(err).Msg("Service request refresh failed")
		}
	})
}
