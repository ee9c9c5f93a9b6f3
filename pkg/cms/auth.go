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

	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

const ProcLogin = "auth.login"

// TokenHolder keeps the session token attached to later calls.
type TokenHolder interface {
	SetToken(token string)
}

// Login authenticates staff and stores the session token on tokens.
func Login(ctx context.Context, deps Deps, tokens TokenHolder, req models.LoginRequest) (*models.Session, error) {
	deps = deps.withDefaults()

	if err := validateForm(deps.Validator, &req); err != nil {
		notify.Error(deps.Notifier, "Please enter username and password", err.Error())
		return nil, err
	}

	var session models.Session
	if err := deps.Caller.Mutate(ctx, ProcLogin, req, &session); err != nil {
		notify.Error(deps.Notifier, "Login failed", rpc.UserMessage(err))
		return nil, err
	}

	tokens.SetToken(session.Token)
	deps.Logger.Info().Str("user", session.User.Username).Str("role", session.User.Role).Msg("Logged in")

	return &session, nil
}
