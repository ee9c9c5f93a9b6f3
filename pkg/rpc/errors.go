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

package rpc

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the backend for one procedure call.
type Error struct {
	Procedure  string
	Code       string
	HTTPStatus int
	Message    string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", e.Procedure, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Procedure, e.Message, e.Code)
}

// IsNotFound reports whether err is a backend NOT_FOUND.
func IsNotFound(err error) bool {
	var rpcErr *Error

	return errors.As(err, &rpcErr) && (rpcErr.Code == "NOT_FOUND" || rpcErr.HTTPStatus == http.StatusNotFound)
}

// IsUnauthorized reports whether the session is missing or expired.
func IsUnauthorized(err error) bool {
	var rpcErr *Error

	return errors.As(err, &rpcErr) && (rpcErr.Code == "UNAUTHORIZED" || rpcErr.HTTPStatus == http.StatusUnauthorized)
}

// UserMessage is the text shown in an error toast: the server message when there is one.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) && rpcErr.Message != "" {
		return rpcErr.Message
	}

	if errors.Is(err, ErrUnavailable) {
		return "Cannot reach the server. Check the network connection and try again."
	}

	return err.Error()
}
