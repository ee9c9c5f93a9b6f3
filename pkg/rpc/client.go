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

// Package rpc is the client side of the CMS backend's procedure-call contract.
//
// Procedures are dotted names (pairing.checkStatus, tvChannels.create). Queries are sent as
// GET /api/trpc/<procedure>?input=<json>, mutations as POST /api/trpc/<procedure> with a JSON
// body. Responses wrap the value as {"result":{"data":...}} or carry
// {"error":{"message":...,"data":{"code":...,"httpStatus":...}}}.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
)

var (
	// ErrUnavailable wraps transport failures (connection refused, timeouts).
	ErrUnavailable = errors.New("backend unavailable")
	// ErrUnexpectedResponse indicates a body that is not a procedure envelope.
	ErrUnexpectedResponse = errors.New("unexpected backend response")
)

const (
	procedurePrefix = "/api/trpc/"
	requestIDHeader = "X-Request-ID"
)

// Caller is what the rest of the module depends on.
type Caller interface {
	Query(ctx context.Context, procedure string, input, out interface{}) error
	Mutate(ctx context.Context, procedure string, input, out interface{}) error
}

// Client calls backend procedures over HTTP.
type Client struct {
	http   *resty.Client
	logger logger.Logger

	mu    sync.RWMutex
	token string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, e.g. for httptest servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		timeout := c.http.GetClient().Timeout
		c.http = resty.NewWithClient(hc).
			SetBaseURL(c.http.BaseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json")
	}
}

// WithRetries enables resty's retry for transport errors. Off by default: polling loops
// retry by running again on their next tick.
func WithRetries(count int) Option {
	return func(c *Client) {
		c.http.SetRetryCount(count)
	}
}

var _ Caller = (*Client)(nil)

// NewClient builds a client for cfg.BaseURL.
func NewClient(cfg models.BackendConfig, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(cfg.Timeout.Or(models.DefaultRequestTimeout)).
			SetHeader("Accept", "application/json"),
		logger: log,
		token:  cfg.Token,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken sets the bearer token sent with every later call; "" clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// Query performs a read procedure and decodes its data into out (which may be nil).
func (c *Client) Query(ctx context.Context, procedure string, input, out interface{}) error {
	req := c.newRequest(ctx)

	if input != nil {
		raw, err := json.Marshal(input)
		if err != nil {
			return fmt.Errorf("encode %s input: %w", procedure, err)
		}

		req.SetQueryParam("input", string(raw))
	}

	resp, err := req.Get(procedurePrefix + procedure)

	return c.decode(procedure, resp, err, out)
}

// Mutate performs a write procedure and decodes its data into out (which may be nil).
func (c *Client) Mutate(ctx context.Context, procedure string, input, out interface{}) error {
	req := c.newRequest(ctx).SetHeader("Content-Type", "application/json")

	if input != nil {
		req.SetBody(input)
	} else {
		req.SetBody(struct{}{})
	}

	resp, err := req.Post(procedurePrefix + procedure)

	return c.decode(procedure, resp, err, out)
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString())

	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}

	return req
}

type envelope struct {
	Result *struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
	Error *wireError `json:"error"`
}

type wireError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    struct {
		Code       string `json:"code"`
		HTTPStatus int    `json:"httpStatus"`
	} `json:"data"`
}

func (c *Client) decode(procedure string, resp *resty.Response, callErr error, out interface{}) error {
	if callErr != nil {
		if ctxErr := contextError(callErr); ctxErr != nil {
			return ctxErr
		}

		return fmt.Errorf("%w: %s: %w", ErrUnavailable, procedure, callErr)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%w: %s returned HTTP %d", ErrUnexpectedResponse, procedure, resp.StatusCode())
	}

	if env.Error != nil {
		status := env.Error.Data.HTTPStatus
		if status == 0 {
			status = resp.StatusCode()
		}

		rpcErr := &Error{
			Procedure:  procedure,
			Code:       env.Error.Data.Code,
			HTTPStatus: status,
			Message:    env.Error.Message,
		}

		c.logger.Debug().
			Str("procedure", procedure).
			Str("code", rpcErr.Code).
			Int("http_status", status).
			Msg(rpcErr.Message)

		return rpcErr
	}

	if resp.IsError() || env.Result == nil {
		return fmt.Errorf("%w: %s returned HTTP %d", ErrUnexpectedResponse, procedure, resp.StatusCode())
	}

	if out == nil || len(env.Result.Data) == 0 || string(env.Result.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Result.Data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrUnexpectedResponse, procedure, err)
	}

	return nil
}

func contextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return context.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrUnavailable, context.DeadlineExceeded)
	default:
		return nil
	}
}
