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

// Package realtime maintains the push channel from the backend to dashboards and devices.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
)

// Scope selects which events the backend routes to a connection.
type Scope string

const (
	ScopeClient Scope = "client"
	ScopeDevice Scope = "device"
)

const (
	defaultInitialBackoff = time.Second
	defaultMaxBackoff     = 30 * time.Second
	closeGrace            = time.Second
	pushPath              = "/ws"
)

var errBadScheme = errors.New("realtime: base URL must be http, https, ws or wss")

// Params identify the subscriber.
type Params struct {
	Scope   Scope
	HotelID int64
	ID      string
}

// Handler processes one message payload. It runs on the read loop, so it must not block.
type Handler func(ctx context.Context, payload json.RawMessage)

// Client is a push channel subscription that reconnects until closed.
type Client struct {
	url      string
	dialer   *websocket.Dialer
	logger   logger.Logger
	initial  time.Duration
	maxDelay time.Duration

	mu       sync.Mutex
	handlers map[string]Handler
	cancel   context.CancelFunc
	done     chan struct{}
	onState  func(connected bool)

	connected atomic.Bool
	connects  atomic.Int64
}

type Option func(*Client)

// WithBackoff overrides the reconnect delays.
func WithBackoff(initial, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.initial = initial
		c.maxDelay = maxDelay
	}
}

// WithDialer replaces websocket.DefaultDialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// OnConnectionChange registers fn, called whenever the channel goes up or down.
func OnConnectionChange(fn func(connected bool)) Option {
	return func(c *Client) { c.onState = fn }
}

// New prepares a client for the push endpoint of baseURL. Nothing is dialed until Start.
func New(baseURL string, params Params, log logger.Logger, opts ...Option) (*Client, error) {
	u, err := PushURL(baseURL, params)
	if err != nil {
		return nil, err
	}

	c := &Client{
		url:      u,
		dialer:   websocket.DefaultDialer,
		logger:   log,
		initial:  defaultInitialBackoff,
		maxDelay: defaultMaxBackoff,
		handlers: make(map[string]Handler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// PushURL builds the websocket URL for params from an http(s) or ws(s) base URL.
func PushURL(baseURL string, params Params) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("realtime: parse base URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errBadScheme
	}

	u.Path += pushPath

	q := url.Values{}
	if params.Scope != "" {
		q.Set("type", string(params.Scope))
	}

	if params.HotelID > 0 {
		q.Set("hotelId", strconv.FormatInt(params.HotelID, 10))
	}

	if params.ID != "" {
		q.Set("id", params.ID)
	}

	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Handle registers h for messages of msgType, replacing any earlier handler.
func (c *Client) Handle(msgType string, h Handler) {
	c.mu.Lock()
	c.handlers[msgType] = h
	c.mu.Unlock()
}

// Start opens the channel in the background. Calling Start on a running client is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		return
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	go c.run(ctx, c.done)
}

// Close stops reconnecting, closes the connection and waits for the read loop to exit.
// It is safe to call more than once and on a client that was never started.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	<-done

	return nil
}

// Connected reports whether a connection is currently open.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Connects counts successful dials since Start.
func (c *Client) Connects() int64 {
	return c.connects.Load()
}

func (c *Client) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initial
	bo.MaxInterval = c.maxDelay

	for {
		established, err := c.session(ctx)
		if ctx.Err() != nil {
			return
		}

		if established {
			bo.Reset()
		}

		wait := bo.NextBackOff()

		c.logger.Debug().Err(err).Dur("retry_in", wait).Msg("Push channel disconnected")

		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// session dials once and reads until the connection fails or ctx ends.
func (c *Client) session(ctx context.Context) (bool, error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return false, fmt.Errorf("dial push channel: %w", err)
	}

	c.connects.Add(1)
	c.setConnected(true)

	defer c.setConnected(false)

	c.logger.Info().Str("url", c.url).Msg("Push channel connected")

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(closeGrace))
			_ = conn.Close()
		case <-stop:
			_ = conn.Close()
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}

		c.dispatch(ctx, data)
	}
}

func (c *Client) dispatch(ctx context.Context, data []byte) {
	var msg models.PushMessage

	if err := json.Unmarshal(data, &msg); err != nil || msg.Type == "" {
		c.logger.Debug().Err(err).Int("bytes", len(data)).Msg("Ignoring malformed push message")
		return
	}

	c.mu.Lock()
	h := c.handlers[msg.Type]
	c.mu.Unlock()

	if h == nil {
		c.logger.Debug().Str("type", msg.Type).Msg("No handler for push message")
		return
	}

	h(ctx, msg.Payload)
}

func (c *Client) setConnected(up bool) {
	if c.connected.Swap(up) == up {
		return
	}

	c.mu.Lock()
	fn := c.onState
	c.mu.Unlock()

	if fn != nil {
		fn(up)
	}
}
