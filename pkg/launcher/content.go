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

package launcher

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/hoteltv/pkg/cms"
	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// Hotel-scoped procedures the launcher reads besides the namespace lists.
const (
	ProcBranding  = "branding.getByHotel"
	ProcGuestRoom = "guestInfo.getByRoom"
	ProcWeather   = "weather.getCurrent"
)

// Content is everything the welcome screen shows for one room.
type Content struct {
	Hotel       models.Hotel
	Branding    *models.Branding
	Channels    []models.TVChannel
	Menu        []models.MenuItem
	Apps        []models.TVApp
	Backgrounds []models.BackgroundImage
	Guest       *models.GuestInfo
	Weather     *models.Weather
	WakeUpCalls []models.WakeUpCall
	LoadedAt    time.Time
}

// ContentSource loads hotel content. Callers must only invoke it for a paired device.
type ContentSource interface {
	Load(ctx context.Context, hotelID int64, room string) (*Content, error)
}

// RPCContent reads content from the backend, fetching the pieces concurrently.
type RPCContent struct {
	caller rpc.Caller
	logger logger.Logger
}

var _ ContentSource = (*RPCContent)(nil)

func NewRPCContent(caller rpc.Caller, log logger.Logger) *RPCContent {
	return &RPCContent{caller: caller, logger: log}
}

type hotelRoomInput struct {
	HotelID    int64  `json:"hotelId"`
	RoomNumber string `json:"roomNumber"`
}

type hotelInput struct {
	HotelID int64 `json:"hotelId"`
}

type cityInput struct {
	City string `json:"city"`
}

// Load fails only when the hotel itself cannot be read. Every other piece is optional:
// its failure is logged and the piece is left empty.
func (c *RPCContent) Load(ctx context.Context, hotelID int64, room string) (*Content, error) {
	if hotelID <= 0 {
		return nil, fmt.Errorf("%w: hotel id %d", errNotPaired, hotelID)
	}

	out := &Content{}
	scope := cms.Scope{HotelID: hotelID}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hotel, err := cms.NewResource[models.Hotel](c.caller, cms.Hotels).Get(gctx, hotelID)
		if err != nil {
			return fmt.Errorf("load hotel %d: %w", hotelID, err)
		}

		out.Hotel = hotel

		return nil
	})

	g.Go(func() error {
		var b models.Branding
		if c.optional(gctx, "branding", c.caller.Query(gctx, ProcBranding, hotelInput{HotelID: hotelID}, &b)) {
			out.Branding = &b
		}

		return nil
	})

	g.Go(func() error {
		items, err := cms.NewResource[models.TVChannel](c.caller, cms.TVChannels).List(gctx, scope)
		if c.optional(gctx, "channels", err) {
			out.Channels = activeChannels(items)
		}

		return nil
	})

	g.Go(func() error {
		items, err := cms.NewResource[models.MenuItem](c.caller, cms.MenuItems).List(gctx, scope)
		if c.optional(gctx, "menu", err) {
			out.Menu = items
		}

		return nil
	})

	g.Go(func() error {
		items, err := cms.NewResource[models.TVApp](c.caller, cms.TVApps).List(gctx, scope)
		if c.optional(gctx, "apps", err) {
			out.Apps = items
		}

		return nil
	})

	g.Go(func() error {
		items, err := cms.NewResource[models.BackgroundImage](c.caller, cms.BackgroundImages).List(gctx, scope)
		if c.optional(gctx, "backgrounds", err) {
			out.Backgrounds = items
		}

		return nil
	})

	g.Go(func() error {
		if room == "" {
			return nil
		}

		var guest models.GuestInfo
		err := c.caller.Query(gctx, ProcGuestRoom, hotelRoomInput{HotelID: hotelID, RoomNumber: room}, &guest)

		if rpc.IsNotFound(err) {
			return nil
		}

		if c.optional(gctx, "guest", err) && guest.GuestName != "" {
			out.Guest = &guest
		}

		return nil
	})

	g.Go(func() error {
		items, err := cms.NewResource[models.WakeUpCall](c.caller, cms.WakeUpCalls).List(gctx, scope)
		if c.optional(gctx, "wake-up calls", err) {
			out.WakeUpCalls = roomCalls(items, room)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// weather depends on the hotel record
	if out.Hotel.WeatherEnabled() {
		var w models.Weather
		if c.optional(ctx, "weather", c.caller.Query(ctx, ProcWeather, cityInput{City: *out.Hotel.WeatherCity}, &w)) {
			out.Weather = &w
		}
	}

	out.LoadedAt = time.Now()

	return out, nil
}

func (c *RPCContent) optional(ctx context.Context, piece string, err error) bool {
	if err == nil {
		return true
	}

	if ctx.Err() == nil {
		c.logger.Warn().Err(err).Str("piece", piece).Msg("Optional content failed to load")
	}

	return false
}

func activeChannels(items []models.TVChannel) []models.TVChannel {
	out := make([]models.TVChannel, 0, len(items))

	for _, ch := range items {
		if ch.IsActive {
			out = append(out, ch)
		}
	}

	return out
}

func roomCalls(items []models.WakeUpCall, room string) []models.WakeUpCall {
	var out []models.WakeUpCall

	for _, call := range items {
		if call.RoomNumber == room {
			out = append(out, call)
		}
	}

	return out
}
