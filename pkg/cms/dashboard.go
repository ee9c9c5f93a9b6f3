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

import "github.com/carverauto/hoteltv/pkg/models"

// Dashboard is the set of staff pages for one scope, sharing a cache.
type Dashboard struct {
	Hotels           *Page[models.Hotel]
	Rooms            *Page[models.Room]
	GuestInfo        *Page[models.GuestInfo]
	TVChannels       *Page[models.TVChannel]
	MenuItems        *Page[models.MenuItem]
	Devices          *Page[models.Device]
	BackgroundImages *Page[models.BackgroundImage]
	Media            *Page[models.MediaAsset]
	Users            *Page[models.User]
	Settings         *Page[models.Setting]
	Subscriptions    *Page[models.Subscription]
	TVApps           *Page[models.TVApp]
	GuestServices    *Page[models.ServiceRequest]
	WakeUpCalls      *Page[models.WakeUpCall]
	Localization     *Page[models.LocalizationEntry]

	DeviceControl *DeviceControl

	deps  Deps
	pages map[Namespace]Handle
}

func NewDashboard(deps Deps) *Dashboard {
	deps = deps.withDefaults()

	d := &Dashboard{
		Hotels: NewPage(deps, Hotels, "Hotel", func() models.Hotel {
			return models.Hotel{IsActive: true}
		}),
		Rooms: NewPage(deps, Rooms, "Room", func() models.Room {
			return models.Room{Status: "available"}
		}),
		GuestInfo: NewPage(deps, GuestInfo, "Guest", func() models.GuestInfo {
			return models.GuestInfo{Language: "th"}
		}),
		TVChannels: NewPage(deps, TVChannels, "Channel", func() models.TVChannel {
			return models.TVChannel{IsActive: true}
		}),
		MenuItems: NewPage(deps, MenuItems, "Menu item", func() models.MenuItem {
			return models.MenuItem{IsAvailable: true}
		}),
		Devices: NewPage[models.Device](deps, Devices, "Device", nil),
		BackgroundImages: NewPage(deps, BackgroundImages, "Background", func() models.BackgroundImage {
			return models.BackgroundImage{IsActive: true}
		}),
		Media:         NewPage[models.MediaAsset](deps, MediaUpload, "Media file", nil),
		Users:         NewPage(deps, Users, "User", func() models.User { return models.User{Role: models.RoleStaff} }),
		Settings:      NewPage[models.Setting](deps, Settings, "Setting", nil),
		Subscriptions: NewPage[models.Subscription](deps, Subscriptions, "Subscription", nil),
		TVApps: NewPage(deps, TVApps, "App", func() models.TVApp {
			return models.TVApp{IsEnabled: true}
		}),
		GuestServices: NewPage(deps, GuestServices, "Service request", func() models.ServiceRequest {
			return models.ServiceRequest{Status: "pending"}
		}),
		WakeUpCalls: NewPage(deps, WakeUpCalls, "Wake-up call", func() models.WakeUpCall {
			return models.WakeUpCall{Status: "pending"}
		}),
		Localization: NewPage[models.LocalizationEntry](deps, Localization, "Translation", nil),

		DeviceControl: NewDeviceControl(deps),
		deps:          deps,
	}

	d.pages = map[Namespace]Handle{
		Hotels:           d.Hotels,
		Rooms:            d.Rooms,
		GuestInfo:        d.GuestInfo,
		TVChannels:       d.TVChannels,
		MenuItems:        d.MenuItems,
		Devices:          d.Devices,
		BackgroundImages: d.BackgroundImages,
		MediaUpload:      d.Media,
		Users:            d.Users,
		Settings:         d.Settings,
		Subscriptions:    d.Subscriptions,
		TVApps:           d.TVApps,
		GuestServices:    d.GuestServices,
		WakeUpCalls:      d.WakeUpCalls,
		Localization:     d.Localization,
	}

	return d
}

// Page looks up a page by namespace name.
func (d *Dashboard) Page(ns Namespace) (Handle, bool) {
	h, ok := d.pages[ns]
	return h, ok
}

// Cache returns the cache shared by all pages.
func (d *Dashboard) Cache() *Cache {
	return d.deps.Cache
}
