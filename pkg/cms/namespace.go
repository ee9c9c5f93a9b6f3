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

// Package cms implements the staff dashboard pages: scoped list and mutate operations over the
// backend's resource namespaces, with form validation, toasts and cache invalidation.
package cms

import (
	"strconv"
)

// Namespace is a backend resource namespace such as "tvChannels".
type Namespace string

const (
	Hotels           Namespace = "hotels"
	Rooms            Namespace = "rooms"
	GuestInfo        Namespace = "guestInfo"
	TVChannels       Namespace = "tvChannels"
	MenuItems        Namespace = "menuItems"
	Devices          Namespace = "devices"
	BackgroundImages Namespace = "backgroundImages"
	MediaUpload      Namespace = "mediaUpload"
	Users            Namespace = "users"
	Settings         Namespace = "settings"
	Subscriptions    Namespace = "subscriptions"
	TVApps           Namespace = "tvApps"
	GuestServices    Namespace = "guestServices"
	WakeUpCalls      Namespace = "wakeUpCalls"
	Localization     Namespace = "localization"
)

// Operations every namespace exposes.
const (
	OpList    = "list"
	OpGetByID = "getById"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
)

// Procedure returns the backend procedure name for op, e.g. "tvChannels.create".
func (n Namespace) Procedure(op string) string {
	return string(n) + "." + op
}

// related lists the namespaces whose cached lists go stale when n is mutated.
var related = map[Namespace][]Namespace{
	Hotels:        {Rooms, Devices, Subscriptions, Settings},
	Rooms:         {Devices, GuestInfo},
	Devices:       {Rooms},
	GuestInfo:     {Rooms},
	GuestServices: {Rooms},
	WakeUpCalls:   {Rooms},
	MediaUpload:   {BackgroundImages},
}

// Related returns the namespaces invalidated together with n.
func Related(n Namespace) []Namespace {
	return append([]Namespace(nil), related[n]...)
}

// AllNamespaces lists every dashboard page namespace in menu order.
func AllNamespaces() []Namespace {
	return []Namespace{
		Hotels, Rooms, GuestInfo, TVChannels, MenuItems, Devices, BackgroundImages, MediaUpload,
		Users, Settings, Subscriptions, TVApps, GuestServices, WakeUpCalls, Localization,
	}
}

// Scope restricts list calls to one hotel. A zero HotelID lists globally, which only
// super admins are allowed to do.
type Scope struct {
	HotelID    int64
	SuperAdmin bool
}

func (s Scope) key() string {
	if s.HotelID <= 0 {
		return "global"
	}

	return strconv.FormatInt(s.HotelID, 10)
}
