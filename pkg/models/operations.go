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

import "time"

// Device is the dashboard's view of a registered TV.
type Device struct {
	ID         int64      `json:"id"`
	HotelID    *int64     `json:"hotelId,omitempty"`
	DeviceID   string     `json:"deviceId" validate:"required"`
	DeviceName string     `json:"deviceName,omitempty"`
	RoomNumber *string    `json:"roomNumber,omitempty"`
	IsOnline   bool       `json:"isOnline"`
	IsPaired   bool       `json:"isPaired"`
	Volume     *int       `json:"volume,omitempty" validate:"omitempty,gte=0,lte=100"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

func (d Device) Key() int64 { return d.ID }

func (d *Device) SetHotelID(id int64) { d.HotelID = &id }

// ServiceRequest is a guest's request (housekeeping, room service, ...) raised from the TV.
type ServiceRequest struct {
	ID          int64     `json:"id"`
	HotelID     int64     `json:"hotelId"`
	RoomNumber  string    `json:"roomNumber" validate:"required"`
	RequestType string    `json:"requestType" validate:"required"`
	Details     string    `json:"details,omitempty"`
	Status      string    `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

func (s ServiceRequest) Key() int64           { return s.ID }
func (s *ServiceRequest) SetHotelID(id int64) { s.HotelID = id }

type WakeUpCall struct {
	ID          int64     `json:"id"`
	HotelID     int64     `json:"hotelId"`
	RoomNumber  string    `json:"roomNumber" validate:"required"`
	WakeUpTime  time.Time `json:"wakeUpTime" validate:"required"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	IsRecurring bool      `json:"isRecurring"`
}

func (w WakeUpCall) Key() int64           { return w.ID }
func (w *WakeUpCall) SetHotelID(id int64) { w.HotelID = id }

type Subscription struct {
	ID        int64      `json:"id"`
	HotelID   int64      `json:"hotelId" validate:"required,gt=0"`
	Plan      string     `json:"plan" validate:"required"`
	Status    string     `json:"status,omitempty"`
	StartsAt  time.Time  `json:"startsAt" validate:"required"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	MaxRooms  int        `json:"maxRooms,omitempty" validate:"gte=0"`
}

func (s Subscription) Key() int64           { return s.ID }
func (s *Subscription) SetHotelID(id int64) { s.HotelID = id }

// Role values accepted by the backend.
const (
	RoleSuperAdmin = "super_admin"
	RoleHotelAdmin = "hotel_admin"
	RoleStaff      = "staff"
)

type User struct {
	ID       int64  `json:"id"`
	HotelID  *int64 `json:"hotelId,omitempty"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required,oneof=super_admin hotel_admin staff"`
	Password string `json:"password,omitempty" sensitive:"true"`
}

func (u User) Key() int64           { return u.ID }
func (u *User) SetHotelID(id int64) { u.HotelID = &id }

// Setting is a single hotel configuration key (the "settings" namespace).
type Setting struct {
	ID      int64  `json:"id"`
	HotelID int64  `json:"hotelId"`
	Name    string `json:"key" validate:"required"`
	Value   string `json:"value"`
}

func (s Setting) Key() int64           { return s.ID }
func (s *Setting) SetHotelID(id int64) { s.HotelID = id }

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
