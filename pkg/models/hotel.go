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

// Record is implemented by every CMS entity; Key is the server-generated id (0 before create).
type Record interface {
	Key() int64
}

// HotelScoped entities belong to a single hotel and get the page's hotel id on create.
type HotelScoped interface {
	SetHotelID(id int64)
}

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	NameEn      string    `json:"nameEn,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty" validate:"omitempty,email"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	WeatherCity *string   `json:"weatherCity,omitempty"`
	ShowWeather *bool     `json:"showWeather,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

func (h Hotel) Key() int64 { return h.ID }

// WeatherEnabled is true only when the hotel opted in and named a city.
func (h *Hotel) WeatherEnabled() bool {
	return h.ShowWeather != nil && *h.ShowWeather && h.WeatherCity != nil && *h.WeatherCity != ""
}

type Room struct {
	ID         int64  `json:"id"`
	HotelID    int64  `json:"hotelId" validate:"required,gt=0"`
	RoomNumber string `json:"roomNumber" validate:"required"`
	RoomType   string `json:"roomType,omitempty"`
	Floor      *int   `json:"floor,omitempty"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
}

func (r Room) Key() int64           { return r.ID }
func (r *Room) SetHotelID(id int64) { r.HotelID = id }

type GuestInfo struct {
	ID           int64      `json:"id"`
	HotelID      int64      `json:"hotelId" validate:"required,gt=0"`
	RoomNumber   string     `json:"roomNumber" validate:"required"`
	GuestName    string     `json:"guestName" validate:"required"`
	Language     string     `json:"language,omitempty" validate:"omitempty,oneof=th en zh ja ko"`
	WelcomeText  *string    `json:"welcomeMessage,omitempty"`
	CheckInDate  *time.Time `json:"checkInDate,omitempty"`
	CheckOutDate *time.Time `json:"checkOutDate,omitempty"`
}

func (g GuestInfo) Key() int64           { return g.ID }
func (g *GuestInfo) SetHotelID(id int64) { g.HotelID = id }

// Branding is the per-hotel look of the launcher.
type Branding struct {
	HotelID         int64   `json:"hotelId"`
	PrimaryColor    string  `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor  string  `json:"secondaryColor,omitempty" validate:"omitempty,hexcolor"`
	LogoURL         *string `json:"logoUrl,omitempty"`
	BackgroundURL   *string `json:"backgroundUrl,omitempty"`
	WelcomeTitle    string  `json:"welcomeTitle,omitempty"`
	WelcomeSubtitle string  `json:"welcomeSubtitle,omitempty"`
}

type Weather struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon,omitempty"`
}
