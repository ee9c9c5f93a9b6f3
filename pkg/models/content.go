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

type TVChannel struct {
	ID            int64   `json:"id"`
	HotelID       int64   `json:"hotelId"`
	Name          string  `json:"name" validate:"required"`
	NameEn        string  `json:"nameEn,omitempty"`
	StreamURL     string  `json:"streamUrl" validate:"required,url"`
	LogoURL       *string `json:"logoUrl,omitempty"`
	Category      string  `json:"category" validate:"required"`
	ChannelNumber int     `json:"channelNumber,omitempty" validate:"gte=0"`
	IsActive      bool    `json:"isActive"`
}

func (c TVChannel) Key() int64           { return c.ID }
func (c *TVChannel) SetHotelID(id int64) { c.HotelID = id }

type MenuItem struct {
	ID          int64   `json:"id"`
	HotelID     int64   `json:"hotelId"`
	Name        string  `json:"name" validate:"required"`
	NameEn      string  `json:"nameEn,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
	SortOrder   int     `json:"sortOrder,omitempty"`
}

func (m MenuItem) Key() int64           { return m.ID }
func (m *MenuItem) SetHotelID(id int64) { m.HotelID = id }

type BackgroundImage struct {
	ID       int64  `json:"id"`
	HotelID  int64  `json:"hotelId"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	IsActive bool   `json:"isActive"`
}

func (b BackgroundImage) Key() int64           { return b.ID }
func (b *BackgroundImage) SetHotelID(id int64) { b.HotelID = id }

type MediaAsset struct {
	ID         int64     `json:"id"`
	HotelID    int64     `json:"hotelId"`
	FileName   string    `json:"fileName" validate:"required"`
	URL        string    `json:"url" validate:"required,url"`
	MimeType   string    `json:"mimeType,omitempty"`
	SizeBytes  int64     `json:"size,omitempty" validate:"gte=0"`
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
}

func (m MediaAsset) Key() int64           { return m.ID }
func (m *MediaAsset) SetHotelID(id int64) { m.HotelID = id }

type TVApp struct {
	ID          int64   `json:"id"`
	HotelID     int64   `json:"hotelId"`
	Name        string  `json:"name" validate:"required"`
	PackageName string  `json:"packageName" validate:"required"`
	IconURL     *string `json:"iconUrl,omitempty"`
	IsEnabled   bool    `json:"isEnabled"`
	SortOrder   int     `json:"sortOrder,omitempty"`
}

func (a TVApp) Key() int64           { return a.ID }
func (a *TVApp) SetHotelID(id int64) { a.HotelID = id }

type LocalizationEntry struct {
	ID       int64  `json:"id"`
	HotelID  int64  `json:"hotelId"`
	TextKey  string `json:"key" validate:"required"`
	Language string `json:"language" validate:"required"`
	Value    string `json:"value" validate:"required"`
}

func (l LocalizationEntry) Key() int64           { return l.ID }
func (l *LocalizationEntry) SetHotelID(id int64) { l.HotelID = id }
