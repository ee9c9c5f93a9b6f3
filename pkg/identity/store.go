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

// Package identity owns the launcher's stable device identifier.
package identity

import (
	"context"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/hoteltv/pkg/logger"
)

// DefaultKey is the storage key holding the device id.
const DefaultKey = "hoteltv_device_id"

// ErrNotFound is returned by Storage.Load when the key has never been written.
var ErrNotFound = errors.New("identity: key not found")

// Storage persists small string values across restarts.
type Storage interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// Store hands out the device id, creating and persisting it on first use.
type Store struct {
	storage Storage
	key     string
	logger  logger.Logger
	now     func() time.Time

	once sync.Once
	id   string
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithNow overrides the time source used for the id prefix.
func WithNow(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store. A nil storage keeps the id in memory only.
func NewStore(storage Storage, log logger.Logger, opts ...StoreOption) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}

	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  log,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DeviceID returns the persisted id, generating and saving one on the first call.
// It never fails: storage errors are logged and a freshly generated id is used, in which
// case the device will have to be paired again after a restart.
func (s *Store) DeviceID(ctx context.Context) string {
	s.once.Do(func() {
		s.id = s.loadOrCreate(ctx)
	})

	return s.id
}

func (s *Store) loadOrCreate(ctx context.Context) string {
	stored, err := s.storage.Load(ctx, s.key)

	switch {
	case err == nil && stored != "":
		s.logger.Debug().Str("device_id", stored).Msg("Loaded device id")
		return stored
	case err != nil && !errors.Is(err, ErrNotFound):
		s.logger.Warn().Err(err).Msg("Device id storage unreadable, generating a new id")
	}

	id := NewDeviceID(s.now())

	if err := s.storage.Save(ctx, s.key, id); err != nil {
		s.logger.Warn().Err(err).Str("device_id", id).Msg("Failed to persist device id, re-pairing will be needed after restart")
	} else {
		s.logger.Info().Str("device_id", id).Msg("Generated new device id")
	}

	return id
}

// NewDeviceID builds an id from a base36 millisecond timestamp followed by a random base36
// suffix, upper-cased.
func NewDeviceID(now time.Time) string {
	prefix := strconv.FormatInt(now.UnixMilli(), 36)

	u := uuid.New()
	suffix := new(big.Int).SetBytes(u[:8]).Text(36)

	return strings.ToUpper(prefix + suffix)
}

var (
	defaultMu    sync.Mutex
	defaultStore *Store
)

// SetDefault installs the process-wide store. Call it once during startup.
func SetDefault(s *Store) {
	defaultMu.Lock()
	defaultStore = s
	defaultMu.Unlock()
}

// Default returns the process-wide store, creating an in-memory one if none was installed.
func Default() *Store {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultStore == nil {
		defaultStore = NewStore(nil, logger.NewTestLogger())
	}

	return defaultStore
}
