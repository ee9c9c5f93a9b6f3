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

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/carverauto/hoteltv/pkg/logger"
)

// MemoryStorage keeps values for the lifetime of the process.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}

	return v, nil
}

func (m *MemoryStorage) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()

	return nil
}

// FileStorage keeps a flat JSON object on disk, rewritten atomically on each save.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}

	return values, nil
}

func (f *FileStorage) Load(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}

	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}

	return v, nil
}

func (f *FileStorage) Save(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		// a corrupt file is replaced rather than blocking the save
		values = make(map[string]string)
	}

	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	return os.Rename(tmp, f.path)
}

var boltBucket = []byte("launcher")

// BoltStorage keeps values in a bbolt database.
type BoltStorage struct {
	db *bolt.DB
}

// OpenBoltStorage opens (or creates) the database at path.
func OpenBoltStorage(path string) (*BoltStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStorage{db: db}, nil
}

func (b *BoltStorage) Load(_ context.Context, key string) (string, error) {
	var value string

	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}

		value = string(v)

		return nil
	})

	return value, err
}

func (b *BoltStorage) Save(_ context.Context, key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	})
}

func (b *BoltStorage) Close() error {
	return b.db.Close()
}

// OpenStorage builds the backend named by kind ("bolt", "file" or "memory") under stateDir.
// An empty kind selects bolt. The returned close func is never nil.
func OpenStorage(kind, stateDir string) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch kind {
	case "memory":
		return NewMemoryStorage(), noop, nil
	case "file":
		return NewFileStorage(filepath.Join(stateDir, "launcher.json")), noop, nil
	case "", "bolt":
		b, err := OpenBoltStorage(filepath.Join(stateDir, "launcher.db"))
		if err != nil {
			return nil, noop, err
		}

		return b, b.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", errUnknownStorage, kind)
	}
}

// OpenStorageOrMemory is OpenStorage that never fails: when the configured storage cannot be
// opened it logs a warning and keeps the id in memory, so the device pairs again after a restart.
func OpenStorageOrMemory(kind, stateDir string, log logger.Logger) (Storage, func() error) {
	s, closeFn, err := OpenStorage(kind, stateDir)
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("state_dir", stateDir).
			Msg("Identity storage unavailable, device id will not survive a restart")

		return NewMemoryStorage(), func() error { return nil }
	}

	return s, closeFn
}

var errUnknownStorage = errors.New("identity: unknown storage kind")
