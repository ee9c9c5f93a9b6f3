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

import "sync"

// Cache holds fetched lists per namespace and scope until a mutation invalidates them.
type Cache struct {
	mu      sync.Mutex
	entries map[Namespace]map[string]interface{}
	hits    int
	misses  int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Namespace]map[string]interface{})}
}

func (c *Cache) get(ns Namespace, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[ns][key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}

	return v, ok
}

func (c *Cache) put(ns Namespace, key string, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[ns] == nil {
		c.entries[ns] = make(map[string]interface{})
	}

	c.entries[ns][key] = v
}

// Cached reports whether any list of ns is cached.
func (c *Cache) Cached(ns Namespace) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries[ns]) > 0
}

// Invalidate drops ns and its related namespaces and returns what was dropped.
func (c *Cache) Invalidate(ns Namespace) []Namespace {
	dropped := append([]Namespace{ns}, Related(ns)...)

	c.mu.Lock()
	for _, n := range dropped {
		delete(c.entries, n)
	}
	c.mu.Unlock()

	return dropped
}

// Stats returns cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits, c.misses
}

func (c *Cache) drop(ns Namespace, key string) {
	c.mu.Lock()
	delete(c.entries[ns], key)
	c.mu.Unlock()
}
