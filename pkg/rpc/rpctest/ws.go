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

package rpctest

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &wsConn{conn: conn, params: r.URL.Query()}

	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.dials = append(s.dials, r.URL.Query())
	s.mu.Unlock()

	// drain client frames so close handshakes are observed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.remove(c)
				_ = conn.Close()

				return
			}
		}
	}()
}

func (s *Server) remove(c *wsConn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.conns {
		if existing == c {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return
		}
	}
}

// WSURL is the ws:// base URL of the push channel.
func (s *Server) WSURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

// Push sends a raw text frame to every open push connection and returns how many got it.
func (s *Server) Push(message string) int {
	s.mu.Lock()
	conns := append([]*wsConn(nil), s.conns...)
	s.mu.Unlock()

	sent := 0

	for _, c := range conns {
		c.mu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, []byte(message))
		c.mu.Unlock()

		if err == nil {
			sent++
		}
	}

	return sent
}

// OpenConnections counts currently connected push clients.
func (s *Server) OpenConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.conns)
}

// Dials returns the query parameters of every push connection ever made.
func (s *Server) Dials() []map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string][]string, 0, len(s.dials))
	for _, d := range s.dials {
		out = append(out, d)
	}

	return out
}

// DropConnections closes every push connection abruptly, simulating a network blip.
func (s *Server) DropConnections() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.conn.Close()
	}
}
