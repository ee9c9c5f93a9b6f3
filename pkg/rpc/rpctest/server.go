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

// Package rpctest is an in-process fake of the CMS backend: procedure handlers plus the
// /ws push channel, served by httptest.
package rpctest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Handler answers one procedure call. Returning an *Err produces an error envelope.
type Handler func(input json.RawMessage) (interface{}, error)

// Err is an error the fake backend reports with a status and message.
type Err struct {
	Status  int
	Code    string
	Message string
}

func (e *Err) Error() string { return e.Message }

// Call is one recorded procedure invocation.
type Call struct {
	Procedure string
	Method    string
	Input     json.RawMessage
	Auth      string
}

// Server is the fake backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call
	conns    []*wsConn
	dials    []url.Values
	upgrader websocket.Upgrader
}

type wsConn struct {
	conn   *websocket.Conn
	params url.Values
	mu     sync.Mutex
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{handlers: make(map[string]Handler)}

	router := mux.NewRouter()
	router.HandleFunc("/api/trpc/{procedure}", s.serveProcedure).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/ws", s.serveWS)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)

	return s
}

// Close drops push connections and stops the server.
func (s *Server) Close() {
	s.DropConnections()
	s.Server.Close()
}

// Handle registers h for procedure, replacing any earlier handler.
func (s *Server) Handle(procedure string, h Handler) {
	s.mu.Lock()
	s.handlers[procedure] = h
	s.mu.Unlock()
}

// Respond registers a handler that always returns value.
func (s *Server) Respond(procedure string, value interface{}) {
	s.Handle(procedure, func(json.RawMessage) (interface{}, error) { return value, nil })
}

// Fail registers a handler that always fails with status and message.
func (s *Server) Fail(procedure string, status int, message string) {
	s.Handle(procedure, func(json.RawMessage) (interface{}, error) {
		return nil, &Err{Status: status, Message: message}
	})
}

// Calls returns the recorded calls to procedure, or all calls when procedure is "".
func (s *Server) Calls(procedure string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Call

	for _, c := range s.calls {
		if procedure == "" || c.Procedure == procedure {
			out = append(out, c)
		}
	}

	return out
}

// CallCount is len(Calls(procedure)).
func (s *Server) CallCount(procedure string) int {
	return len(s.Calls(procedure))
}

// CallsWithPrefix counts calls whose procedure starts with prefix, e.g. "tvChannels.".
func (s *Server) CallsWithPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for _, c := range s.calls {
		if strings.HasPrefix(c.Procedure, prefix) {
			n++
		}
	}

	return n
}

func (s *Server) serveProcedure(w http.ResponseWriter, r *http.Request) {
	procedure := mux.Vars(r)["procedure"]

	var input json.RawMessage

	if r.Method == http.MethodGet {
		if raw := r.URL.Query().Get("input"); raw != "" {
			input = json.RawMessage(raw)
		}
	} else {
		body, _ := io.ReadAll(r.Body)
		input = body
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Procedure: procedure,
		Method:    r.Method,
		Input:     input,
		Auth:      r.Header.Get("Authorization"),
	})
	h, ok := s.handlers[procedure]
	s.mu.Unlock()

	if !ok {
		writeError(w, procedure, &Err{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "No procedure found on path \"" + procedure + "\""})
		return
	}

	value, err := h(input)
	if err != nil {
		rpcErr, isErr := err.(*Err)
		if !isErr {
			rpcErr = &Err{Status: http.StatusInternalServerError, Message: err.Error()}
		}

		writeError(w, procedure, rpcErr)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"result": map[string]interface{}{"data": value},
	})
}

func writeError(w http.ResponseWriter, procedure string, e *Err) {
	code := e.Code
	if code == "" {
		code = codeForStatus(e.Status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message": e.Message,
			"code":    -32600,
			"data": map[string]interface{}{
				"code":       code,
				"httpStatus": e.Status,
				"path":       procedure,
			},
		},
	})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
