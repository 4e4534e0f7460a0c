// Golang port of Sass
// Copyright (C) 2026 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass"
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
	"github.com/das7pad/sass-go/services/sassd/pkg/managers/liveReload"
	"github.com/das7pad/sass-go/services/sassd/pkg/managers/stylesheet"
)

func newHttpController(sm stylesheet.Manager, lr liveReload.Manager) httpController {
	return httpController{sm: sm, lr: lr}
}

type httpController struct {
	sm stylesheet.Manager
	lr liveReload.Manager
}

func (h *httpController) GetRouter() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/status", h.status)
	router.
		NewRoute().
		Methods(http.MethodGet, http.MethodHead).
		Path("/css/{path:.+}.css").
		HandlerFunc(h.getStylesheet)
	if h.lr != nil {
		router.
			NewRoute().
			Methods(http.MethodGet).
			Path("/live").
			HandlerFunc(h.live)
	}
	return router
}

func errorResponse(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(message))
}

func (h *httpController) status(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("sassd is alive\n"))
}

func (h *httpController) getStylesheet(w http.ResponseWriter, r *http.Request) {
	style := sass.Style(r.URL.Query().Get("style"))
	s, err := h.sm.Get(r.Context(), mux.Vars(r)["path"], style)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(s.CSS)))
	w.Header().Set("Cache-Control", "no-cache")
	if s.Style != "" {
		w.Header().Set("X-Sass-Style", string(s.Style))
	}
	w.Header().Set("Last-Modified", s.Compiled.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte(s.CSS))
	}
}

func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var e *sassErrors.Error
	switch {
	case errors.As(err, &e) && !e.Position.IsZero():
		errorResponse(
			w, http.StatusUnprocessableEntity,
			errors.GetPublicMessage(err, "cannot compile stylesheet"),
		)
	case errors.IsNotFoundError(err):
		errorResponse(w, http.StatusNotFound, "stylesheet not found")
	case errors.IsValidationError(err):
		errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("%s %s: %s", r.Method, r.URL.Path, err)
		errorResponse(
			w, http.StatusInternalServerError, "internal server error",
		)
	}
}

const (
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 1024,
	// Pages on any origin may listen for changes.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (h *httpController) live(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// A 4xx has been sent already.
		return
	}
	defer func() { _ = conn.Close() }()

	c, unsubscribe := h.lr.Subscribe()
	defer unsubscribe()
	go readLoop(conn, unsubscribe)

	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case blob, ok := <-c:
			if !ok {
				_ = conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(writeTimeout),
				)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err = conn.WriteMessage(websocket.TextMessage, blob); err != nil {
				return
			}
		case <-t.C:
			err = conn.WriteControl(
				websocket.PingMessage, nil, time.Now().Add(writeTimeout),
			)
			if err != nil {
				return
			}
		}
	}
}

// readLoop discards client messages and unsubscribes once the peer is gone.
func readLoop(conn *websocket.Conn, unsubscribe func()) {
	defer unsubscribe()
	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
