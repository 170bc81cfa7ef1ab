// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/cant-decide/hub"
	"github.com/danielhkuo/cant-decide/middleware"
	"github.com/danielhkuo/cant-decide/models"
	"github.com/danielhkuo/cant-decide/session"
)

type EventHandler struct {
	reg *session.Registry
	hub *hub.Hub
}

func NewEventHandler(reg *session.Registry, h *hub.Hub) *EventHandler {
	return &EventHandler{reg: reg, hub: h}
}

// Stream handles GET /sessions/{id}/events
//
// Server-sent events: one `data:` line per session snapshot, starting
// with the current state. The stream ends when the client disconnects.
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	ch := h.hub.Subscribe(s.ID())
	defer h.hub.Unsubscribe(s.ID(), ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if !writeEvent(w, s.State()) {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case state, open := <-ch:
			if !open {
				return
			}
			if !writeEvent(w, state) {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, state models.SessionState) bool {
	data, err := json.Marshal(state)
	if err != nil {
		slog.Error("failed to encode event", "error", err)
		return false
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err == nil
}
