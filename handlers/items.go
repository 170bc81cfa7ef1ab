// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/cant-decide/middleware"
	"github.com/danielhkuo/cant-decide/models"
	"github.com/danielhkuo/cant-decide/session"
)

type ItemHandler struct {
	reg *session.Registry
}

func NewItemHandler(reg *session.Registry) *ItemHandler {
	return &ItemHandler{reg: reg}
}

// AddItem handles POST /sessions/{id}/items
func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	id := memberID(r)
	if id == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Member-ID header required")
		return
	}

	var req models.AddItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	state, err := s.AddItem(id, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	slog.Info("item added", "session_id", s.ID(), "member_id", id)

	middleware.JSONResponse(w, http.StatusCreated, state)
}

// RemoveItem handles DELETE /sessions/{id}/items/{key}
func (h *ItemHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	id := memberID(r)
	if id == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Member-ID header required")
		return
	}

	state, err := s.RemoveItem(id, r.PathValue("key"))
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	slog.Info("item removed", "session_id", s.ID(), "member_id", id)

	middleware.JSONResponse(w, http.StatusOK, state)
}

// SetReady handles POST /sessions/{id}/ready
func (h *ItemHandler) SetReady(w http.ResponseWriter, r *http.Request) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	id := memberID(r)
	if id == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Member-ID header required")
		return
	}

	var req models.SetReadyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	state, err := s.SetReady(id, req.Ready)
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	slog.Info("ready changed",
		"session_id", s.ID(),
		"member_id", id,
		"ready", req.Ready,
		"phase", state.Phase,
	)

	middleware.JSONResponse(w, http.StatusOK, state)
}
