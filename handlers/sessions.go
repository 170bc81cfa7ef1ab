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

type SessionHandler struct {
	reg *session.Registry
}

func NewSessionHandler(reg *session.Registry) *SessionHandler {
	return &SessionHandler{reg: reg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.reg.Create()

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: s.ID(),
		State:     s.State(),
	})
}

// JoinSession handles POST /sessions/{id}/join
//
// A request carrying a known member id rejoins as that member; an
// unknown id is adopted as the new member's token; an empty id gets a
// generated one. The token comes back in the response for the client to
// persist.
func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.JoinSessionRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}
	// Header token wins when the body carries none.
	if req.MemberID == "" {
		req.MemberID = memberID(r)
	}

	id, rejoined, state, err := s.Join(req.MemberID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	slog.Info("member joined", "session_id", s.ID(), "member_id", id, "rejoined", rejoined)

	middleware.JSONResponse(w, http.StatusOK, models.JoinSessionResponse{
		MemberID: id,
		Rejoined: rejoined,
		State:    state,
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.State())
}

// LeaveSession handles POST /sessions/{id}/leave
func (h *SessionHandler) LeaveSession(w http.ResponseWriter, r *http.Request) {
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

	state, empty, err := s.Leave(id)
	if err != nil {
		respondError(w, err)
		return
	}

	if empty {
		// Nobody left; the session dies right away rather than idling
		// out its TTL.
		h.reg.Remove(s.ID())
	} else {
		h.reg.Commit(s)
	}

	slog.Info("member left", "session_id", s.ID(), "member_id", id, "roster_empty", empty)

	middleware.JSONResponse(w, http.StatusOK, state)
}
