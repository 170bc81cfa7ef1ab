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

type SelectionHandler struct {
	reg *session.Registry
}

func NewSelectionHandler(reg *session.Registry) *SelectionHandler {
	return &SelectionHandler{reg: reg}
}

// SetAcceptance handles POST /sessions/{id}/acceptances
func (h *SelectionHandler) SetAcceptance(w http.ResponseWriter, r *http.Request) {
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

	var req models.SetAcceptanceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	state, err := s.SetAcceptance(id, req.ItemKey, req.Accepted)
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	middleware.JSONResponse(w, http.StatusOK, state)
}

// Finalize handles POST /sessions/{id}/finalize
func (h *SelectionHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.pick(w, r, "selection finalized", func(s *session.Session) (models.SessionState, error) {
		return s.Finalize()
	})
}

// Reroll handles POST /sessions/{id}/reroll
func (h *SelectionHandler) Reroll(w http.ResponseWriter, r *http.Request) {
	h.pick(w, r, "rerolled", func(s *session.Session) (models.SessionState, error) {
		return s.Reroll()
	})
}

// RollNext handles POST /sessions/{id}/roll-next
func (h *SelectionHandler) RollNext(w http.ResponseWriter, r *http.Request) {
	h.pick(w, r, "rolled next", func(s *session.Session) (models.SessionState, error) {
		return s.RollNext()
	})
}

// pick runs one of the selection operations and responds with the new
// state. All three share the same request/response shape.
func (h *SelectionHandler) pick(w http.ResponseWriter, r *http.Request, what string, op func(*session.Session) (models.SessionState, error)) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	state, err := op(s)
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	slog.Info(what, "session_id", s.ID(), "pick", state.Pick.Text)

	middleware.JSONResponse(w, http.StatusOK, state)
}

// StartFresh handles POST /sessions/{id}/start-fresh
func (h *SelectionHandler) StartFresh(w http.ResponseWriter, r *http.Request) {
	s, err := h.reg.Find(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	state, err := s.StartFresh()
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	slog.Info("session reset", "session_id", s.ID())

	middleware.JSONResponse(w, http.StatusOK, state)
}

// VoteRestart handles POST /sessions/{id}/restart-vote
func (h *SelectionHandler) VoteRestart(w http.ResponseWriter, r *http.Request) {
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

	state, err := s.VoteRestart(id)
	if err != nil {
		respondError(w, err)
		return
	}
	h.reg.Commit(s)

	slog.Info("restart vote",
		"session_id", s.ID(),
		"member_id", id,
		"votes", state.RestartVotes,
		"phase", state.Phase,
	)

	middleware.JSONResponse(w, http.StatusOK, state)
}
