// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/cant-decide/middleware"
	"github.com/danielhkuo/cant-decide/models"
	"github.com/danielhkuo/cant-decide/session"
)

// respondError maps a core session error to its HTTP status and writes
// the tagged kind as the response's error field. Anything that is not a
// *session.Error is a bug and surfaces as a 500.
func respondError(w http.ResponseWriter, err error) {
	var serr *session.Error
	if !errors.As(err, &serr) {
		slog.Error("unexpected error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	middleware.JSONResponse(w, statusFor(serr), models.ErrorResponse{
		Error:   serr.Kind,
		Message: serr.Message,
	})
}

func statusFor(err *session.Error) int {
	switch err {
	case session.ErrSessionNotFound, session.ErrMemberNotFound, session.ErrItemNotFound:
		return http.StatusNotFound
	case session.ErrInvalidPhase, session.ErrNoEligibleItems:
		return http.StatusConflict
	case session.ErrDuplicateItem, session.ErrEmptyItem, session.ErrInvalidItem:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// memberID pulls the caller's member token from the X-Member-ID header.
func memberID(r *http.Request) string {
	return r.Header.Get("X-Member-ID")
}
