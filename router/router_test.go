// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/cant-decide/hub"
	"github.com/danielhkuo/cant-decide/models"
	"github.com/danielhkuo/cant-decide/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := hub.New()
	reg := session.NewRegistry(session.Options{Notifier: h})
	t.Cleanup(reg.Close)
	return NewRouter(reg, h)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

// TestSessionRoutes verifies the full session flow is reachable through
// the mux patterns, path values included.
func TestSessionRoutes(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("POST", "/sessions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("POST /sessions: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created models.CreateSessionResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	req = httptest.NewRequest("POST", "/sessions/"+created.SessionID+"/join", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var joined models.JoinSessionResponse
	if err := json.NewDecoder(w.Body).Decode(&joined); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// The lowercase code resolves too.
	req = httptest.NewRequest("GET", "/sessions/"+strings.ToLower(created.SessionID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET session: expected 200, got %d", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("DELETE", "/sessions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

// TestCORSPreflight verifies OPTIONS requests short-circuit at the CORS
// layer for any route.
func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/sessions/ABC123/items", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("Expected CORS origin header on preflight")
	}
}
