// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/cant-decide/session"
)

// NewTestRegistry creates an in-memory registry with no store and no
// notifier.
func NewTestRegistry(t *testing.T) *session.Registry {
	t.Helper()
	reg := session.NewRegistry(session.Options{})
	t.Cleanup(reg.Close)
	return reg
}

// CreateTestSession creates a session with n joined members and returns
// it along with the member tokens in join order.
func CreateTestSession(t *testing.T, reg *session.Registry, n int) (*session.Session, []string) {
	t.Helper()

	s := reg.Create()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, _, _, err := s.Join("")
		if err != nil {
			t.Fatalf("Failed to join test member: %v", err)
		}
		ids = append(ids, id)
	}
	return s, ids
}

// AddTestItems adds items for a member, failing the test on error.
func AddTestItems(t *testing.T, s *session.Session, memberID string, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if _, err := s.AddItem(memberID, text); err != nil {
			t.Fatalf("Failed to add item %q: %v", text, err)
		}
	}
}

// ReadyAll marks every given member ready, advancing the session to the
// acceptance phase.
func ReadyAll(t *testing.T, s *session.Session, memberIDs []string) {
	t.Helper()
	for _, id := range memberIDs {
		if _, err := s.SetReady(id, true); err != nil {
			t.Fatalf("Failed to set ready for %s: %v", id, err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MemberHeaders builds the identity header map for a member token.
func MemberHeaders(memberID string) map[string]string {
	return map[string]string{"X-Member-ID": memberID}
}

// SessionPath builds an API path under a session.
func SessionPath(sessionID, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/sessions/%s", sessionID)
	}
	return fmt.Sprintf("/sessions/%s/%s", sessionID, suffix)
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorKind checks that the response body is an error tagged with
// the given kind.
func AssertErrorKind(t *testing.T, w *httptest.ResponseRecorder, kind string) {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != kind {
		t.Errorf("Expected error kind %q, got %q", kind, resp.Error)
	}
}
