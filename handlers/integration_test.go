// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/cant-decide/models"
	"github.com/danielhkuo/cant-decide/session"
	"github.com/danielhkuo/cant-decide/store"
	"github.com/danielhkuo/cant-decide/testutil"
)

// TestFullSessionLifecycle walks a three-member group through the whole
// flow: create, join, collect items, ready up, accept, finalize, reroll
// and reset.
func TestFullSessionLifecycle(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	sessionHandler := NewSessionHandler(reg)
	itemHandler := NewItemHandler(reg)
	selectionHandler := NewSelectionHandler(reg)

	// Create the session.
	req := testutil.MakeRequest("POST", "/sessions", nil, nil)
	w := httptest.NewRecorder()
	sessionHandler.CreateSession(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreateSessionResponse
	testutil.AssertJSON(t, w, &created)
	sessionID := created.SessionID

	// Three members join.
	memberIDs := make([]string, 3)
	for i := range memberIDs {
		req = testutil.MakeRequest("POST", testutil.SessionPath(sessionID, "join"), nil, nil)
		req.SetPathValue("id", sessionID)
		w = httptest.NewRecorder()
		sessionHandler.JoinSession(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var joined models.JoinSessionResponse
		testutil.AssertJSON(t, w, &joined)
		memberIDs[i] = joined.MemberID
	}

	// Everyone proposes something; two of them propose the same dish.
	items := map[string][]string{
		memberIDs[0]: {"Pizza", "Ramen"},
		memberIDs[1]: {"Pizza"},
		memberIDs[2]: {"Sushi"},
	}
	for member, texts := range items {
		for _, text := range texts {
			req = testutil.MakeRequest("POST", testutil.SessionPath(sessionID, "items"),
				models.AddItemRequest{Text: text}, testutil.MemberHeaders(member))
			req.SetPathValue("id", sessionID)
			w = httptest.NewRecorder()
			itemHandler.AddItem(w, req)
			testutil.AssertStatus(t, w, http.StatusCreated)
		}
	}

	// Everyone readies up; the last flip advances the phase.
	var state models.SessionState
	for _, member := range memberIDs {
		req = testutil.MakeRequest("POST", testutil.SessionPath(sessionID, "ready"),
			models.SetReadyRequest{Ready: true}, testutil.MemberHeaders(member))
		req.SetPathValue("id", sessionID)
		w = httptest.NewRecorder()
		itemHandler.SetReady(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &state)
	}
	if state.Phase != models.PhaseAccepting {
		t.Fatalf("Expected phase %q after all ready, got %q", models.PhaseAccepting, state.Phase)
	}

	// The first member accepts the pizza; cross-acceptances recorded.
	req = testutil.MakeRequest("POST", testutil.SessionPath(sessionID, "acceptances"),
		models.SetAcceptanceRequest{ItemKey: "pizza", Accepted: true}, testutil.MemberHeaders(memberIDs[2]))
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	selectionHandler.SetAcceptance(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Finalize produces a pick from the submitted dishes.
	req = testutil.MakeRequest("POST", testutil.SessionPath(sessionID, "finalize"), nil, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	selectionHandler.Finalize(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &state)

	if state.Phase != models.PhaseResult || state.Pick == nil {
		t.Fatalf("Expected a result with a pick, got phase=%q pick=%+v", state.Phase, state.Pick)
	}
	valid := map[string]bool{"pizza": true, "ramen": true, "sushi": true}
	if !valid[state.Pick.Key] {
		t.Errorf("Pick %q is not a submitted item", state.Pick.Key)
	}

	// A reroll still yields a valid pick.
	req = testutil.MakeRequest("POST", testutil.SessionPath(sessionID, "reroll"), nil, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	selectionHandler.Reroll(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &state)
	if !valid[state.Pick.Key] {
		t.Errorf("Reroll pick %q is not a submitted item", state.Pick.Key)
	}

	// Start fresh for the next decision; roster survives.
	req = testutil.MakeRequest("POST", testutil.SessionPath(sessionID, "start-fresh"), nil, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	selectionHandler.StartFresh(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &state)

	if state.Phase != models.PhaseAdding || state.TotalMembers != 3 {
		t.Errorf("Unexpected state after reset: phase=%q members=%d", state.Phase, state.TotalMembers)
	}
}

// TestSessionSurvivesRestart verifies a committed session can be picked
// up by a fresh registry from the same store and keeps working.
func TestSessionSurvivesRestart(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	st, err := store.NewSQL(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer st.Close()

	first := session.NewRegistry(session.Options{Store: st})
	s := first.Create()
	memberID, _, _, err := s.Join("")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := s.AddItem(memberID, "Pizza"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	first.Commit(s)
	first.Close()

	second := session.NewRegistry(session.Options{Store: st})
	defer second.Close()
	restored, err := second.LoadFromStore()
	if err != nil {
		t.Fatalf("LoadFromStore: %v", err)
	}
	if restored != 1 {
		t.Fatalf("Expected 1 restored session, got %d", restored)
	}

	// The restored session serves requests like it never went away.
	h := NewSessionHandler(second)
	req := testutil.MakeRequest("GET", testutil.SessionPath(s.ID(), ""), nil, nil)
	req.SetPathValue("id", s.ID())
	w := httptest.NewRecorder()

	h.GetSession(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.SessionState
	testutil.AssertJSON(t, w, &state)
	if state.TotalMembers != 1 || len(state.Members[0].Items) != 1 {
		t.Errorf("Restored state incomplete: %+v", state)
	}
}
