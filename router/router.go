// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/cant-decide/handlers"
	"github.com/danielhkuo/cant-decide/hub"
	"github.com/danielhkuo/cant-decide/middleware"
	"github.com/danielhkuo/cant-decide/session"
)

func NewRouter(reg *session.Registry, h *hub.Hub) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(reg)
	itemHandler := handlers.NewItemHandler(reg)
	selectionHandler := handlers.NewSelectionHandler(reg)
	eventHandler := handlers.NewEventHandler(reg, h)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("POST /sessions/{id}/join", middleware.WithLogging(sessionHandler.JoinSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/leave", middleware.WithLogging(sessionHandler.LeaveSession))

	// Item collection
	mux.HandleFunc("POST /sessions/{id}/items", middleware.WithLogging(itemHandler.AddItem))
	mux.HandleFunc("DELETE /sessions/{id}/items/{key}", middleware.WithLogging(itemHandler.RemoveItem))
	mux.HandleFunc("POST /sessions/{id}/ready", middleware.WithLogging(itemHandler.SetReady))

	// Acceptance and selection
	mux.HandleFunc("POST /sessions/{id}/acceptances", middleware.WithLogging(selectionHandler.SetAcceptance))
	mux.HandleFunc("POST /sessions/{id}/finalize", middleware.WithLogging(selectionHandler.Finalize))
	mux.HandleFunc("POST /sessions/{id}/reroll", middleware.WithLogging(selectionHandler.Reroll))
	mux.HandleFunc("POST /sessions/{id}/roll-next", middleware.WithLogging(selectionHandler.RollNext))
	mux.HandleFunc("POST /sessions/{id}/start-fresh", middleware.WithLogging(selectionHandler.StartFresh))
	mux.HandleFunc("POST /sessions/{id}/restart-vote", middleware.WithLogging(selectionHandler.VoteRestart))

	// State change notifications (SSE, no logging wrapper: long-lived)
	mux.HandleFunc("GET /sessions/{id}/events", eventHandler.Stream)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cant-decide API v1"))
	})

	return middleware.CORS(mux)
}
