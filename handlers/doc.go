// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Can't Decide API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - SessionHandler: Session lifecycle (create, join, get, leave)
  - ItemHandler: Item collection and ready flags
  - SelectionHandler: Acceptances, finalize, reroll, roll-next, resets
  - EventHandler: Server-sent events stream of session snapshots

Handlers are created from the registry (and the hub for events):

	sessionHandler := handlers.NewSessionHandler(reg)
	eventHandler := handlers.NewEventHandler(reg, h)

# Session Flow

	POST /sessions                  → CreateSession
	POST /sessions/{id}/join        → JoinSession (returns member token)
	POST /sessions/{id}/items       → AddItem
	DELETE /sessions/{id}/items/{key} → RemoveItem
	POST /sessions/{id}/ready       → SetReady
	POST /sessions/{id}/acceptances → SetAcceptance
	POST /sessions/{id}/finalize    → Finalize
	POST /sessions/{id}/reroll      → Reroll
	POST /sessions/{id}/roll-next   → RollNext
	POST /sessions/{id}/start-fresh → StartFresh
	POST /sessions/{id}/restart-vote → VoteRestart
	POST /sessions/{id}/leave       → LeaveSession
	GET  /sessions/{id}/events      → Stream (SSE)

Member-scoped operations require the X-Member-ID header carrying the
token returned by join.

# Error Mapping

Core errors carry a stable kind string that becomes the response's error
field; respondError maps kinds to statuses: not-found kinds to 404,
phase and exhaustion conflicts to 409, validation failures to 400.

# Commit

Every successful mutation ends with Registry.Commit, which persists the
session and broadcasts the new snapshot to SSE subscribers.
*/
package handlers
