// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Can't Decide API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	handler := router.NewRouter(reg, h)

# Endpoints

Health:

	GET /health

Session lifecycle:

	POST /sessions            - Create session
	POST /sessions/{id}/join  - Join or rejoin
	GET  /sessions/{id}       - Current state
	POST /sessions/{id}/leave - Leave the roster

Item collection (requires X-Member-ID):

	POST   /sessions/{id}/items       - Add item
	DELETE /sessions/{id}/items/{key} - Remove item
	POST   /sessions/{id}/ready       - Set ready flag

Acceptance and selection:

	POST /sessions/{id}/acceptances  - Mark acceptance
	POST /sessions/{id}/finalize     - First pick
	POST /sessions/{id}/reroll       - Pick again, full pool
	POST /sessions/{id}/roll-next    - Pick again, unseen items only
	POST /sessions/{id}/start-fresh  - Reset for a new round
	POST /sessions/{id}/restart-vote - Vote to reset

Notifications:

	GET /sessions/{id}/events - SSE stream of state snapshots

Every route except the SSE stream is wrapped in request logging; the
whole mux sits behind the CORS middleware.
*/
package router
