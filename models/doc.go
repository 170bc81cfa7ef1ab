// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and shared wire types for the
API.

# Request Types

Types for parsing incoming JSON:

  - JoinSessionRequest: member_id (optional; rejoin token)
  - AddItemRequest: text
  - SetReadyRequest: ready
  - SetAcceptanceRequest: item_key, accepted

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_id, state
  - JoinSessionResponse: member_id, rejoined, state
  - SessionState: the full session snapshot, returned by every mutation
  - ErrorResponse: error (machine-readable kind), message

# Session State

SessionState is the one shape clients consume, over both the REST
responses and the SSE stream: phase, members with their items, ready
flags and acceptances, the current pick and the pick history.

# Constants

Phase values:

	PhaseLobby     = "lobby"
	PhaseAdding    = "adding"
	PhaseAccepting = "accepting"
	PhaseResult    = "result"
*/
package models
