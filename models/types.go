// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session phase constants
const (
	PhaseLobby     = "lobby"
	PhaseAdding    = "adding"
	PhaseAccepting = "accepting"
	PhaseResult    = "result"
)

// Request types

type JoinSessionRequest struct {
	MemberID string `json:"member_id,omitempty"`
}

type AddItemRequest struct {
	Text string `json:"text"`
}

type SetReadyRequest struct {
	Ready bool `json:"ready"`
}

type SetAcceptanceRequest struct {
	ItemKey  string `json:"item_key"`
	Accepted bool   `json:"accepted"`
}

// Response types

type CreateSessionResponse struct {
	SessionID string       `json:"session_id"`
	State     SessionState `json:"state"`
}

type JoinSessionResponse struct {
	MemberID string       `json:"member_id"`
	Rejoined bool         `json:"rejoined"`
	State    SessionState `json:"state"`
}

// Domain snapshot types

// ItemState is one item as entered by a member. Key is the normalized
// form used for deduplication and acceptance; Text is the display string.
type ItemState struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type MemberState struct {
	ID       string      `json:"id"`
	Items    []ItemState `json:"items"`
	Ready    bool        `json:"ready"`
	Accepted []string    `json:"accepted,omitempty"`
}

type Pick struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// SessionState is the full snapshot returned by every operation and
// published to the notification hub after each mutation.
type SessionState struct {
	SessionID      string        `json:"session_id"`
	Phase          string        `json:"phase"`
	Members        []MemberState `json:"members"`
	ReadyCount     int           `json:"ready_count"`
	TotalMembers   int           `json:"total_members"`
	AllReady       bool          `json:"all_ready"`
	Pick           *Pick         `json:"pick,omitempty"`
	PickedKeys     []string      `json:"picked_keys,omitempty"`
	RestartVotes   int           `json:"restart_votes"`
	CreatedAt      time.Time     `json:"created_at"`
	LastActivityAt time.Time     `json:"last_activity_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
