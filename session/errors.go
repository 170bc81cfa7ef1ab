// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

// Error is a typed session error. Kind is a stable machine-readable code
// that the HTTP layer maps to a status and returns to clients verbatim.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Error kinds. Every failure an operation can return carries one of these;
// none of them is fatal to the process.
var (
	ErrSessionNotFound = &Error{Kind: "session_not_found", Message: "session not found"}
	ErrMemberNotFound  = &Error{Kind: "member_not_found", Message: "member not found"}
	ErrInvalidPhase    = &Error{Kind: "invalid_phase", Message: "operation not allowed in current phase"}
	ErrDuplicateItem   = &Error{Kind: "duplicate_item", Message: "item already in your list"}
	ErrEmptyItem       = &Error{Kind: "empty_item", Message: "item is empty after normalization"}
	ErrItemNotFound    = &Error{Kind: "item_not_found", Message: "no such item"}
	ErrInvalidItem     = &Error{Kind: "invalid_item", Message: "item is your own or unknown"}
	ErrNoEligibleItems = &Error{Kind: "no_eligible_items", Message: "no eligible items to pick from"}
)
