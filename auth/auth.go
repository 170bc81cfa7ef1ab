// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// Session code alphabet. Codes are stored uppercase; lookups fold case.
const (
	SessionCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	SessionCodeLength = 6
)

// NewMemberID creates an opaque member token. Clients persist it and
// present it on every request; it is the only identity a member has.
func NewMemberID() string {
	return uuid.NewString()
}

// NewSessionCode creates a random 6-character session code. Collisions
// against live sessions are the caller's problem (the registry retries).
func NewSessionCode() string {
	code := make([]byte, SessionCodeLength)
	for i := range code {
		code[i] = SessionCodeChars[randIndex(len(SessionCodeChars))]
	}
	return string(code)
}

// randIndex returns an unbiased random index in [0, n) from crypto/rand.
// Rejection sampling keeps the modulus from skewing toward low values.
func randIndex(n int) int {
	max := 256 - 256%n
	var b [1]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			// crypto/rand failing means the platform entropy source is
			// broken; nothing sensible to do but give up loudly.
			panic(err)
		}
		if int(b[0]) < max {
			return int(b[0]) % n
		}
	}
}
