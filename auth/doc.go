// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates the two identifiers the service hands out.

# Session Codes

Six characters from A-Z0-9, drawn from crypto/rand with rejection
sampling so every character is equally likely:

	code := auth.NewSessionCode()

Codes are short enough to read out loud; the registry retries on
collision with a live session.

# Member Tokens

Members are anonymous. Their only identity is a UUID issued at join
time, persisted by the client and presented in the X-Member-ID header:

	token := auth.NewMemberID()
*/
package auth
