// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub fans session state snapshots out to SSE subscribers.

The hub implements session.Notifier: the registry publishes a snapshot
after every committed mutation, and each subscriber of that session gets
it on a buffered channel. Publishing never blocks; a subscriber that
falls more than a few snapshots behind misses intermediate states, which
is fine because every snapshot is complete.

	h := hub.New()
	ch := h.Subscribe(sessionID)
	defer h.Unsubscribe(sessionID, ch)
*/
package hub
