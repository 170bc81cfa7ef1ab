// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"sync"

	"github.com/danielhkuo/cant-decide/models"
)

// subscriberBuffer is how many snapshots a subscriber may lag before
// publishes start dropping for it. Each snapshot supersedes the last, so
// a dropped intermediate state is harmless.
const subscriberBuffer = 8

// Hub fans session state snapshots out to subscribers. It implements
// session.Notifier. Publish never blocks: a subscriber that cannot keep
// up misses snapshots instead of stalling the publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan models.SessionState]struct{}
}

func New() *Hub {
	return &Hub{
		subs: make(map[string]map[chan models.SessionState]struct{}),
	}
}

// Subscribe registers interest in one session's snapshots. The caller
// must Unsubscribe the returned channel when done.
func (h *Hub) Subscribe(sessionID string) chan models.SessionState {
	ch := make(chan models.SessionState, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan models.SessionState]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (h *Hub) Unsubscribe(sessionID string, ch chan models.SessionState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sessionID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(h.subs, sessionID)
	}
	close(ch)
}

// Publish delivers a snapshot to every subscriber of the session,
// dropping it for subscribers whose buffers are full.
func (h *Hub) Publish(sessionID string, state models.SessionState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		select {
		case ch <- state:
		default:
		}
	}
}

// SubscriberCount reports how many subscribers a session currently has.
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}
