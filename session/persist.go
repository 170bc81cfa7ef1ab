// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/danielhkuo/cant-decide/store"
)

// payload is the JSON shape persisted alongside the session row. It
// carries everything the phase column does not.
type payload struct {
	Members      []memberRecord `json:"members"`
	Pick         *Item          `json:"pick,omitempty"`
	PickedKeys   []string       `json:"picked_keys,omitempty"`
	RestartVotes []string       `json:"restart_votes,omitempty"`
}

type memberRecord struct {
	ID       string   `json:"id"`
	Items    []Item   `json:"items"`
	Ready    bool     `json:"ready"`
	Accepted []string `json:"accepted,omitempty"`
}

// Record serializes the session for the write-through store.
func (s *Session) Record() (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := payload{
		Pick:       s.pick,
		PickedKeys: s.pickedKeys,
	}
	for _, m := range s.members {
		mr := memberRecord{ID: m.ID, Items: m.Items, Ready: m.Ready}
		for k := range m.Accepted {
			mr.Accepted = append(mr.Accepted, k)
		}
		sort.Strings(mr.Accepted)
		p.Members = append(p.Members, mr)
	}
	for id := range s.restartVotes {
		p.RestartVotes = append(p.RestartVotes, id)
	}
	sort.Strings(p.RestartVotes)

	raw, err := json.Marshal(p)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to marshal session %s: %w", s.id, err)
	}
	return store.Record{
		ID:           s.id,
		Phase:        s.phase,
		CreatedAt:    s.createdAt,
		LastActivity: s.lastActivity,
		Payload:      raw,
	}, nil
}

// Restore rebuilds a session from its persisted record.
func Restore(rec store.Record, now func() time.Time) (*Session, error) {
	var p payload
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", rec.ID, err)
	}

	s := &Session{
		id:           rec.ID,
		phase:        rec.Phase,
		pick:         p.Pick,
		pickedKeys:   p.PickedKeys,
		restartVotes: make(map[string]bool),
		createdAt:    rec.CreatedAt,
		lastActivity: rec.LastActivity,
		selector:     NewSelector(nil),
		now:          now,
	}
	for _, mr := range p.Members {
		m := &Member{
			ID:       mr.ID,
			Items:    mr.Items,
			Ready:    mr.Ready,
			Accepted: make(map[string]bool),
		}
		for _, k := range mr.Accepted {
			m.Accepted[k] = true
		}
		s.members = append(s.members, m)
	}
	for _, id := range p.RestartVotes {
		s.restartVotes[id] = true
	}
	return s, nil
}
