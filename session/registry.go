// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/cant-decide/auth"
	"github.com/danielhkuo/cant-decide/models"
	"github.com/danielhkuo/cant-decide/store"
)

// DefaultTTL is how long a session survives without any mutating
// operation before the sweeper removes it.
const DefaultTTL = 7 * 24 * time.Hour

// Notifier receives the post-mutation snapshot of a session. Delivery is
// best-effort; the registry never waits on it.
type Notifier interface {
	Publish(sessionID string, state models.SessionState)
}

// Options configures a Registry. Zero values mean: DefaultTTL, no
// persistence, no notifications, wall clock.
type Options struct {
	TTL      time.Duration
	Store    store.Store
	Notifier Notifier
	Now      func() time.Time
}

// Registry is the process-wide map of live sessions. The registry lock
// only guards the map itself; per-session state is guarded by each
// session's own mutex, so operations on different sessions never
// serialize against each other.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl      time.Duration
	store    store.Store
	notifier Notifier
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

func NewRegistry(opts Options) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      opts.TTL,
		store:    opts.Store,
		notifier: opts.Notifier,
		now:      opts.Now,
		done:     make(chan struct{}),
	}
}

// Create makes a new empty session under a fresh code, retrying on
// collision with live sessions.
func (r *Registry) Create() *Session {
	r.mu.Lock()
	var code string
	for {
		code = auth.NewSessionCode()
		if _, taken := r.sessions[code]; !taken {
			break
		}
	}
	s := newSession(code, r.now)
	r.sessions[code] = s
	r.mu.Unlock()

	slog.Info("session created", "session_id", code)
	r.Commit(s)
	return s
}

// Find looks a session up by code, case-insensitively. A session found
// past its TTL is deleted on the spot and reported as missing.
func (r *Registry) Find(id string) (*Session, error) {
	code := strings.ToUpper(strings.TrimSpace(id))

	r.mu.RLock()
	s := r.sessions[code]
	r.mu.RUnlock()

	if s == nil {
		return nil, ErrSessionNotFound
	}
	if r.expired(s) {
		r.expire(s)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from the registry and the store.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.Delete(id); err != nil {
			slog.Error("failed to delete persisted session", "session_id", id, "error", err)
		}
	}
}

// Commit persists the session and broadcasts its current state. Called
// after every successful mutation, outside the session lock, so a slow
// store or subscriber never stalls other members' operations.
func (r *Registry) Commit(s *Session) {
	if r.store != nil {
		rec, err := s.Record()
		if err != nil {
			slog.Error("failed to serialize session", "session_id", s.ID(), "error", err)
		} else if err := r.store.Save(rec); err != nil {
			slog.Error("failed to persist session", "session_id", s.ID(), "error", err)
		}
	}
	if r.notifier != nil {
		r.notifier.Publish(s.ID(), s.State())
	}
}

// LoadFromStore restores persisted sessions at startup, dropping any
// that expired while the process was down. Returns the number restored.
func (r *Registry) LoadFromStore() (int, error) {
	if r.store == nil {
		return 0, nil
	}
	recs, err := r.store.LoadAll()
	if err != nil {
		return 0, err
	}

	cutoff := r.now().Add(-r.ttl)
	restored := 0
	for _, rec := range recs {
		if rec.LastActivity.Before(cutoff) {
			if err := r.store.Delete(rec.ID); err != nil {
				slog.Error("failed to delete expired session", "session_id", rec.ID, "error", err)
			}
			continue
		}
		s, err := Restore(rec, r.now)
		if err != nil {
			slog.Error("failed to restore session", "session_id", rec.ID, "error", err)
			continue
		}
		r.mu.Lock()
		r.sessions[s.ID()] = s
		r.mu.Unlock()
		restored++
	}
	return restored, nil
}

// StartSweeper runs the periodic expiry sweep until Close is called.
func (r *Registry) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-r.done:
				return
			}
		}
	}()
}

// Sweep removes every session idle past the TTL.
func (r *Registry) Sweep() {
	r.mu.RLock()
	var stale []*Session
	for _, s := range r.sessions {
		if r.expired(s) {
			stale = append(stale, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range stale {
		r.expire(s)
	}
}

// Close stops the sweeper.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.done) })
}

func (r *Registry) expired(s *Session) bool {
	return r.now().Sub(s.LastActivity()) > r.ttl
}

func (r *Registry) expire(s *Session) {
	slog.Info("session expired",
		"session_id", s.ID(),
		"last_active", humanize.Time(s.LastActivity()),
	)
	r.Remove(s.ID())
}
