// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/cant-decide/auth"
	"github.com/danielhkuo/cant-decide/models"
)

// Item is a member-submitted option: the literal text as entered (first
// form seen wins for display) plus its normalized comparison key.
type Item struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Member is one anonymous participant. The id is an opaque token the
// client persists across reconnects; rejoining with it yields the same
// Member. Accepted holds normalized keys of other members' items.
type Member struct {
	ID       string
	Items    []Item
	Ready    bool
	Accepted map[string]bool
}

// Session owns the phase state machine, roster, acceptance state and
// pick history for one group. All mutating methods are serialized by the
// session mutex; different sessions never share locks. Methods return
// the post-mutation snapshot so callers can persist and broadcast it
// after the lock is released.
type Session struct {
	mu sync.Mutex

	id           string
	phase        string
	members      []*Member
	pick         *Item
	pickedKeys   []string
	restartVotes map[string]bool

	createdAt    time.Time
	lastActivity time.Time

	selector *Selector
	now      func() time.Time
}

func newSession(id string, now func() time.Time) *Session {
	t := now()
	return &Session{
		id:           id,
		phase:        models.PhaseLobby,
		restartVotes: make(map[string]bool),
		createdAt:    t,
		lastActivity: t,
		selector:     NewSelector(nil),
		now:          now,
	}
}

// ID returns the session code.
func (s *Session) ID() string {
	return s.id
}

// LastActivity reports when the session last saw a mutating operation.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// State returns a snapshot without refreshing activity.
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Join adds a new member, or returns the existing one unchanged when
// memberID matches a roster entry (idempotent rejoin, allowed in any
// phase). A brand-new member is only admitted before the acceptance
// phase starts; an empty memberID gets a freshly generated token.
func (s *Session) Join(memberID string) (string, bool, models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if memberID != "" {
		if m := s.findMember(memberID); m != nil {
			s.touch()
			return m.ID, true, s.snapshotLocked(), nil
		}
	}

	if s.phase != models.PhaseLobby && s.phase != models.PhaseAdding {
		return "", false, models.SessionState{}, ErrInvalidPhase
	}

	if memberID == "" {
		memberID = auth.NewMemberID()
	}
	s.members = append(s.members, &Member{
		ID:       memberID,
		Accepted: make(map[string]bool),
	})
	if s.phase == models.PhaseLobby {
		s.phase = models.PhaseAdding
	}
	s.touch()
	return memberID, false, s.snapshotLocked(), nil
}

// AddItem appends a new item to the member's list. Only legal while the
// session is collecting items.
func (s *Session) AddItem(memberID, text string) (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseAdding {
		return models.SessionState{}, ErrInvalidPhase
	}
	m := s.findMember(memberID)
	if m == nil {
		return models.SessionState{}, ErrMemberNotFound
	}

	key := Normalize(text)
	if key == "" {
		return models.SessionState{}, ErrEmptyItem
	}
	for _, it := range m.Items {
		if it.Key == key {
			return models.SessionState{}, ErrDuplicateItem
		}
	}

	m.Items = append(m.Items, Item{Key: key, Text: strings.TrimSpace(text)})
	s.touch()
	return s.snapshotLocked(), nil
}

// RemoveItem deletes the member's item with the given normalized key.
func (s *Session) RemoveItem(memberID, key string) (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseAdding {
		return models.SessionState{}, ErrInvalidPhase
	}
	m := s.findMember(memberID)
	if m == nil {
		return models.SessionState{}, ErrMemberNotFound
	}

	for i, it := range m.Items {
		if it.Key == key {
			m.Items = slices.Delete(m.Items, i, i+1)
			s.touch()
			return s.snapshotLocked(), nil
		}
	}
	return models.SessionState{}, ErrItemNotFound
}

// SetReady flips the member's ready flag. Settable in both directions
// while items are being collected; once the last member turns ready the
// session advances to the acceptance phase atomically with the flip.
func (s *Session) SetReady(memberID string, ready bool) (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseAdding {
		return models.SessionState{}, ErrInvalidPhase
	}
	m := s.findMember(memberID)
	if m == nil {
		return models.SessionState{}, ErrMemberNotFound
	}

	m.Ready = ready
	if ready && s.allReadyLocked() {
		s.phase = models.PhaseAccepting
	}
	s.touch()
	return s.snapshotLocked(), nil
}

// SetAcceptance marks whether the member would accept another member's
// item, identified by normalized key. Accepting an item nobody else
// authored, or a key that exists only in the member's own list, is
// invalid.
func (s *Session) SetAcceptance(memberID, itemKey string, accepted bool) (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseAccepting {
		return models.SessionState{}, ErrInvalidPhase
	}
	m := s.findMember(memberID)
	if m == nil {
		return models.SessionState{}, ErrMemberNotFound
	}

	if !s.foreignItemExistsLocked(memberID, itemKey) {
		return models.SessionState{}, ErrInvalidItem
	}

	if accepted {
		m.Accepted[itemKey] = true
	} else {
		delete(m.Accepted, itemKey)
	}
	s.touch()
	return s.snapshotLocked(), nil
}

// Finalize closes the acceptance phase and runs the first selection. Any
// member may trigger it. The phase only advances if a pick succeeds, so
// a session with no items at all stays in the acceptance phase.
func (s *Session) Finalize() (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseAccepting {
		return models.SessionState{}, ErrInvalidPhase
	}

	item, err := s.selectLocked(nil)
	if err != nil {
		return models.SessionState{}, err
	}
	s.phase = models.PhaseResult
	s.recordPickLocked(item)
	s.touch()
	return s.snapshotLocked(), nil
}

// Reroll picks again from the full pool, prior picks included. The new
// pick still lands in the history so roll-next never resurfaces it.
func (s *Session) Reroll() (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseResult {
		return models.SessionState{}, ErrInvalidPhase
	}

	item, err := s.selectLocked(nil)
	if err != nil {
		return models.SessionState{}, err
	}
	s.recordPickLocked(item)
	s.touch()
	return s.snapshotLocked(), nil
}

// RollNext picks again, excluding every key picked so far this session.
// Once all distinct items are exhausted it fails with ErrNoEligibleItems
// and the current pick stays in place.
func (s *Session) RollNext() (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseResult {
		return models.SessionState{}, ErrInvalidPhase
	}

	exclude := make(map[string]bool, len(s.pickedKeys))
	for _, k := range s.pickedKeys {
		exclude[k] = true
	}
	item, err := s.selectLocked(exclude)
	if err != nil {
		return models.SessionState{}, err
	}
	s.recordPickLocked(item)
	s.touch()
	return s.snapshotLocked(), nil
}

// StartFresh resets items, ready flags, acceptances, restart votes and
// the pick history while keeping the roster, then returns the session to
// the item-collection phase.
func (s *Session) StartFresh() (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseResult {
		return models.SessionState{}, ErrInvalidPhase
	}
	s.startFreshLocked()
	s.touch()
	return s.snapshotLocked(), nil
}

// VoteRestart records the member's vote to start fresh. When every
// roster member has voted the reset happens immediately.
func (s *Session) VoteRestart(memberID string) (models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseResult {
		return models.SessionState{}, ErrInvalidPhase
	}
	if s.findMember(memberID) == nil {
		return models.SessionState{}, ErrMemberNotFound
	}

	s.restartVotes[memberID] = true
	if s.allVotedLocked() {
		s.startFreshLocked()
	}
	s.touch()
	return s.snapshotLocked(), nil
}

// Leave removes the member and their items from the roster in any phase.
// Leaving when already absent is an idempotent success. The returned
// empty flag tells the registry the roster drained and the session can
// be dropped immediately.
func (s *Session) Leave(memberID string) (models.SessionState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.members {
		if m.ID == memberID {
			s.members = slices.Delete(s.members, i, i+1)
			break
		}
	}
	delete(s.restartVotes, memberID)

	empty := len(s.members) == 0
	if !empty {
		// Departure can satisfy the same aggregate triggers a flip
		// by the departing member would have.
		if s.phase == models.PhaseAdding && s.allReadyLocked() {
			s.phase = models.PhaseAccepting
		} else if s.phase == models.PhaseResult && len(s.restartVotes) > 0 && s.allVotedLocked() {
			s.startFreshLocked()
		}
	}
	s.touch()
	return s.snapshotLocked(), empty, nil
}

func (s *Session) findMember(id string) *Member {
	for _, m := range s.members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Session) foreignItemExistsLocked(memberID, key string) bool {
	for _, m := range s.members {
		if m.ID == memberID {
			continue
		}
		for _, it := range m.Items {
			if it.Key == key {
				return true
			}
		}
	}
	return false
}

func (s *Session) allReadyLocked() bool {
	if len(s.members) == 0 {
		return false
	}
	for _, m := range s.members {
		if !m.Ready {
			return false
		}
	}
	return true
}

func (s *Session) allVotedLocked() bool {
	if len(s.members) == 0 {
		return false
	}
	for _, m := range s.members {
		if !s.restartVotes[m.ID] {
			return false
		}
	}
	return true
}

// selectLocked runs the two-stage draw over freshly computed groups.
func (s *Session) selectLocked(exclude map[string]bool) (Item, error) {
	groups := eligibleGroups(groupAcceptance(s.members), exclude)
	if len(groups) == 0 {
		return Item{}, ErrNoEligibleItems
	}

	g := groups[s.selector.Index(len(groups))]
	// Groups are never empty here, but re-validate before indexing.
	if len(g.Items) == 0 {
		return Item{}, ErrNoEligibleItems
	}
	return g.Items[s.selector.Index(len(g.Items))], nil
}

func (s *Session) recordPickLocked(item Item) {
	s.pick = &item
	if !slices.Contains(s.pickedKeys, item.Key) {
		s.pickedKeys = append(s.pickedKeys, item.Key)
	}
}

func (s *Session) startFreshLocked() {
	for _, m := range s.members {
		m.Items = nil
		m.Ready = false
		m.Accepted = make(map[string]bool)
	}
	s.pick = nil
	s.pickedKeys = nil
	s.restartVotes = make(map[string]bool)
	s.phase = models.PhaseAdding
}

func (s *Session) touch() {
	s.lastActivity = s.now()
}

func (s *Session) snapshotLocked() models.SessionState {
	st := models.SessionState{
		SessionID:      s.id,
		Phase:          s.phase,
		Members:        make([]models.MemberState, 0, len(s.members)),
		TotalMembers:   len(s.members),
		RestartVotes:   len(s.restartVotes),
		CreatedAt:      s.createdAt,
		LastActivityAt: s.lastActivity,
	}
	for _, m := range s.members {
		ms := models.MemberState{
			ID:    m.ID,
			Items: make([]models.ItemState, 0, len(m.Items)),
			Ready: m.Ready,
		}
		for _, it := range m.Items {
			ms.Items = append(ms.Items, models.ItemState{Key: it.Key, Text: it.Text})
		}
		for k := range m.Accepted {
			ms.Accepted = append(ms.Accepted, k)
		}
		sort.Strings(ms.Accepted)
		if m.Ready {
			st.ReadyCount++
		}
		st.Members = append(st.Members, ms)
	}
	st.AllReady = st.TotalMembers > 0 && st.ReadyCount == st.TotalMembers
	if s.pick != nil {
		st.Pick = &models.Pick{Key: s.pick.Key, Text: s.pick.Text}
	}
	st.PickedKeys = slices.Clone(s.pickedKeys)
	return st
}
