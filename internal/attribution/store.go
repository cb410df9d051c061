package attribution

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	snap       Snapshot
	capturedAt time.Time
	lastSeen   time.Time
}

// Store holds one write-once attribution snapshot per visitor session.
// Capture is idempotent: the first snapshot wins for the lifetime of the
// session and is never overwritten by later navigations.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
}

// NewStore creates an empty attribution store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*entry)}
}

// Capture records the snapshot for the visitor if none exists yet.
// Returns true when the snapshot was stored, false when the session already
// had one (no-op).
func (s *Store) Capture(visitorID uuid.UUID, snap Snapshot) bool {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[visitorID]; ok {
		existing.lastSeen = now
		return false
	}

	s.sessions[visitorID] = &entry{snap: snap, capturedAt: now, lastSeen: now}
	return true
}

// Get returns the snapshot for the visitor. Never blocks and never errors;
// an unknown visitor yields an empty snapshot.
func (s *Store) Get(visitorID uuid.UUID) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.sessions[visitorID]; ok {
		return e.snap
	}
	return Snapshot{}
}

// Touch refreshes the session's last-seen time so active visitors are not
// swept.
func (s *Store) Touch(visitorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[visitorID]; ok {
		e.lastSeen = time.Now()
	}
}

// Known reports whether the visitor has a session.
func (s *Store) Known(visitorID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[visitorID]
	return ok
}

// Sweep removes sessions idle for longer than ttl and returns how many were
// removed.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
