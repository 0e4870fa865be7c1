package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"gymhub/internal/adapters/storage/snapshot"
	"gymhub/internal/domain/membership"
)

// MembershipStore caches the memberships fetched for one profile. The
// last-known list is persisted so a reload can show something before the
// next fetch completes; it is replaced wholesale by every SetMemberships.
type MembershipStore struct {
	notifier
	mu      sync.RWMutex
	snaps   snapshot.Store
	scope   string
	items   []membership.Membership
	loading bool
	err     error
}

// NewMembershipStore creates a membership store persisting under scope.
// snaps may be nil for a purely in-memory store (tests, logged-out use).
func NewMembershipStore(snaps snapshot.Store, scope string) *MembershipStore {
	return &MembershipStore{snaps: snaps, scope: scope}
}

// Restore loads the persisted membership cache. Malformed payloads are
// treated as an empty cache.
func (s *MembershipStore) Restore(ctx context.Context) {
	if s.snaps == nil || s.scope == "" {
		return
	}
	raw, err := s.snaps.Get(ctx, s.scope, snapshot.NamespaceMemberships)
	if err != nil {
		return
	}
	var items []membership.Membership
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("state_event", "event", "membership_cache_malformed", "scope", s.scope)
		return
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.notify()
}

// SetMemberships replaces the collection wholesale and persists the cache.
// POST: Memberships() returns exactly items; the error flag is cleared
func (s *MembershipStore) SetMemberships(ctx context.Context, items []membership.Membership) {
	s.mu.Lock()
	s.items = items
	s.err = nil
	s.mu.Unlock()
	s.persist(ctx, items)
	s.notify()
}

// Memberships returns a copy of the cached collection.
func (s *MembershipStore) Memberships() []membership.Membership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]membership.Membership, len(s.items))
	copy(out, s.items)
	return out
}

// Active derives the active membership from the cached collection. It is
// recomputed on every call rather than maintained as a separate field.
func (s *MembershipStore) Active() (membership.Membership, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m := membership.Active(s.items); m != nil {
		return *m, true
	}
	return membership.Membership{}, false
}

// SetLoading sets the loading flag independently of the collection.
func (s *MembershipStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

// Loading reports the loading flag.
func (s *MembershipStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError records a fetch error without touching the collection.
func (s *MembershipStore) SetError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.notify()
}

// Err returns the recorded fetch error, if any.
func (s *MembershipStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Clear resets the store to its initial empty state and drops the
// persisted cache (used on logout or context switch).
func (s *MembershipStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.loading = false
	s.err = nil
	s.mu.Unlock()
	if s.snaps != nil && s.scope != "" {
		if err := s.snaps.Delete(ctx, s.scope, snapshot.NamespaceMemberships); err != nil {
			slog.Error("state_event", "event", "membership_cache_clear", "error", err.Error())
		}
	}
	s.notify()
}

func (s *MembershipStore) persist(ctx context.Context, items []membership.Membership) {
	if s.snaps == nil || s.scope == "" {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		slog.Error("state_event", "event", "membership_cache_encode", "error", err.Error())
		return
	}
	if err := s.snaps.Put(ctx, s.scope, snapshot.NamespaceMemberships, raw); err != nil {
		slog.Error("state_event", "event", "membership_cache_persist", "error", err.Error())
	}
}
