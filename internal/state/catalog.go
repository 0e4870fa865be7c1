package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"gymhub/internal/adapters/storage/snapshot"
	"gymhub/internal/domain/catalog"
)

// CatalogStore caches gym and marketplace listings for browsing. Listings
// are volatile and never persisted. Only the small, stable slices
// (filters, favorites) survive a reload; consuming pages re-fetch the rest.
type CatalogStore struct {
	notifier
	mu        sync.RWMutex
	snaps     snapshot.Store
	scope     string
	gyms      []catalog.Gym
	products  []catalog.Product
	filter    catalog.Filter
	favorites map[string]bool
	loading   bool
	err       error
}

// NewCatalogStore creates a catalog store persisting filters and favorites
// under scope. snaps may be nil for a purely in-memory store.
func NewCatalogStore(snaps snapshot.Store, scope string) *CatalogStore {
	return &CatalogStore{
		snaps:     snaps,
		scope:     scope,
		filter:    catalog.DefaultFilter(),
		favorites: make(map[string]bool),
	}
}

// Restore loads persisted filters and favorites. Listings always start
// empty after a fresh load.
func (s *CatalogStore) Restore(ctx context.Context) {
	if s.snaps == nil || s.scope == "" {
		return
	}
	if raw, err := s.snaps.Get(ctx, s.scope, snapshot.NamespaceGymFilters); err == nil {
		var f catalog.Filter
		if err := json.Unmarshal(raw, &f); err == nil {
			s.mu.Lock()
			s.filter = f
			s.mu.Unlock()
		} else {
			slog.Warn("state_event", "event", "filter_cache_malformed", "scope", s.scope)
		}
	}
	if raw, err := s.snaps.Get(ctx, s.scope, snapshot.NamespaceFavorites); err == nil {
		var ids []string
		if err := json.Unmarshal(raw, &ids); err == nil {
			s.mu.Lock()
			s.favorites = make(map[string]bool, len(ids))
			for _, id := range ids {
				s.favorites[id] = true
			}
			s.mu.Unlock()
		} else {
			slog.Warn("state_event", "event", "favorites_cache_malformed", "scope", s.scope)
		}
	}
	s.notify()
}

// SetGyms replaces the gym listings wholesale.
// POST: the error flag is cleared
func (s *CatalogStore) SetGyms(gyms []catalog.Gym) {
	s.mu.Lock()
	s.gyms = gyms
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// SetProducts replaces the marketplace listings wholesale.
// POST: the error flag is cleared
func (s *CatalogStore) SetProducts(products []catalog.Product) {
	s.mu.Lock()
	s.products = products
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// Gyms returns a copy of the cached gym listings.
func (s *CatalogStore) Gyms() []catalog.Gym {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Gym, len(s.gyms))
	copy(out, s.gyms)
	return out
}

// Products returns a copy of the cached marketplace listings.
func (s *CatalogStore) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

// FilteredGyms derives the listings passing the current filter. Recomputed
// on every call from the stored collection.
func (s *CatalogStore) FilteredGyms() []catalog.Gym {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []catalog.Gym
	for _, g := range s.gyms {
		if s.filter.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}

// Filter returns the current filter.
func (s *CatalogStore) Filter() catalog.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter replaces the filter and persists it.
func (s *CatalogStore) SetFilter(ctx context.Context, f catalog.Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	s.persistFilter(ctx)
	s.notify()
}

// ResetFilters restores the documented filter defaults regardless of prior
// state and persists them.
func (s *CatalogStore) ResetFilters(ctx context.Context) {
	s.mu.Lock()
	s.filter.Reset()
	s.mu.Unlock()
	s.persistFilter(ctx)
	s.notify()
}

// ToggleFavorite flips a gym's favorite flag and persists the set.
func (s *CatalogStore) ToggleFavorite(ctx context.Context, gymID string) {
	s.mu.Lock()
	if s.favorites[gymID] {
		delete(s.favorites, gymID)
	} else {
		s.favorites[gymID] = true
	}
	s.mu.Unlock()
	s.persistFavorites(ctx)
	s.notify()
}

// IsFavorite reports whether a gym is favorited.
func (s *CatalogStore) IsFavorite(gymID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites[gymID]
}

// Favorites returns the favorited gym ids, sorted for stable output.
func (s *CatalogStore) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SetLoading sets the loading flag independently of the collections.
func (s *CatalogStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

// Loading reports the loading flag.
func (s *CatalogStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError records a fetch error without touching the collections.
func (s *CatalogStore) SetError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.notify()
}

// Err returns the recorded fetch error, if any.
func (s *CatalogStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Clear resets the store to its initial state (default filter, no
// favorites, no listings) and drops the persisted slices.
func (s *CatalogStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.gyms = nil
	s.products = nil
	s.filter = catalog.DefaultFilter()
	s.favorites = make(map[string]bool)
	s.loading = false
	s.err = nil
	s.mu.Unlock()
	if s.snaps != nil && s.scope != "" {
		for _, ns := range []string{snapshot.NamespaceGymFilters, snapshot.NamespaceFavorites} {
			if err := s.snaps.Delete(ctx, s.scope, ns); err != nil {
				slog.Error("state_event", "event", "catalog_cache_clear", "namespace", ns, "error", err.Error())
			}
		}
	}
	s.notify()
}

func (s *CatalogStore) persistFilter(ctx context.Context) {
	if s.snaps == nil || s.scope == "" {
		return
	}
	s.mu.RLock()
	raw, err := json.Marshal(s.filter)
	s.mu.RUnlock()
	if err != nil {
		slog.Error("state_event", "event", "filter_cache_encode", "error", err.Error())
		return
	}
	if err := s.snaps.Put(ctx, s.scope, snapshot.NamespaceGymFilters, raw); err != nil {
		slog.Error("state_event", "event", "filter_cache_persist", "error", err.Error())
	}
}

func (s *CatalogStore) persistFavorites(ctx context.Context) {
	if s.snaps == nil || s.scope == "" {
		return
	}
	raw, err := json.Marshal(s.Favorites())
	if err != nil {
		slog.Error("state_event", "event", "favorites_cache_encode", "error", err.Error())
		return
	}
	if err := s.snaps.Put(ctx, s.scope, snapshot.NamespaceFavorites, raw); err != nil {
		slog.Error("state_event", "event", "favorites_cache_persist", "error", err.Error())
	}
}
