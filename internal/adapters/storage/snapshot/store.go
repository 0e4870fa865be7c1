package snapshot

import (
	"context"
	"errors"
)

// Namespaces for persisted state slices. Each namespace is restricted to a
// documented field subset; large or volatile collections are never stored.
const (
	NamespaceSession     = "session"
	NamespaceMemberships = "memberships"
	NamespaceGymFilters  = "gym_filters"
	NamespaceFavorites   = "favorites"
)

// ErrNotFound is returned when no payload exists for (scope, namespace).
var ErrNotFound = errors.New("snapshot not found")

// Store persists small JSON state slices across reloads, keyed by a scope
// (one per principal) and a namespace string.
type Store interface {
	Put(ctx context.Context, scope, namespace string, payload []byte) error
	Get(ctx context.Context, scope, namespace string) ([]byte, error)
	Delete(ctx context.Context, scope, namespace string) error
	DeleteScope(ctx context.Context, scope string) error
}
