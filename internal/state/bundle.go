package state

import (
	"context"

	"gymhub/internal/adapters/storage/snapshot"
)

// Bundle groups the domain stores for one session scope.
type Bundle struct {
	Memberships *MembershipStore
	Catalog     *CatalogStore
	Cart        *CartStore
	UI          *UIStore
}

// NewBundle creates the full set of domain stores for a scope.
func NewBundle(snaps snapshot.Store, scope string) *Bundle {
	return &Bundle{
		Memberships: NewMembershipStore(snaps, scope),
		Catalog:     NewCatalogStore(snaps, scope),
		Cart:        NewCartStore(),
		UI:          NewUIStore(),
	}
}

// Restore loads the persisted slices of every store.
func (b *Bundle) Restore(ctx context.Context) {
	b.Memberships.Restore(ctx)
	b.Catalog.Restore(ctx)
}

// Clear resets every store to its initial empty state (used on logout).
func (b *Bundle) Clear(ctx context.Context) {
	b.Memberships.Clear(ctx)
	b.Catalog.Clear(ctx)
	b.Cart.Clear()
	b.UI.Clear()
}
