package state

import (
	"sync"

	"gymhub/internal/domain/cart"
)

// CartStore holds the session's shopping cart. Ephemeral: the cart is not
// persisted across reloads.
type CartStore struct {
	notifier
	mu   sync.RWMutex
	cart cart.Cart
}

// NewCartStore creates an empty cart store.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// Add inserts an item, merging quantities when the product id already
// exists in the cart.
func (s *CartStore) Add(item cart.Item) error {
	s.mu.Lock()
	err := s.cart.Add(item)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetQuantity replaces the quantity of an existing line.
func (s *CartStore) SetQuantity(productID string, quantity int) error {
	s.mu.Lock()
	err := s.cart.SetQuantity(productID, quantity)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Remove deletes a line by product id.
func (s *CartStore) Remove(productID string) {
	s.mu.Lock()
	s.cart.Remove(productID)
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the cart lines.
func (s *CartStore) Items() []cart.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]cart.Item, len(s.cart.Items))
	copy(out, s.cart.Items)
	return out
}

// Total returns the cart total in cents.
func (s *CartStore) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total()
}

// Count returns the total number of units across all lines.
func (s *CartStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Count()
}

// Clear empties the cart (used on logout or after checkout).
func (s *CartStore) Clear() {
	s.mu.Lock()
	s.cart = cart.Cart{}
	s.mu.Unlock()
	s.notify()
}
