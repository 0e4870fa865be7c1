// Package state provides the per-session domain stores: independent state
// containers for fetched domain data and ephemeral UI flags. Collections
// are replaced wholesale on each fetch. There is no merge or patch logic,
// so staleness is bounded by "last fetch wins". Stores are explicit values
// injected where needed; nothing in this package is a package-level
// singleton.
package state

import "sync"

// notifier implements the subscribe half of the store contract. Embedded
// by every store; not safe to copy after first use.
type notifier struct {
	mu      sync.Mutex
	subs    map[int]func()
	nextSub int
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe function.
func (n *notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
