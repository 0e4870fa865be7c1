package state

import (
	"sync"

	"github.com/google/uuid"
)

// Toast is a transient notification shown in dashboard chrome.
type Toast struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // info, success, error
}

// UIStore holds ephemeral UI flags: sidebar, modals, toasts and loading
// indicators. Nothing here is ever persisted; the store is always empty
// immediately after a fresh load.
type UIStore struct {
	notifier
	mu             sync.RWMutex
	sidebarOpen    bool
	mobileMenuOpen bool
	modals         map[string]bool
	toasts         []Toast
	globalLoading  bool
	loadingKeys    map[string]bool
}

// NewUIStore creates a UI store with the sidebar open, matching the
// default dashboard chrome.
func NewUIStore() *UIStore {
	return &UIStore{
		sidebarOpen: true,
		modals:      make(map[string]bool),
		loadingKeys: make(map[string]bool),
	}
}

// ToggleSidebar flips the sidebar-open flag.
func (s *UIStore) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	s.mu.Unlock()
	s.notify()
}

// SidebarOpen reports the sidebar-open flag.
func (s *UIStore) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

// SetMobileMenu sets the mobile-menu-open flag.
func (s *UIStore) SetMobileMenu(open bool) {
	s.mu.Lock()
	s.mobileMenuOpen = open
	s.mu.Unlock()
	s.notify()
}

// MobileMenuOpen reports the mobile-menu-open flag.
func (s *UIStore) MobileMenuOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mobileMenuOpen
}

// OpenModal marks a modal id as open.
func (s *UIStore) OpenModal(id string) {
	s.mu.Lock()
	s.modals[id] = true
	s.mu.Unlock()
	s.notify()
}

// CloseModal marks a modal id as closed.
func (s *UIStore) CloseModal(id string) {
	s.mu.Lock()
	delete(s.modals, id)
	s.mu.Unlock()
	s.notify()
}

// IsModalOpen reports whether a modal id is open.
func (s *UIStore) IsModalOpen(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modals[id]
}

// PushToast appends a transient notification and returns its id.
func (s *UIStore) PushToast(message, severity string) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.toasts = append(s.toasts, Toast{ID: id, Message: message, Severity: severity})
	s.mu.Unlock()
	s.notify()
	return id
}

// DismissToast removes a toast by id. Dismissing an absent id is a no-op.
func (s *UIStore) DismissToast(id string) {
	s.mu.Lock()
	for i := range s.toasts {
		if s.toasts[i].ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Toasts returns a copy of the pending toasts in push order.
func (s *UIStore) Toasts() []Toast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// SetGlobalLoading sets the global loading flag.
func (s *UIStore) SetGlobalLoading(loading bool) {
	s.mu.Lock()
	s.globalLoading = loading
	s.mu.Unlock()
	s.notify()
}

// GlobalLoading reports the global loading flag.
func (s *UIStore) GlobalLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.globalLoading
}

// SetLoadingKey sets a named loading flag.
func (s *UIStore) SetLoadingKey(key string, loading bool) {
	s.mu.Lock()
	if loading {
		s.loadingKeys[key] = true
	} else {
		delete(s.loadingKeys, key)
	}
	s.mu.Unlock()
	s.notify()
}

// IsLoadingKey reports a named loading flag.
func (s *UIStore) IsLoadingKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingKeys[key]
}

// Clear resets every flag to the initial state.
func (s *UIStore) Clear() {
	s.mu.Lock()
	s.sidebarOpen = true
	s.mobileMenuOpen = false
	s.modals = make(map[string]bool)
	s.toasts = nil
	s.globalLoading = false
	s.loadingKeys = make(map[string]bool)
	s.mu.Unlock()
	s.notify()
}
