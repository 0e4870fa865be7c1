package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"gymhub/internal/session"
	"gymhub/internal/state"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const entryContextKey contextKey = "session_entry"

// SecureCookies controls the Secure flag on issued cookies. Set true in
// production.
var SecureCookies = false

// Entry bundles everything owned by one live session: the session store,
// the domain state stores, and the bearer token used against the backend.
// The registry hands the same entry to concurrent requests, so the token
// is guarded like every other shared field.
type Entry struct {
	Session   *session.Store
	State     *state.Bundle
	CreatedAt time.Time

	mu       sync.Mutex
	apiToken string
}

// BearerToken returns the cached upstream token, empty if none is set.
func (e *Entry) BearerToken() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apiToken
}

// SetBearerToken caches the upstream token for later requests.
func (e *Entry) SetBearerToken(token string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apiToken = token
}

// EntryFactory builds a fresh entry for a persistence scope. The scope is
// empty for brand-new sessions with nothing to restore.
type EntryFactory func(scope string) *Entry

// Registry maps opaque tokens to live session entries. Entries expire 24
// hours after creation.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*Entry
	factory  EntryFactory
	lifetime time.Duration
}

// NewRegistry creates an empty registry.
func NewRegistry(factory EntryFactory) *Registry {
	return &Registry{
		entries:  make(map[string]*Entry),
		factory:  factory,
		lifetime: 24 * time.Hour,
	}
}

// Create registers an entry under a fresh random token.
// POST: the entry is retrievable by the returned token
func (reg *Registry) Create(entry *Entry) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	entry.CreatedAt = time.Now()
	reg.mu.Lock()
	reg.entries[token] = entry
	reg.mu.Unlock()
	return token, nil
}

// Get retrieves a live entry by token. Expired entries are dropped.
func (reg *Registry) Get(token string) (*Entry, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	entry, ok := reg.entries[token]
	if !ok {
		return nil, false
	}
	if time.Since(entry.CreatedAt) > reg.lifetime {
		delete(reg.entries, token)
		return nil, false
	}
	return entry, true
}

// Delete removes an entry by token.
func (reg *Registry) Delete(token string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.entries, token)
}

// NewEntry builds an unregistered entry via the factory.
func (reg *Registry) NewEntry(scope string) *Entry {
	return reg.factory(scope)
}

const (
	sessionCookieName = "gymhub_session"
	scopeCookieName   = "gymhub_scope"
)

// Attach returns middleware that resolves the request's session entry and
// puts it in context. Resolution order:
//
//  1. a live registry entry behind the session cookie
//  2. a persisted snapshot behind the scope cookie (survives restarts);
//     a restored, authenticated session is re-registered and re-cookied
//
// Unresolvable requests pass through without an entry; handlers decide
// what anonymous access means.
func Attach(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				if entry, ok := reg.Get(cookie.Value); ok {
					next.ServeHTTP(w, r.WithContext(ContextWithEntry(r.Context(), entry)))
					return
				}
			}

			if cookie, err := r.Cookie(scopeCookieName); err == nil && cookie.Value != "" {
				entry := reg.NewEntry(cookie.Value)
				entry.Session.Restore(r.Context(), cookie.Value)
				if entry.Session.IsAuthenticated() {
					entry.State.Restore(r.Context())
					if token, err := reg.Create(entry); err == nil {
						SetSessionCookie(w, token)
						next.ServeHTTP(w, r.WithContext(ContextWithEntry(r.Context(), entry)))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// EntryFromContext extracts the session entry from the request context.
func EntryFromContext(ctx context.Context) (*Entry, bool) {
	entry, ok := ctx.Value(entryContextKey).(*Entry)
	return entry, ok
}

// ContextWithEntry returns a context carrying the entry. Used by Attach
// and by tests.
func ContextWithEntry(ctx context.Context, entry *Entry) context.Context {
	return context.WithValue(ctx, entryContextKey, entry)
}

// SetSessionCookie issues the in-memory session token cookie.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400,
	})
}

// SetScopeCookie issues the persistent scope cookie that lets a reload
// restore the session from its snapshot without re-authenticating.
func SetScopeCookie(w http.ResponseWriter, scope string) {
	http.SetCookie(w, &http.Cookie{
		Name:     scopeCookieName,
		Value:    scope,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   30 * 86400,
	})
}

// ClearSessionCookies removes both cookies on logout.
func ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{sessionCookieName, scopeCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Secure:   SecureCookies,
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1,
		})
	}
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
