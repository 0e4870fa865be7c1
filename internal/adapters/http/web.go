// Package web wires the HTTP surface: session endpoints, guarded role
// areas, and the JSON API the dashboards consume.
package web

import (
	"net/http"
	"time"

	"gymhub/internal/adapters/email"
	"gymhub/internal/adapters/http/middleware"
	announcementStore "gymhub/internal/adapters/storage/announcement"
	directoryStore "gymhub/internal/adapters/storage/directory"
	"gymhub/internal/adapters/storage/snapshot"
	"gymhub/internal/apiclient"
	"gymhub/internal/auth"
	"gymhub/internal/config"
	"gymhub/internal/session"
	"gymhub/internal/state"
)

// Stores holds all storage dependencies.
type Stores struct {
	Directory     directoryStore.Store
	Announcements announcementStore.Store
	Snapshots     snapshot.Store
}

// Global instances (set by NewMux)
var (
	stores      *Stores
	registry    *middleware.Registry
	tokens      *auth.Manager
	api         *apiclient.Client
	emailSender email.Sender
	baseURL     string
)

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(cfg config.App, s *Stores, client *apiclient.Client, sender email.Sender) http.Handler {
	stores = s
	api = client
	emailSender = sender
	baseURL = cfg.PublicBaseURL
	tokens = auth.NewManager([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireMin)*time.Minute)
	middleware.SecureCookies = cfg.IsProduction()

	registry = middleware.NewRegistry(func(scope string) *middleware.Entry {
		return &middleware.Entry{
			Session: session.New(s.Directory, s.Snapshots),
			State:   state.NewBundle(s.Snapshots, scope),
		}
	})

	mux := http.NewServeMux()
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Outer to inner: SecurityHeaders -> CSRF -> Attach -> RateLimit -> Logging -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF([]byte(cfg.CSRFKey), []string{"localhost:8080", "127.0.0.1:8080"}),
		middleware.Attach(registry),
		middleware.RateLimit(limiter),
		middleware.Logging,
	)
}

// currentEntry resolves the request's session entry, creating nothing.
func currentEntry(r *http.Request) (*middleware.Entry, bool) {
	return middleware.EntryFromContext(r.Context())
}

// apiToken returns the bearer token for upstream calls, minting one
// lazily for sessions restored from a snapshot.
func apiToken(entry *middleware.Entry) string {
	if token := entry.BearerToken(); token != "" {
		return token
	}
	u, ok := entry.Session.Current()
	if !ok {
		return ""
	}
	token, err := tokens.Mint(u.ID, u.Role, u.Email)
	if err != nil {
		return ""
	}
	entry.SetBearerToken(token)
	return token
}
