// Package session holds the single source of truth for "who is logged in
// and what can they see". The store is an explicit, injected container:
// construct one per principal and pass it down; there are no package-level
// singletons, so tests get a fresh store each.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"gymhub/internal/adapters/storage/snapshot"
	"gymhub/internal/domain/user"
)

// Domain errors
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAccountLocked      = errors.New("account is temporarily locked, try again later")
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrNotAuthenticated   = errors.New("not logged in")
)

// Directory is the slice of the user directory the session store needs.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// Snapshot is the minimal serializable slice of the session persisted
// across reloads. Large nested structures (gym details) are deliberately
// excluded to bound storage size.
type Snapshot struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ApprovalStatus string `json:"approval_status,omitempty"`
}

// SignupInput carries input for Signup.
type SignupInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// Store owns the authenticated user for one session's lifetime.
type Store struct {
	mu        sync.RWMutex
	directory Directory
	snapshots snapshot.Store
	current   *user.User
	loading   bool
	subs      map[int]func()
	nextSub   int
}

// New creates a session store in the loading state; call Restore (or
// Login/Signup) to leave it.
func New(dir Directory, snaps snapshot.Store) *Store {
	return &Store{
		directory: dir,
		snapshots: snaps,
		loading:   true,
		subs:      make(map[int]func()),
	}
}

// Restore rebuilds the session from the persisted snapshot for scope
// without re-authenticating against the directory. Malformed or missing
// snapshots are treated as "no session", never as an error.
// POST: IsLoading() is false
func (s *Store) Restore(ctx context.Context, scope string) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.current = nil

	if scope == "" || s.snapshots == nil {
		return
	}
	raw, err := s.snapshots.Get(ctx, scope, snapshot.NamespaceSession)
	if err != nil {
		return
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		slog.Warn("session_event", "event", "snapshot_malformed", "scope", scope)
		return
	}
	if snap.ID == "" || snap.Email == "" || !validRole(snap.Role) {
		slog.Warn("session_event", "event", "snapshot_invalid", "scope", scope)
		return
	}
	s.current = &user.User{
		ID:             snap.ID,
		Email:          snap.Email,
		Role:           snap.Role,
		ApprovalStatus: snap.ApprovalStatus,
	}
}

// Login validates credentials against the directory and, on success, makes
// the matched user current and persists the session snapshot.
// POST on failure: the current user is untouched
func (s *Store) Login(ctx context.Context, email, password string) (user.User, error) {
	u, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	if u.IsLocked() {
		return user.User{}, ErrAccountLocked
	}
	if err := u.CheckPassword(password); err != nil {
		u.RecordFailedLogin()
		if saveErr := s.directory.Save(ctx, u); saveErr != nil {
			slog.Error("session_event", "event", "failed_login_save", "error", saveErr.Error())
		}
		slog.Info("auth_event", "event", "login_failed", "email", email)
		return user.User{}, ErrInvalidCredentials
	}
	u.ResetFailedLogins()
	if err := s.directory.Save(ctx, u); err != nil {
		return user.User{}, err
	}

	s.setCurrent(u)
	s.persistSnapshot(ctx, u)
	slog.Info("auth_event", "event", "login", "email", email, "role", u.Role)
	return u, nil
}

// Signup constructs a new user record with a generated identifier and an
// avatar derived from name initials, stores it, and logs it in. A
// gym_owner starts with no approval status until gym details are submitted.
func (s *Store) Signup(ctx context.Context, input SignupInput) (user.User, error) {
	if _, err := s.directory.GetByEmail(ctx, input.Email); err == nil {
		return user.User{}, ErrEmailAlreadyExists
	}

	u := user.User{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Name:      input.Name,
		Role:      input.Role,
		Avatar:    user.AvatarInitials(input.Name),
		CreatedAt: time.Now(),
	}
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}
	if err := u.SetPassword(input.Password); err != nil {
		return user.User{}, err
	}
	if err := s.directory.Save(ctx, u); err != nil {
		return user.User{}, err
	}

	s.setCurrent(u)
	s.persistSnapshot(ctx, u)
	slog.Info("auth_event", "event", "signup", "email", u.Email, "role", u.Role)
	return u, nil
}

// SubmitGymDetails records the current gym owner's gym profile and moves
// approval to pending.
// PRE: a gym_owner is logged in
func (s *Store) SubmitGymDetails(ctx context.Context, details user.GymDetails) error {
	cur, ok := s.Current()
	if !ok {
		return ErrNotAuthenticated
	}
	u, err := s.directory.GetByID(ctx, cur.ID)
	if err != nil {
		return err
	}
	if err := u.SubmitGymDetails(details); err != nil {
		return err
	}
	if err := s.directory.Save(ctx, u); err != nil {
		return err
	}

	s.setCurrent(u)
	s.persistSnapshot(ctx, u)
	slog.Info("auth_event", "event", "gym_details_submitted", "user", u.ID)
	return nil
}

// Refresh reloads the current user from the directory, picking up changes
// made elsewhere (e.g. an admin approval decision).
func (s *Store) Refresh(ctx context.Context) error {
	cur, ok := s.Current()
	if !ok {
		return ErrNotAuthenticated
	}
	u, err := s.directory.GetByID(ctx, cur.ID)
	if err != nil {
		return err
	}
	s.setCurrent(u)
	s.persistSnapshot(ctx, u)
	return nil
}

// Logout clears the current user from memory and from persisted storage.
// Idempotent: safe to call when already logged out.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	cur := s.current
	s.current = nil
	s.loading = false
	s.mu.Unlock()

	if cur == nil {
		return nil
	}
	if s.snapshots != nil {
		if err := s.snapshots.DeleteScope(ctx, cur.ID); err != nil {
			s.notify()
			return err
		}
	}
	slog.Info("auth_event", "event", "logout", "user", cur.ID)
	s.notify()
	return nil
}

// Current returns a copy of the authenticated user, if any.
func (s *Store) Current() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return user.User{}, false
	}
	return *s.current, true
}

// IsAuthenticated reports whether a user is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// IsLoading reports whether session restoration is still in progress.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Scope returns the persistence scope (the user id) for the session, or
// "" when logged out.
func (s *Store) Scope() string {
	cur, ok := s.Current()
	if !ok {
		return ""
	}
	return cur.ID
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) setCurrent(u user.User) {
	s.mu.Lock()
	s.current = &u
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// persistSnapshot writes the minimal session slice. Persistence failures
// are logged, not surfaced; losing reload-restore is not fatal.
func (s *Store) persistSnapshot(ctx context.Context, u user.User) {
	if s.snapshots == nil {
		return
	}
	snap := Snapshot{ID: u.ID, Email: u.Email, Role: u.Role, ApprovalStatus: u.ApprovalStatus}
	raw, err := json.Marshal(snap)
	if err != nil {
		slog.Error("session_event", "event", "snapshot_encode", "error", err.Error())
		return
	}
	if err := s.snapshots.Put(ctx, u.ID, snapshot.NamespaceSession, raw); err != nil {
		slog.Error("session_event", "event", "snapshot_persist", "error", err.Error())
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

func validRole(role string) bool {
	for _, r := range user.ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
