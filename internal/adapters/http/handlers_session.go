package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gymhub/internal/adapters/http/middleware"
	"gymhub/internal/application/orchestrators"
	"gymhub/internal/domain/nav"
	"gymhub/internal/domain/user"
	"gymhub/internal/session"
	"gymhub/internal/state"
)

// sessionView is what the front end needs to know about the session.
type sessionView struct {
	Authenticated bool        `json:"authenticated"`
	Loading       bool        `json:"loading"`
	User          *userView   `json:"user,omitempty"`
	Nav           []nav.Entry `json:"nav"`
}

type userView struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Avatar         string `json:"avatar"`
	ApprovalStatus string `json:"approval_status,omitempty"`
	EmailVerified  bool   `json:"email_verified"`
}

func sessionPayload(entry *middleware.Entry) sessionView {
	view := sessionView{
		Loading: entry.Session.IsLoading(),
		Nav:     []nav.Entry{},
	}
	u, ok := entry.Session.Current()
	if !ok {
		return view
	}
	view.Authenticated = true
	view.User = &userView{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Avatar:         u.Avatar,
		ApprovalStatus: u.ApprovalStatus,
		EmailVerified:  u.EmailVerified,
	}
	view.Nav = nav.ForRole(u.Role)
	return view
}

// establish registers a freshly authenticated entry and issues cookies.
func establish(w http.ResponseWriter, r *http.Request, entry *middleware.Entry, u user.User) error {
	entry.State = state.NewBundle(stores.Snapshots, u.ID)
	entry.State.Restore(r.Context())

	token, err := tokens.Mint(u.ID, u.Role, u.Email)
	if err != nil {
		return err
	}
	entry.SetBearerToken(token)

	cookie, err := registry.Create(entry)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(w, cookie)
	middleware.SetScopeCookie(w, u.ID)
	return nil
}

// handleLogin handles POST /api/session/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := registry.NewEntry("")
	u, err := entry.Session.Login(r.Context(), in.Email, in.Password)
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, session.ErrAccountLocked):
		writeMessage(w, http.StatusLocked, err.Error())
		return
	case err != nil:
		internalError(w, err)
		return
	}

	if err := establish(w, r, entry, u); err != nil {
		internalError(w, err)
		return
	}
	writeData(w, http.StatusOK, sessionPayload(entry))
}

// handleSignup handles POST /api/session/signup.
func handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := strictDecode(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Role == user.RoleAdmin {
		writeMessage(w, http.StatusForbidden, "cannot self-register as admin")
		return
	}

	entry := registry.NewEntry("")
	u, err := entry.Session.Signup(r.Context(), session.SignupInput{
		Email:    in.Email,
		Name:     in.Name,
		Password: in.Password,
		Role:     in.Role,
	})
	switch {
	case errors.Is(err, session.ErrEmailAlreadyExists):
		writeMessage(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := establish(w, r, entry, u); err != nil {
		internalError(w, err)
		return
	}

	// Verification email is best effort; signup already succeeded
	_ = orchestrators.ExecuteSendVerification(r.Context(), orchestrators.SendVerificationInput{UserID: u.ID}, orchestrators.SendVerificationDeps{
		Directory:  stores.Directory,
		Sender:     emailSender,
		BaseURL:    baseURL,
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	})

	writeData(w, http.StatusCreated, sessionPayload(entry))
}

// handleSession handles GET /api/session and POST /api/session/refresh.
func handleSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := currentEntry(r)
	if !ok {
		writeData(w, http.StatusOK, sessionView{Nav: []nav.Entry{}})
		return
	}
	writeData(w, http.StatusOK, sessionPayload(entry))
}

func handleSessionRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entry, ok := currentEntry(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return
	}
	if err := entry.Session.Refresh(r.Context()); err != nil {
		internalError(w, err)
		return
	}
	writeData(w, http.StatusOK, sessionPayload(entry))
}

// handleLogout handles POST /api/session/logout. Idempotent.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if cookie, err := r.Cookie("gymhub_session"); err == nil {
		registry.Delete(cookie.Value)
	}
	if entry, ok := currentEntry(r); ok {
		entry.State.Clear(r.Context())
		if err := entry.Session.Logout(r.Context()); err != nil {
			internalError(w, err)
			return
		}
	}
	middleware.ClearSessionCookies(w)
	writeMessage(w, http.StatusOK, "logged out")
}

// handleVerifyEmail handles GET /verify?token=... from the emailed link.
func handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteVerifyEmail(r.Context(), orchestrators.VerifyEmailInput{
		Token: r.URL.Query().Get("token"),
	}, orchestrators.VerifyEmailDeps{Directory: stores.Directory, Now: time.Now})
	switch {
	case errors.Is(err, orchestrators.ErrTokenExpired), errors.Is(err, orchestrators.ErrTokenUsed):
		writeMessage(w, http.StatusGone, err.Error())
	case err != nil:
		writeMessage(w, http.StatusBadRequest, "invalid verification link")
	default:
		http.Redirect(w, r, "/login?verified=1", http.StatusSeeOther)
	}
}

// handleResendVerification handles POST /api/session/verification.
func handleResendVerification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entry, ok := currentEntry(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return
	}
	u, _ := entry.Session.Current()
	err := orchestrators.ExecuteSendVerification(r.Context(), orchestrators.SendVerificationInput{UserID: u.ID}, orchestrators.SendVerificationDeps{
		Directory:  stores.Directory,
		Sender:     emailSender,
		BaseURL:    baseURL,
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	})
	switch {
	case errors.Is(err, orchestrators.ErrAlreadyVerified):
		writeMessage(w, http.StatusConflict, err.Error())
	case err != nil:
		internalError(w, err)
	default:
		writeMessage(w, http.StatusOK, "verification email sent")
	}
}
