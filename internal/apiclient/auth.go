package apiclient

import (
	"context"
	"net/http"
)

// Account is the backend's wire shape for an authenticated user.
type Account struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Avatar         string `json:"avatar"`
	ApprovalStatus string `json:"approval_status"`
	EmailVerified  bool   `json:"email_verified"`
}

// AuthResponse pairs a bearer token with the account it authenticates.
type AuthResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"user"`
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out)
	return out, err
}

// Signup registers a new account and returns its first token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", "", req, &out)
	return out, err
}

// Me returns the account behind a token.
func (c *Client) Me(ctx context.Context, token string) (Account, error) {
	var out Account
	err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out)
	return out, err
}

// Logout invalidates the token server side. Failures are reported but the
// caller clears local state regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
