package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymhub/internal/adapters/email"
	"gymhub/internal/domain/user"
)

// TokenTTL is how long a verification link stays valid.
const TokenTTL = 24 * time.Hour

// DirectoryForVerification defines the store interface needed by the
// verification orchestrators.
type DirectoryForVerification interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, value user.User) error
	SaveVerificationToken(ctx context.Context, token user.VerificationToken) error
	GetVerificationToken(ctx context.Context, token string) (user.VerificationToken, error)
	InvalidateTokensForUser(ctx context.Context, userID string) error
}

// SendVerificationInput carries input for the orchestrator.
type SendVerificationInput struct {
	UserID string
}

// SendVerificationDeps holds dependencies for SendVerification.
type SendVerificationDeps struct {
	Directory  DirectoryForVerification
	Sender     email.Sender
	BaseURL    string
	GenerateID func() string
	Now        func() time.Time
}

// ErrAlreadyVerified aliases the domain error so callers can match either.
var ErrAlreadyVerified = user.ErrAlreadyVerified

// ExecuteSendVerification issues a fresh verification token and emails the
// link. Earlier tokens for the same user are invalidated first.
// PRE: the user exists and is not yet verified
// POST: exactly one live token exists for the user
func ExecuteSendVerification(ctx context.Context, input SendVerificationInput, deps SendVerificationDeps) error {
	u, err := deps.Directory.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}

	if err := deps.Directory.InvalidateTokensForUser(ctx, u.ID); err != nil {
		return err
	}

	now := deps.Now()
	token := user.VerificationToken{
		ID:        deps.GenerateID(),
		UserID:    u.ID,
		Token:     deps.GenerateID(),
		ExpiresAt: now.Add(TokenTTL),
		CreatedAt: now,
	}
	if err := deps.Directory.SaveVerificationToken(ctx, token); err != nil {
		return err
	}

	msg := email.VerificationMessage(u.Email, u.Name, deps.BaseURL, token.Token)
	if _, err := deps.Sender.Send(ctx, msg); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "verification_sent", "user_id", u.ID, "email", u.Email)
	return nil
}
