package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrTokenExpired = errors.New("verification token has expired")
	ErrTokenUsed    = errors.New("verification token has already been used")
)

// VerifyEmailInput carries input for the orchestrator.
type VerifyEmailInput struct {
	Token string
}

// VerifyEmailDeps holds dependencies for VerifyEmail.
type VerifyEmailDeps struct {
	Directory DirectoryForVerification
	Now       func() time.Time
}

// ExecuteVerifyEmail redeems a verification token and marks the user's
// email verified.
// PRE: token string is non-empty
// POST: on success the token is single-use spent and the user is verified
func ExecuteVerifyEmail(ctx context.Context, input VerifyEmailInput, deps VerifyEmailDeps) error {
	if input.Token == "" {
		return errors.New("token cannot be empty")
	}

	token, err := deps.Directory.GetVerificationToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if token.Used {
		return ErrTokenUsed
	}
	if token.IsExpired(deps.Now()) {
		return ErrTokenExpired
	}

	u, err := deps.Directory.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	if err := u.VerifyEmail(); err != nil {
		return err
	}
	if err := deps.Directory.Save(ctx, u); err != nil {
		return err
	}

	// Spend every outstanding token, not just the redeemed one
	if err := deps.Directory.InvalidateTokensForUser(ctx, u.ID); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "email_verified", "user_id", u.ID)
	return nil
}
