package directory

import (
	"context"

	domain "gymhub/internal/domain/user"
)

// Store persists the user directory.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Save(ctx context.Context, value domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
	SaveVerificationToken(ctx context.Context, token domain.VerificationToken) error
	GetVerificationToken(ctx context.Context, token string) (domain.VerificationToken, error)
	InvalidateTokensForUser(ctx context.Context, userID string) error
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit          int
	Offset         int
	Role           string
	ApprovalStatus string
}
