package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gymhub/internal/domain/user"
)

// DirectoryForSeed defines the store interface needed by SeedAdmin.
type DirectoryForSeed interface {
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, value user.User) error
}

// ExecuteSeedAdmin creates a default admin when the directory is empty.
// POST: an admin exists; re-running against a populated directory is a no-op
func ExecuteSeedAdmin(ctx context.Context, dir DirectoryForSeed, adminEmail, adminPassword string) error {
	count, err := dir.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := user.User{
		ID:            uuid.New().String(),
		Email:         adminEmail,
		Name:          "Administrator",
		Role:          user.RoleAdmin,
		Avatar:        user.AvatarInitials("Administrator"),
		EmailVerified: true,
		CreatedAt:     time.Now(),
	}
	if err := admin.Validate(); err != nil {
		return err
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := dir.Save(ctx, admin); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", adminEmail)
	return nil
}
