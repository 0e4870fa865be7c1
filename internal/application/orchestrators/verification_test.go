package orchestrators_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gymhub/internal/adapters/email"
	"gymhub/internal/adapters/storage"
	"gymhub/internal/adapters/storage/directory"
	"gymhub/internal/application/orchestrators"
	"gymhub/internal/domain/user"
)

func newDirectory(t *testing.T) *directory.SQLiteStore {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return directory.NewSQLiteStore(db)
}

func seedUser(t *testing.T, dir *directory.SQLiteStore, u user.User) user.User {
	t.Helper()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if err := dir.Save(context.Background(), u); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return u
}

func TestExecuteSendVerification(t *testing.T) {
	dir := newDirectory(t)
	sender := email.NewRecorderSender()
	ctx := context.Background()

	u := seedUser(t, dir, user.User{Email: "owner@gym.nz", Name: "Owner", Role: user.RoleGymOwner})

	deps := orchestrators.SendVerificationDeps{
		Directory:  dir,
		Sender:     sender,
		BaseURL:    "http://localhost:8080",
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	}

	if err := orchestrators.ExecuteSendVerification(ctx, orchestrators.SendVerificationInput{UserID: u.ID}, deps); err != nil {
		t.Fatalf("ExecuteSendVerification() error = %v", err)
	}

	sent := sender.Sent()
	if len(sent) != 1 || sent[0].To != "owner@gym.nz" {
		t.Fatalf("sent = %+v", sent)
	}
	if !strings.Contains(sent[0].HTML, "/verify?token=") {
		t.Errorf("message lacks verification link: %s", sent[0].HTML)
	}

	// A second send invalidates the first token
	if err := orchestrators.ExecuteSendVerification(ctx, orchestrators.SendVerificationInput{UserID: u.ID}, deps); err != nil {
		t.Fatalf("second send error = %v", err)
	}
	if len(sender.Sent()) != 2 {
		t.Error("second verification email not sent")
	}
}

func TestExecuteSendVerification_AlreadyVerified(t *testing.T) {
	dir := newDirectory(t)
	u := seedUser(t, dir, user.User{Email: "v@gym.nz", Name: "V", Role: user.RoleCustomer, EmailVerified: true})

	deps := orchestrators.SendVerificationDeps{
		Directory:  dir,
		Sender:     email.NewRecorderSender(),
		BaseURL:    "http://localhost:8080",
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	}
	err := orchestrators.ExecuteSendVerification(context.Background(), orchestrators.SendVerificationInput{UserID: u.ID}, deps)
	if !errors.Is(err, orchestrators.ErrAlreadyVerified) {
		t.Errorf("error = %v, want ErrAlreadyVerified", err)
	}
}

func TestExecuteVerifyEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		token   func(userID string) user.VerificationToken
		wantErr error
	}{
		{
			name: "valid token verifies the user",
			token: func(userID string) user.VerificationToken {
				return user.VerificationToken{
					ID: uuid.New().String(), UserID: userID, Token: "tok-valid",
					ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
				}
			},
		},
		{
			name: "expired token is rejected",
			token: func(userID string) user.VerificationToken {
				return user.VerificationToken{
					ID: uuid.New().String(), UserID: userID, Token: "tok-expired",
					ExpiresAt: time.Now().Add(-time.Hour), CreatedAt: time.Now().Add(-25 * time.Hour),
				}
			},
			wantErr: orchestrators.ErrTokenExpired,
		},
		{
			name: "used token is rejected",
			token: func(userID string) user.VerificationToken {
				return user.VerificationToken{
					ID: uuid.New().String(), UserID: userID, Token: "tok-used",
					ExpiresAt: time.Now().Add(time.Hour), Used: true, CreatedAt: time.Now(),
				}
			},
			wantErr: orchestrators.ErrTokenUsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newDirectory(t)
			u := seedUser(t, dir, user.User{Email: "c@gym.nz", Name: "C", Role: user.RoleCustomer})
			token := tt.token(u.ID)
			if err := dir.SaveVerificationToken(ctx, token); err != nil {
				t.Fatalf("SaveVerificationToken() error = %v", err)
			}

			deps := orchestrators.VerifyEmailDeps{Directory: dir, Now: time.Now}
			err := orchestrators.ExecuteVerifyEmail(ctx, orchestrators.VerifyEmailInput{Token: token.Token}, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			got, gerr := dir.GetByID(ctx, u.ID)
			if gerr != nil {
				t.Fatalf("GetByID() error = %v", gerr)
			}
			if wantVerified := tt.wantErr == nil; got.EmailVerified != wantVerified {
				t.Errorf("EmailVerified = %v, want %v", got.EmailVerified, wantVerified)
			}
		})
	}
}

func TestExecuteVerifyEmail_SingleUse(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t)
	u := seedUser(t, dir, user.User{Email: "c@gym.nz", Name: "C", Role: user.RoleCustomer})

	token := user.VerificationToken{
		ID: uuid.New().String(), UserID: u.ID, Token: "tok-once",
		ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
	}
	if err := dir.SaveVerificationToken(ctx, token); err != nil {
		t.Fatalf("SaveVerificationToken() error = %v", err)
	}

	deps := orchestrators.VerifyEmailDeps{Directory: dir, Now: time.Now}
	if err := orchestrators.ExecuteVerifyEmail(ctx, orchestrators.VerifyEmailInput{Token: "tok-once"}, deps); err != nil {
		t.Fatalf("first redemption error = %v", err)
	}
	err := orchestrators.ExecuteVerifyEmail(ctx, orchestrators.VerifyEmailInput{Token: "tok-once"}, deps)
	if !errors.Is(err, orchestrators.ErrTokenUsed) {
		t.Errorf("second redemption error = %v, want ErrTokenUsed", err)
	}
}
