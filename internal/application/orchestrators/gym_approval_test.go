package orchestrators_test

import (
	"context"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"gymhub/internal/adapters/email"
	"gymhub/internal/application/orchestrators"
	"gymhub/internal/domain/user"
)

func TestExecuteDecideGymApproval(t *testing.T) {
	gym := &user.GymDetails{Name: "Ironworks", Location: "Wellington", Contact: "021 000 000"}

	tests := []struct {
		name       string
		owner      user.User
		approve    bool
		wantErr    error
		wantStatus string
	}{
		{
			name:       "approve pending owner",
			owner:      user.User{Email: "o@gym.nz", Name: "O", Role: user.RoleGymOwner, ApprovalStatus: user.ApprovalPending, Gym: gym},
			approve:    true,
			wantStatus: user.ApprovalApproved,
		},
		{
			name:       "reject pending owner",
			owner:      user.User{Email: "o@gym.nz", Name: "O", Role: user.RoleGymOwner, ApprovalStatus: user.ApprovalPending, Gym: gym},
			approve:    false,
			wantStatus: user.ApprovalRejected,
		},
		{
			name:    "owner without submission",
			owner:   user.User{Email: "o@gym.nz", Name: "O", Role: user.RoleGymOwner},
			approve: true,
			wantErr: orchestrators.ErrNoPendingSubmission,
		},
		{
			name:    "customer is not a gym owner",
			owner:   user.User{Email: "c@gym.nz", Name: "C", Role: user.RoleCustomer},
			approve: true,
			wantErr: orchestrators.ErrNotGymOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			dir := newDirectory(t)
			sender := email.NewRecorderSender()
			owner := seedUser(t, dir, tt.owner)

			err := orchestrators.ExecuteDecideGymApproval(ctx, orchestrators.DecideGymApprovalInput{
				OwnerID: owner.ID,
				Approve: tt.approve,
				AdminID: "admin-1",
			}, orchestrators.DecideGymApprovalDeps{Directory: dir, Sender: sender})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(sender.Sent()) != 0 {
					t.Error("rejected decision still sent email")
				}
				return
			}

			got, gerr := dir.GetByID(ctx, owner.ID)
			if gerr != nil {
				t.Fatalf("GetByID() error = %v", gerr)
			}
			if got.ApprovalStatus != tt.wantStatus {
				t.Errorf("ApprovalStatus = %q, want %q", got.ApprovalStatus, tt.wantStatus)
			}
			sent := sender.Sent()
			if len(sent) != 1 || sent[0].To != owner.Email {
				t.Errorf("notification = %+v", sent)
			}
		})
	}
}

func TestExecuteSeedAdmin(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t)

	if err := orchestrators.ExecuteSeedAdmin(ctx, dir, "admin@gymhub.nz", "admin-password-123"); err != nil {
		t.Fatalf("ExecuteSeedAdmin() error = %v", err)
	}
	admin, err := dir.GetByEmail(ctx, "admin@gymhub.nz")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if admin.Role != user.RoleAdmin || !admin.EmailVerified {
		t.Errorf("seeded admin = %+v", admin)
	}
	if err := admin.CheckPassword("admin-password-123"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}

	// A populated directory is left alone
	if err := orchestrators.ExecuteSeedAdmin(ctx, dir, "other@gymhub.nz", "another-password-123"); err != nil {
		t.Fatalf("second seed error = %v", err)
	}
	if _, err := dir.GetByEmail(ctx, "other@gymhub.nz"); err == nil {
		t.Error("seed ran against a populated directory")
	}
}
