package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymhub/internal/adapters/email"
	"gymhub/internal/domain/user"
)

// DirectoryForApproval defines the store interface needed by the approval
// orchestrator.
type DirectoryForApproval interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, value user.User) error
}

// DecideGymApprovalInput carries input for the orchestrator.
type DecideGymApprovalInput struct {
	OwnerID string
	Approve bool
	AdminID string
}

// DecideGymApprovalDeps holds dependencies for DecideGymApproval.
type DecideGymApprovalDeps struct {
	Directory DirectoryForApproval
	Sender    email.Sender
}

var (
	ErrNotGymOwner         = errors.New("user is not a gym owner")
	ErrNoPendingSubmission = errors.New("gym owner has no pending submission")
)

// ExecuteDecideGymApproval records an admin's approve/reject decision for
// a pending gym submission and notifies the owner.
// PRE: the owner has a pending submission
// POST: approval status is approved or rejected; owner is emailed
func ExecuteDecideGymApproval(ctx context.Context, input DecideGymApprovalInput, deps DecideGymApprovalDeps) error {
	owner, err := deps.Directory.GetByID(ctx, input.OwnerID)
	if err != nil {
		return err
	}
	if owner.Role != user.RoleGymOwner {
		return ErrNotGymOwner
	}
	if owner.ApprovalStatus != user.ApprovalPending {
		return ErrNoPendingSubmission
	}

	if err := owner.DecideApproval(input.Approve); err != nil {
		return err
	}
	if err := deps.Directory.Save(ctx, owner); err != nil {
		return err
	}

	gymName := ""
	if owner.Gym != nil {
		gymName = owner.Gym.Name
	}
	if deps.Sender != nil {
		// Notification failure never rolls the decision back
		if _, err := deps.Sender.Send(ctx, email.ApprovalMessage(owner.Email, gymName, input.Approve)); err != nil {
			slog.Error("approval_email_failed", "owner_id", owner.ID, "error", err)
		}
	}

	slog.Info("admin_event", "event", "gym_approval_decided",
		"owner_id", owner.ID, "approved", input.Approve, "admin_id", input.AdminID)
	return nil
}
