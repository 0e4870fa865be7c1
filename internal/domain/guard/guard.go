// Package guard decides whether a protected area may render for the
// current session. The decision is a pure function over session state and
// the requested path, so it can be re-evaluated on every request and
// unit-tested without an HTTP stack.
package guard

import "gymhub/internal/domain/user"

// State enumerates where a request sits in the guard ladder.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateWrongRole       State = "wrong_role"
	StateNoGymDetails    State = "no_gym_details"
	StatePendingApproval State = "pending_approval"
	StateReady           State = "ready"
)

// Action is what the caller must do with the request.
type Action int

const (
	// ActionWait renders nothing; session restoration is still in flight.
	ActionWait Action = iota
	// ActionRender lets the protected content render.
	ActionRender
	// ActionRedirect sends the user to Decision.Target before any content
	// is produced.
	ActionRedirect
)

// Decision is the outcome of evaluating the guard for one request.
type Decision struct {
	Action Action
	Target string // set when Action is ActionRedirect
	State  State
}

// Snapshot is the slice of session state the guard depends on. It is
// rebuilt from the session store on every evaluation; the guard itself
// holds nothing.
type Snapshot struct {
	Loading        bool
	Authenticated  bool
	Role           string
	ApprovalStatus string // empty until gym details are submitted (gym_owner)
}

// Well-known paths the guard redirects between.
const (
	HomePath            = "/"
	LoginPath           = "/login"
	OwnerOnboardingPath = "/owner/onboarding"
	OwnerPendingPath    = "/owner/pending"
	OwnerDashboardPath  = "/owner/dashboard"
)

// Evaluate applies the guard ladder for an area restricted to requiredRole:
//
//	LOADING -> UNAUTHENTICATED -> {WRONG_ROLE, ROLE_OK}
//
// and, for gym owners, ROLE_OK further branches
//
//	NO_GYM_DETAILS -> PENDING_APPROVAL -> READY
//
// A user who fails any check never gets ActionRender; content must not be
// produced before the redirect.
// INVARIANT: Evaluate has no side effects
func Evaluate(s Snapshot, requiredRole, path string) Decision {
	if s.Loading {
		return Decision{Action: ActionWait, State: StateLoading}
	}
	if !s.Authenticated {
		return Decision{Action: ActionRedirect, Target: LoginPath, State: StateUnauthenticated}
	}
	if s.Role != requiredRole {
		return Decision{Action: ActionRedirect, Target: HomePath, State: StateWrongRole}
	}
	if requiredRole == user.RoleGymOwner {
		return evaluateOwner(s, path)
	}
	return Decision{Action: ActionRender, State: StateReady}
}

// evaluateOwner applies the gym_owner approval ladder. Rejected gyms stay
// on the waiting screen, which shows the outcome.
func evaluateOwner(s Snapshot, path string) Decision {
	switch s.ApprovalStatus {
	case "":
		if path != OwnerOnboardingPath {
			return Decision{Action: ActionRedirect, Target: OwnerOnboardingPath, State: StateNoGymDetails}
		}
		return Decision{Action: ActionRender, State: StateNoGymDetails}
	case user.ApprovalPending, user.ApprovalRejected:
		if path != OwnerPendingPath {
			return Decision{Action: ActionRedirect, Target: OwnerPendingPath, State: StatePendingApproval}
		}
		return Decision{Action: ActionRender, State: StatePendingApproval}
	default: // approved
		if path == OwnerOnboardingPath || path == OwnerPendingPath {
			return Decision{Action: ActionRedirect, Target: OwnerDashboardPath, State: StateReady}
		}
		return Decision{Action: ActionRender, State: StateReady}
	}
}
