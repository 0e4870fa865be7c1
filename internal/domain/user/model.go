package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
	MaxNameLength  = 120
)

// Role constants
const (
	RoleGymOwner = "gym_owner"
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// Approval status constants. Approval is meaningful only for gym owners;
// an empty status means gym details have not been submitted yet.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleGymOwner, RoleCustomer, RoleVendor, RoleAdmin}

// Domain errors
var (
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrInvalidEmail      = errors.New("email must contain '@'")
	ErrInvalidRole       = errors.New("role must be one of: gym_owner, customer, vendor, admin")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters")
	ErrWrongPassword     = errors.New("incorrect email or password")
	ErrNotGymOwner       = errors.New("only gym owners can submit gym details")
	ErrNoGymDetails      = errors.New("gym details have not been submitted")
	ErrAlreadyDecided    = errors.New("gym approval has already been decided")
	ErrNotPendingReview  = errors.New("gym is not pending review")
	ErrTokenExpired      = errors.New("verification link has expired")
	ErrTokenInvalid      = errors.New("verification token is invalid")
	ErrAlreadyVerified   = errors.New("email is already verified")
	ErrInvalidGymDetails = errors.New("gym details must include a name and location")
)

// GymPlan is one membership plan offered by a gym.
type GymPlan struct {
	ID       string
	Name     string
	Price    int // cents
	Duration string
}

// GymDetails holds the gym profile a gym_owner submits for approval.
type GymDetails struct {
	Name      string
	Location  string
	Contact   string
	Amenities []string
	Plans     []GymPlan
	Employees []string
}

// User holds state for the User concept. One record per directory entry;
// the session layer keeps the authenticated copy for the session lifetime.
type User struct {
	ID             string
	Email          string
	Name           string
	Role           string
	Avatar         string
	ApprovalStatus string // empty until gym details are submitted (gym_owner only)
	Gym            *GymDetails
	EmailVerified  bool
	PasswordHash   string
	CreatedAt      time.Time
	FailedLogins   int
	LockedUntil    time.Time
}

// VerificationToken represents a time-limited token for email verification.
type VerificationToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return errors.New("name cannot exceed 120 characters")
	}
	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 12 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the user is currently locked out.
// INVARIANT: User fields are not mutated
func (u *User) IsLocked() bool {
	if u.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(u.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the user after 5 failures.
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (u *User) RecordFailedLogin() {
	u.FailedLogins++
	if u.FailedLogins >= 5 {
		u.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
func (u *User) ResetFailedLogins() {
	u.FailedLogins = 0
	u.LockedUntil = time.Time{}
}

// HasGymDetails returns true once the gym owner has submitted gym details.
// INVARIANT: User fields are not mutated
func (u *User) HasGymDetails() bool {
	return u.ApprovalStatus != ""
}

// SubmitGymDetails records the gym profile and moves approval to pending.
// PRE: Role is gym_owner; details include a name and location
// POST: Gym is set, ApprovalStatus is pending
func (u *User) SubmitGymDetails(details GymDetails) error {
	if u.Role != RoleGymOwner {
		return ErrNotGymOwner
	}
	if strings.TrimSpace(details.Name) == "" || strings.TrimSpace(details.Location) == "" {
		return ErrInvalidGymDetails
	}
	u.Gym = &details
	u.ApprovalStatus = ApprovalPending
	return nil
}

// DecideApproval transitions a pending gym to approved or rejected.
// PRE: ApprovalStatus is pending; approve indicates the decision
// POST: ApprovalStatus is approved or rejected
func (u *User) DecideApproval(approve bool) error {
	if u.ApprovalStatus == "" {
		return ErrNoGymDetails
	}
	if u.ApprovalStatus != ApprovalPending {
		return ErrAlreadyDecided
	}
	if approve {
		u.ApprovalStatus = ApprovalApproved
	} else {
		u.ApprovalStatus = ApprovalRejected
	}
	return nil
}

// VerifyEmail marks the email as verified.
// PRE: EmailVerified is false
// POST: EmailVerified is true
func (u *User) VerifyEmail() error {
	if u.EmailVerified {
		return ErrAlreadyVerified
	}
	u.EmailVerified = true
	return nil
}

// IsAdmin returns true if the user has the admin role.
// INVARIANT: User fields are not mutated
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AvatarInitials derives a two-letter avatar from a display name.
// "Jane van Dyk" -> "JD", "Cher" -> "CH", "" -> "?".
func AvatarInitials(name string) string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		r := []rune(fields[0])
		if len(r) == 1 {
			return strings.ToUpper(string(r[0]))
		}
		return strings.ToUpper(string(r[0:2]))
	default:
		first := []rune(fields[0])
		last := []rune(fields[len(fields)-1])
		return strings.ToUpper(string(first[0]) + string(last[0]))
	}
}

// IsExpired returns true if the verification token has expired.
// INVARIANT: Token fields are not mutated
func (t *VerificationToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Invalidate marks the token as used.
func (t *VerificationToken) Invalidate() {
	t.Used = true
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
