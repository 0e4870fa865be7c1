package membership

import (
	"strings"
	"time"
)

// Membership status constants. The backend reports status in varying case;
// comparisons normalize with EqualFold.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// PlanSnapshot is the plan embedded in a membership at purchase time.
type PlanSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Duration string `json:"duration"`
}

// Membership is server-owned domain data; the client caches it wholesale
// and never patches individual records.
type Membership struct {
	ID         string       `json:"id"`
	ProfileID  string       `json:"profile_id"`
	GymID      string       `json:"gym_id"`
	PlanID     string       `json:"plan_id"`
	Status     string       `json:"status"`
	StartDate  time.Time    `json:"start_date"`
	EndDate    time.Time    `json:"end_date"`
	AutoRenew  bool         `json:"auto_renew"`
	VisitsUsed int          `json:"visits_used"`
	Plan       PlanSnapshot `json:"plan"`
}

// IsActive reports whether the membership status is active, ignoring case.
// INVARIANT: Membership fields are not mutated
func (m *Membership) IsActive() bool {
	return strings.EqualFold(m.Status, StatusActive)
}

// Active returns the first membership with active status, or nil if none.
// If the backend returns multiple active memberships this silently picks
// the first (upstream ambiguity, not resolved here).
func Active(list []Membership) *Membership {
	for i := range list {
		if list[i].IsActive() {
			return &list[i]
		}
	}
	return nil
}
