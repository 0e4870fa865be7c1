package web

import (
	"errors"
	"net/http"

	"gymhub/internal/adapters/http/middleware"
	"gymhub/internal/domain/user"
)

// requireRole resolves the entry and checks the session role. JSON
// endpoints answer 401/403 instead of redirecting; redirects belong to
// the page guard.
func requireRole(w http.ResponseWriter, r *http.Request, role string) (*middleware.Entry, bool) {
	entry, ok := currentEntry(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return nil, false
	}
	u, authed := entry.Session.Current()
	if !authed {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return nil, false
	}
	if u.Role != role {
		writeMessage(w, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return entry, true
}

// handleOwnerGym handles POST /api/owner/gym (submit details for
// approval) and GET /api/owner/gym (current submission).
func handleOwnerGym(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireRole(w, r, user.RoleGymOwner)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		u, _ := entry.Session.Current()
		writeData(w, http.StatusOK, map[string]any{
			"gym":             u.Gym,
			"approval_status": u.ApprovalStatus,
		})

	case http.MethodPost:
		var in user.GymDetails
		if err := strictDecode(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := entry.Session.SubmitGymDetails(r.Context(), in); err != nil {
			if errors.Is(err, user.ErrInvalidGymDetails) {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			internalError(w, err)
			return
		}
		writeData(w, http.StatusAccepted, sessionPayload(entry))

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleOwnerMembers handles GET /api/owner/members: the gym's member
// roster from the backend.
func handleOwnerMembers(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireRole(w, r, user.RoleGymOwner)
	if !ok {
		return
	}
	u, _ := entry.Session.Current()
	if u.ApprovalStatus != user.ApprovalApproved {
		writeMessage(w, http.StatusForbidden, "gym is not approved yet")
		return
	}

	members, err := api.MembershipsForGym(r.Context(), apiToken(entry), u.ID)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, members)
}
