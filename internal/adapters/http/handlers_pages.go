package web

import (
	"net/http"

	"gymhub/internal/domain/guard"
	"gymhub/internal/domain/nav"
)

// pageView is the shell payload for a guarded page: enough for the front
// end to render chrome before fetching data.
type pageView struct {
	Path    string      `json:"path"`
	State   guard.State `json:"state"`
	Nav     []nav.Entry `json:"nav"`
	Session sessionView `json:"session"`
}

// guardSnapshot builds the guard's view of the request's session.
func guardSnapshot(r *http.Request) guard.Snapshot {
	entry, ok := currentEntry(r)
	if !ok {
		return guard.Snapshot{}
	}
	snap := guard.Snapshot{Loading: entry.Session.IsLoading()}
	u, authed := entry.Session.Current()
	if !authed {
		return snap
	}
	snap.Authenticated = true
	snap.Role = u.Role
	snap.ApprovalStatus = u.ApprovalStatus
	return snap
}

// guardedPage returns a handler for one protected path. The guard runs
// before anything is written: a failed check produces a redirect and no
// page content.
func guardedPage(requiredRole, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := guard.Evaluate(guardSnapshot(r), requiredRole, path)
		switch decision.Action {
		case guard.ActionWait:
			writeData(w, http.StatusOK, pageView{Path: path, State: decision.State, Nav: []nav.Entry{}})
		case guard.ActionRedirect:
			http.Redirect(w, r, decision.Target, http.StatusSeeOther)
		default:
			entry, _ := currentEntry(r)
			view := pageView{
				Path:    path,
				State:   decision.State,
				Session: sessionPayload(entry),
			}
			view.Nav = view.Session.Nav
			writeData(w, http.StatusOK, view)
		}
	}
}

// handleGuardCheck handles GET /api/guard?role=...&path=... so the front
// end can re-evaluate without navigating.
func handleGuardCheck(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	path := r.URL.Query().Get("path")
	if role == "" {
		writeMessage(w, http.StatusBadRequest, "role is required")
		return
	}
	decision := guard.Evaluate(guardSnapshot(r), role, path)
	writeData(w, http.StatusOK, map[string]any{
		"action": decision.Action,
		"target": decision.Target,
		"state":  decision.State,
	})
}

// handleNav handles GET /api/nav.
func handleNav(w http.ResponseWriter, r *http.Request) {
	entry, ok := currentEntry(r)
	if !ok {
		writeData(w, http.StatusOK, []nav.Entry{})
		return
	}
	u, authed := entry.Session.Current()
	if !authed {
		writeData(w, http.StatusOK, []nav.Entry{})
		return
	}
	writeData(w, http.StatusOK, nav.ForRole(u.Role))
}
