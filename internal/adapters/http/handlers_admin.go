package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	announcementStore "gymhub/internal/adapters/storage/announcement"
	directoryStore "gymhub/internal/adapters/storage/directory"
	"gymhub/internal/application/listutil"
	"gymhub/internal/application/orchestrators"
	announcementDomain "gymhub/internal/domain/announcement"
	"gymhub/internal/domain/user"
)

// handleAdminApprovals handles GET /api/admin/approvals: gym owners
// waiting on a decision.
func handleAdminApprovals(w http.ResponseWriter, r *http.Request) {
	_, ok := requireRole(w, r, user.RoleAdmin)
	if !ok {
		return
	}
	pending, err := stores.Directory.List(r.Context(), directoryStore.ListFilter{
		Role:           user.RoleGymOwner,
		ApprovalStatus: user.ApprovalPending,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	type pendingView struct {
		ID    string           `json:"id"`
		Email string           `json:"email"`
		Name  string           `json:"name"`
		Gym   *user.GymDetails `json:"gym"`
	}
	out := make([]pendingView, 0, len(pending))
	for _, p := range pending {
		out = append(out, pendingView{ID: p.ID, Email: p.Email, Name: p.Name, Gym: p.Gym})
	}
	writeData(w, http.StatusOK, out)
}

// handleAdminDecision handles POST /api/admin/approvals/{ownerID}.
func handleAdminDecision(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireRole(w, r, user.RoleAdmin)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ownerID := strings.TrimPrefix(r.URL.Path, "/api/admin/approvals/")
	if ownerID == "" {
		writeMessage(w, http.StatusBadRequest, "owner id is required")
		return
	}
	var in struct {
		Approve bool `json:"approve"`
	}
	if err := strictDecode(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin, _ := entry.Session.Current()
	err := orchestrators.ExecuteDecideGymApproval(r.Context(), orchestrators.DecideGymApprovalInput{
		OwnerID: ownerID,
		Approve: in.Approve,
		AdminID: admin.ID,
	}, orchestrators.DecideGymApprovalDeps{Directory: stores.Directory, Sender: emailSender})
	switch {
	case errors.Is(err, orchestrators.ErrNotGymOwner), errors.Is(err, orchestrators.ErrNoPendingSubmission):
		writeMessage(w, http.StatusConflict, err.Error())
	case err != nil:
		internalError(w, err)
	default:
		writeMessage(w, http.StatusOK, "decision recorded")
	}
}

// handleAdminUsers handles GET /api/admin/users with role filter and
// pagination query parameters.
func handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	_, ok := requireRole(w, r, user.RoleAdmin)
	if !ok {
		return
	}
	q := r.URL.Query()
	page := listutil.ParsePageParams(q)
	filters := listutil.ParseFilters(q, []string{"role", "approval_status"})

	users, err := stores.Directory.List(r.Context(), directoryStore.ListFilter{
		Role:           filters["role"],
		ApprovalStatus: filters["approval_status"],
		Limit:          page.PerPage,
		Offset:         page.Offset(),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{
			ID:             u.ID,
			Email:          u.Email,
			Name:           u.Name,
			Role:           u.Role,
			Avatar:         u.Avatar,
			ApprovalStatus: u.ApprovalStatus,
			EmailVerified:  u.EmailVerified,
		})
	}

	resp := map[string]any{"users": out, "page": page}
	if len(filters) == 0 {
		total, cerr := stores.Directory.Count(r.Context())
		if cerr == nil {
			resp["page_info"] = listutil.NewPageInfo(page, total)
		}
	}
	writeData(w, http.StatusOK, resp)
}

// handleAdminAnnouncements handles GET (all, drafts included) and POST
// (create draft) for /api/admin/announcements.
func handleAdminAnnouncements(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireRole(w, r, user.RoleAdmin)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := stores.Announcements.List(r.Context(), announcementStore.ListFilter{})
		if err != nil {
			internalError(w, err)
			return
		}
		writeData(w, http.StatusOK, items)

	case http.MethodPost:
		var in struct {
			Audience string `json:"audience"`
			Severity string `json:"severity"`
			Title    string `json:"title"`
			Content  string `json:"content"`
		}
		if err := strictDecode(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		admin, _ := entry.Session.Current()
		a := announcementDomain.Announcement{
			ID:        uuid.New().String(),
			Audience:  in.Audience,
			Status:    announcementDomain.StatusDraft,
			Severity:  in.Severity,
			Title:     in.Title,
			Content:   in.Content,
			CreatedBy: admin.ID,
			CreatedAt: time.Now(),
		}
		if a.Severity == "" {
			a.Severity = announcementDomain.SeverityInfo
		}
		if err := a.Validate(); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := stores.Announcements.Save(r.Context(), a); err != nil {
			internalError(w, err)
			return
		}
		writeData(w, http.StatusCreated, a)

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAdminAnnouncementAction handles POST .../{id}/publish and
// DELETE .../{id} under /api/admin/announcements/.
func handleAdminAnnouncementAction(w http.ResponseWriter, r *http.Request) {
	_, ok := requireRole(w, r, user.RoleAdmin)
	if !ok {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/announcements/")

	if r.Method == http.MethodDelete {
		if err := stores.Announcements.Delete(r.Context(), rest); err != nil {
			internalError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "announcement deleted")
		return
	}

	id, action, found := strings.Cut(rest, "/")
	if !found || action != "publish" || r.Method != http.MethodPost {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	a, err := stores.Announcements.GetByID(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "announcement not found")
		return
	}
	if err := a.Publish(time.Now()); err != nil {
		writeMessage(w, http.StatusConflict, err.Error())
		return
	}
	if err := stores.Announcements.Save(r.Context(), a); err != nil {
		internalError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}
