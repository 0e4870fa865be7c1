package web

import (
	"net/http"

	"gymhub/internal/domain/nav"
	"gymhub/internal/domain/user"
)

// registerRoutes attaches every handler to the mux. Method dispatch
// happens inside the handlers.
func registerRoutes(mux *http.ServeMux) {
	// Session lifecycle
	mux.HandleFunc("/api/session", handleSession)
	mux.HandleFunc("/api/session/login", handleLogin)
	mux.HandleFunc("/api/session/signup", handleSignup)
	mux.HandleFunc("/api/session/logout", handleLogout)
	mux.HandleFunc("/api/session/refresh", handleSessionRefresh)
	mux.HandleFunc("/api/session/verification", handleResendVerification)
	mux.HandleFunc("/verify", handleVerifyEmail)

	// Route guard and navigation
	mux.HandleFunc("/api/guard", handleGuardCheck)
	mux.HandleFunc("/api/nav", handleNav)

	// Guarded role areas
	for _, path := range []string{
		"/owner/onboarding", "/owner/pending", "/owner/dashboard",
		"/owner/members", "/owner/plans", "/owner/announcements", "/owner/settings",
	} {
		mux.HandleFunc(path, guardedPage(user.RoleGymOwner, path))
	}
	for _, entry := range nav.ForRole(user.RoleCustomer) {
		mux.HandleFunc(entry.Path, guardedPage(user.RoleCustomer, entry.Path))
	}
	for _, entry := range nav.ForRole(user.RoleVendor) {
		mux.HandleFunc(entry.Path, guardedPage(user.RoleVendor, entry.Path))
	}
	for _, entry := range nav.ForRole(user.RoleAdmin) {
		mux.HandleFunc(entry.Path, guardedPage(user.RoleAdmin, entry.Path))
	}

	// Gym owner API
	mux.HandleFunc("/api/owner/gym", handleOwnerGym)
	mux.HandleFunc("/api/owner/members", handleOwnerMembers)

	// Admin API
	mux.HandleFunc("/api/admin/approvals", handleAdminApprovals)
	mux.HandleFunc("/api/admin/approvals/", handleAdminDecision)
	mux.HandleFunc("/api/admin/users", handleAdminUsers)
	mux.HandleFunc("/api/admin/announcements", handleAdminAnnouncements)
	mux.HandleFunc("/api/admin/announcements/", handleAdminAnnouncementAction)

	// Announcements (any authenticated role)
	mux.HandleFunc("/api/announcements", handleAnnouncements)

	// Memberships and catalog
	mux.HandleFunc("/api/memberships", handleMemberships)
	mux.HandleFunc("/api/memberships/", handleMembershipCancel)
	mux.HandleFunc("/api/gyms", handleGyms)
	mux.HandleFunc("/api/gyms/filters", handleGymFilters)
	mux.HandleFunc("/api/gyms/", handleGymFavorite)
	mux.HandleFunc("/api/products", handleProducts)

	// Cart
	mux.HandleFunc("/api/cart", handleCart)
	mux.HandleFunc("/api/cart/items", handleCartItems)
	mux.HandleFunc("/api/cart/items/", handleCartItem)
	mux.HandleFunc("/api/cart/checkout", handleCheckout)

	// Ephemeral UI state
	mux.HandleFunc("/api/ui/sidebar", handleUISidebar)
	mux.HandleFunc("/api/ui/toasts", handleUIToasts)
	mux.HandleFunc("/api/ui/toasts/", handleUIToasts)

	// Uploads
	mux.HandleFunc("/api/upload", handleUpload)

	// Public pages
	mux.HandleFunc("/login", handleLoginPage)
	mux.HandleFunc("/", handleHome)
}

// handleLoginPage always renders; logged-in users are bounced to their
// role home by the front end after reading the session.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{"path": "/login"})
}

// handleHome answers the public landing shell with the session state so
// the front end can route by role.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	entry, ok := currentEntry(r)
	if !ok {
		writeData(w, http.StatusOK, sessionView{Nav: []nav.Entry{}})
		return
	}
	writeData(w, http.StatusOK, sessionPayload(entry))
}
