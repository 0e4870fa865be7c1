package nav

import "gymhub/internal/domain/user"

// Entry is one sidebar navigation item. Entries are static per role and
// never mutated at runtime.
type Entry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var byRole = map[string][]Entry{
	user.RoleGymOwner: {
		{Label: "Dashboard", Path: "/owner/dashboard", Icon: "layout-dashboard"},
		{Label: "Members", Path: "/owner/members", Icon: "users"},
		{Label: "Plans", Path: "/owner/plans", Icon: "credit-card"},
		{Label: "Announcements", Path: "/owner/announcements", Icon: "megaphone"},
		{Label: "Settings", Path: "/owner/settings", Icon: "settings"},
	},
	user.RoleCustomer: {
		{Label: "Home", Path: "/customer/dashboard", Icon: "home"},
		{Label: "Find Gyms", Path: "/customer/gyms", Icon: "search"},
		{Label: "My Memberships", Path: "/customer/memberships", Icon: "badge-check"},
		{Label: "Marketplace", Path: "/customer/marketplace", Icon: "shopping-bag"},
		{Label: "Cart", Path: "/customer/cart", Icon: "shopping-cart"},
	},
	user.RoleVendor: {
		{Label: "Dashboard", Path: "/vendor/dashboard", Icon: "layout-dashboard"},
		{Label: "Products", Path: "/vendor/products", Icon: "package"},
		{Label: "Orders", Path: "/vendor/orders", Icon: "clipboard-list"},
		{Label: "Settings", Path: "/vendor/settings", Icon: "settings"},
	},
	user.RoleAdmin: {
		{Label: "Dashboard", Path: "/admin/dashboard", Icon: "layout-dashboard"},
		{Label: "Gym Approvals", Path: "/admin/approvals", Icon: "shield-check"},
		{Label: "Users", Path: "/admin/users", Icon: "users"},
		{Label: "Announcements", Path: "/admin/announcements", Icon: "megaphone"},
	},
}

// ForRole returns the ordered navigation entries for a role. Unknown roles
// get an empty set. The returned slice is a copy; callers may not mutate
// the shared tables through it.
func ForRole(role string) []Entry {
	entries, ok := byRole[role]
	if !ok {
		return []Entry{}
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
