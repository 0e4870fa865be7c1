package web

import (
	"net/http"
	"strings"

	"gymhub/internal/adapters/http/middleware"
	"gymhub/internal/domain/cart"
	"gymhub/internal/domain/catalog"
)

// requireSession resolves an authenticated entry for role-agnostic
// endpoints.
func requireSession(w http.ResponseWriter, r *http.Request) (*middleware.Entry, bool) {
	entry, ok := currentEntry(r)
	if !ok || !entry.Session.IsAuthenticated() {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return nil, false
	}
	return entry, true
}

// handleMemberships handles GET /api/memberships: fetch from the backend
// into the membership store, then answer from the store. The cached list
// is served stale with an error flag when the backend is down.
func handleMemberships(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	ms := entry.State.Memberships
	u, _ := entry.Session.Current()

	ms.SetLoading(true)
	items, err := api.MembershipsForProfile(r.Context(), apiToken(entry), u.ID)
	ms.SetLoading(false)
	if err != nil {
		ms.SetError(err)
	} else {
		ms.SetMemberships(r.Context(), items)
	}

	out := map[string]any{
		"memberships": ms.Memberships(),
		"loading":     ms.Loading(),
	}
	if active, has := ms.Active(); has {
		out["active"] = active
	}
	if serr := ms.Err(); serr != nil {
		out["error"] = "could not refresh memberships"
	}
	writeData(w, http.StatusOK, out)
}

// handleMembershipCancel handles POST /api/memberships/{id}/cancel.
func handleMembershipCancel(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/memberships/")
	id, action, found := strings.Cut(rest, "/")
	if !found || action != "cancel" || id == "" {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	if err := api.CancelMembership(r.Context(), apiToken(entry), id); err != nil {
		upstreamError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "membership cancelled")
}

// handleGyms handles GET /api/gyms: fetch listings with the stored
// filter, cache them, and answer with the filtered view plus favorites.
func handleGyms(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	cs := entry.State.Catalog

	cs.SetLoading(true)
	gyms, err := api.Gyms(r.Context(), apiToken(entry), cs.Filter())
	cs.SetLoading(false)
	if err != nil {
		cs.SetError(err)
	} else {
		cs.SetGyms(gyms)
	}

	out := map[string]any{
		"gyms":      cs.FilteredGyms(),
		"filter":    cs.Filter(),
		"favorites": cs.Favorites(),
	}
	if serr := cs.Err(); serr != nil {
		out["error"] = "could not refresh gyms"
	}
	writeData(w, http.StatusOK, out)
}

// handleGymFilters handles PUT /api/gyms/filters and DELETE (reset).
func handleGymFilters(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	cs := entry.State.Catalog

	switch r.Method {
	case http.MethodPut:
		var in catalog.Filter
		if err := strictDecode(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if in.Amenities == nil {
			in.Amenities = []string{}
		}
		cs.SetFilter(r.Context(), in)
	case http.MethodDelete:
		cs.ResetFilters(r.Context())
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"filter": cs.Filter(),
		"gyms":   cs.FilteredGyms(),
	})
}

// handleGymFavorite handles POST /api/gyms/{id}/favorite (toggle).
func handleGymFavorite(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/gyms/")
	id, action, found := strings.Cut(rest, "/")
	if !found || action != "favorite" || id == "" {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	cs := entry.State.Catalog
	cs.ToggleFavorite(r.Context(), id)
	writeData(w, http.StatusOK, map[string]any{
		"favorites": cs.Favorites(),
		"favorite":  cs.IsFavorite(id),
	})
}

// handleProducts handles GET /api/products.
func handleProducts(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	cs := entry.State.Catalog

	products, err := api.Products(r.Context(), apiToken(entry))
	if err != nil {
		cs.SetError(err)
		upstreamError(w, err)
		return
	}
	cs.SetProducts(products)
	writeData(w, http.StatusOK, cs.Products())
}

// cartView is the cart payload with derived totals.
type cartView struct {
	Items []cart.Item `json:"items"`
	Total int         `json:"total"`
	Count int         `json:"count"`
}

func cartPayload(entry *middleware.Entry) cartView {
	c := entry.State.Cart
	return cartView{Items: c.Items(), Total: c.Total(), Count: c.Count()}
}

// handleCart handles GET /api/cart and POST /api/cart/items.
func handleCart(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeData(w, http.StatusOK, cartPayload(entry))
}

func handleCartItems(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in cart.Item
	if err := strictDecode(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := entry.State.Cart.Add(in); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusOK, cartPayload(entry))
}

// handleCartItem handles PUT (set quantity) and DELETE for
// /api/cart/items/{productID}.
func handleCartItem(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var in struct {
			Quantity int `json:"quantity"`
		}
		if err := strictDecode(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := entry.State.Cart.SetQuantity(productID, in.Quantity); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
	case http.MethodDelete:
		entry.State.Cart.Remove(productID)
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeData(w, http.StatusOK, cartPayload(entry))
}

// handleCheckout handles POST /api/cart/checkout: place the order
// upstream and empty the cart on success.
func handleCheckout(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	items := entry.State.Cart.Items()
	if len(items) == 0 {
		writeMessage(w, http.StatusBadRequest, "cart is empty")
		return
	}
	result, err := api.PlaceOrder(r.Context(), apiToken(entry), items)
	if err != nil {
		upstreamError(w, err)
		return
	}
	entry.State.Cart.Clear()
	entry.State.UI.PushToast("order placed", "success")
	writeData(w, http.StatusOK, result)
}

// handleUISidebar handles POST /api/ui/sidebar (toggle).
func handleUISidebar(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entry.State.UI.ToggleSidebar()
	writeData(w, http.StatusOK, map[string]bool{"open": entry.State.UI.SidebarOpen()})
}

// handleUIToasts handles GET /api/ui/toasts and DELETE
// /api/ui/toasts/{id}.
func handleUIToasts(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method == http.MethodDelete {
		id := strings.TrimPrefix(r.URL.Path, "/api/ui/toasts/")
		entry.State.UI.DismissToast(id)
	}
	writeData(w, http.StatusOK, entry.State.UI.Toasts())
}

// handleUpload handles POST /api/upload: proxy a multipart file to the
// backend and return its URL.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	entry, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	// 5 MB cap on avatar/product images
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := api.Upload(r.Context(), apiToken(entry), header.Filename, file)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}
