package catalog

import "strings"

// Filter defaults restored by Reset.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
	DefaultRating   = 0
)

// Gym is a browsable gym listing fetched from the backend.
type Gym struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"owner_id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Rating    float64  `json:"rating"`
	Amenities []string `json:"amenities"`
	MinPrice  int      `json:"min_price"`
}

// Product is a marketplace listing sold by a vendor.
type Product struct {
	ID       string `json:"id"`
	VendorID string `json:"vendor_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"image_url"`
}

// Filter carries the catalog browsing filter. The zero value is NOT the
// default; use DefaultFilter or Reset.
type Filter struct {
	Search    string   `json:"search"`
	MinPrice  int      `json:"min_price"`
	MaxPrice  int      `json:"max_price"`
	Amenities []string `json:"amenities"`
	Rating    float64  `json:"rating"`
}

// DefaultFilter returns the documented filter defaults:
// empty search, price bounds 0-1000, no amenities, rating 0.
func DefaultFilter() Filter {
	return Filter{
		Search:    "",
		MinPrice:  DefaultMinPrice,
		MaxPrice:  DefaultMaxPrice,
		Amenities: []string{},
		Rating:    DefaultRating,
	}
}

// Reset restores the filter to its defaults regardless of prior state.
// POST: *f equals DefaultFilter()
func (f *Filter) Reset() {
	*f = DefaultFilter()
}

// Matches reports whether a gym passes the filter.
// INVARIANT: Filter and Gym are not mutated
func (f *Filter) Matches(g Gym) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(g.Name), q) &&
			!strings.Contains(strings.ToLower(g.Location), q) {
			return false
		}
	}
	if g.MinPrice < f.MinPrice || g.MinPrice > f.MaxPrice {
		return false
	}
	if g.Rating < f.Rating {
		return false
	}
	for _, want := range f.Amenities {
		if !hasAmenity(g.Amenities, want) {
			return false
		}
	}
	return true
}

func hasAmenity(have []string, want string) bool {
	for _, a := range have {
		if strings.EqualFold(a, want) {
			return true
		}
	}
	return false
}
