package catalog_test

import (
	"reflect"
	"testing"

	"gymhub/internal/domain/catalog"
)

// TestFilter_Reset verifies Reset restores the exact documented defaults.
func TestFilter_Reset(t *testing.T) {
	f := catalog.Filter{
		Search:    "boxing",
		MinPrice:  50,
		MaxPrice:  300,
		Amenities: []string{"sauna", "pool"},
		Rating:    4.5,
	}
	f.Reset()

	want := catalog.Filter{
		Search:    "",
		MinPrice:  0,
		MaxPrice:  1000,
		Amenities: []string{},
		Rating:    0,
	}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("after Reset: %+v, want %+v", f, want)
	}
}

// TestFilter_Matches covers the filter predicate.
func TestFilter_Matches(t *testing.T) {
	gym := catalog.Gym{
		Name:      "Ironworks Strength",
		Location:  "Wellington",
		Rating:    4.2,
		Amenities: []string{"Sauna", "parking"},
		MinPrice:  80,
	}

	tests := []struct {
		name   string
		filter catalog.Filter
		want   bool
	}{
		{"default filter matches", catalog.DefaultFilter(), true},
		{
			"search matches name case-insensitively",
			catalog.Filter{Search: "ironworks", MaxPrice: 1000},
			true,
		},
		{
			"search matches location",
			catalog.Filter{Search: "welling", MaxPrice: 1000},
			true,
		},
		{
			"search misses",
			catalog.Filter{Search: "pilates", MaxPrice: 1000},
			false,
		},
		{
			"price below min bound",
			catalog.Filter{MinPrice: 100, MaxPrice: 1000},
			false,
		},
		{
			"price above max bound",
			catalog.Filter{MaxPrice: 50},
			false,
		},
		{
			"rating too low",
			catalog.Filter{MaxPrice: 1000, Rating: 4.5},
			false,
		},
		{
			"required amenity present regardless of case",
			catalog.Filter{MaxPrice: 1000, Amenities: []string{"sauna"}},
			true,
		},
		{
			"required amenity missing",
			catalog.Filter{MaxPrice: 1000, Amenities: []string{"pool"}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(gym); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
