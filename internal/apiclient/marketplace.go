package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gymhub/internal/domain/cart"
	"gymhub/internal/domain/catalog"
)

// OrderResult is the backend's confirmation of a placed order.
type OrderResult struct {
	OrderID string `json:"order_id"`
	Total   int    `json:"total"`
	Status  string `json:"status"`
}

// Gyms fetches gym listings. The filter is mapped onto query parameters;
// default values are omitted so the unfiltered call stays a bare GET.
func (c *Client) Gyms(ctx context.Context, token string, f catalog.Filter) ([]catalog.Gym, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinPrice != catalog.DefaultMinPrice {
		q.Set("min_price", strconv.Itoa(f.MinPrice))
	}
	if f.MaxPrice != catalog.DefaultMaxPrice {
		q.Set("max_price", strconv.Itoa(f.MaxPrice))
	}
	if len(f.Amenities) > 0 {
		q.Set("amenities", strings.Join(f.Amenities, ","))
	}
	if f.Rating != catalog.DefaultRating {
		q.Set("rating", strconv.FormatFloat(f.Rating, 'f', -1, 64))
	}

	path := "/gyms"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []catalog.Gym
	err := c.do(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

// Gym fetches a single gym listing by id.
func (c *Client) Gym(ctx context.Context, token, gymID string) (catalog.Gym, error) {
	var out catalog.Gym
	err := c.do(ctx, http.MethodGet, "/gyms/"+gymID, token, nil, &out)
	return out, err
}

// Products fetches the marketplace product listings.
func (c *Client) Products(ctx context.Context, token string) ([]catalog.Product, error) {
	var out []catalog.Product
	err := c.do(ctx, http.MethodGet, "/marketplace/products", token, nil, &out)
	return out, err
}

// PlaceOrder submits the cart contents as one order.
func (c *Client) PlaceOrder(ctx context.Context, token string, items []cart.Item) (OrderResult, error) {
	var out OrderResult
	body := map[string]any{"items": items}
	err := c.do(ctx, http.MethodPost, "/marketplace/orders", token, body, &out)
	return out, err
}
