package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"gymhub/internal/domain/membership"
)

// MembershipsForProfile fetches every membership held by a profile.
func (c *Client) MembershipsForProfile(ctx context.Context, token, profileID string) ([]membership.Membership, error) {
	var out []membership.Membership
	path := fmt.Sprintf("/subscriptions/profile/%s", profileID)
	err := c.do(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

// MembershipsForGym fetches the member roster of one gym.
func (c *Client) MembershipsForGym(ctx context.Context, token, gymID string) ([]membership.Membership, error) {
	var out []membership.Membership
	path := fmt.Sprintf("/subscriptions/gym/%s", gymID)
	err := c.do(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

// Subscribe starts a membership on the given plan.
func (c *Client) Subscribe(ctx context.Context, token, gymID, planName string) (membership.Membership, error) {
	var out membership.Membership
	body := map[string]string{"gym_id": gymID, "plan": planName}
	err := c.do(ctx, http.MethodPost, "/subscriptions", token, body, &out)
	return out, err
}

// CancelMembership cancels one membership by id.
func (c *Client) CancelMembership(ctx context.Context, token, membershipID string) error {
	path := fmt.Sprintf("/subscriptions/%s/cancel", membershipID)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}
