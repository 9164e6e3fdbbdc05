package opttab

import (
	"context"
	"net/http"
)

// GetProfile returns the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (Object, error) {
	return c.getObject(ctx, "/profile")
}

// GetStats returns account statistics.
func (c *Client) GetStats(ctx context.Context) (Object, error) {
	return c.getObject(ctx, "/stats")
}

// GetAnalyticsSummary returns aggregate analytics across all assets.
func (c *Client) GetAnalyticsSummary(ctx context.Context) (Object, error) {
	return c.getObject(ctx, "/analytics/summary")
}

func (c *Client) getObject(ctx context.Context, path string) (Object, error) {
	var out Object
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
