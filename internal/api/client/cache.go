package client

import (
	"context"
	"net/url"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// GetCachedResult returns the cached result for a fingerprint.
func (c *Client) GetCachedResult(
	ctx context.Context,
	fingerprint string,
) (*domain.RecommendationResult, error) {
	var res domain.RecommendationResult
	if err := c.get(ctx, "/api/v1/cache/"+url.PathEscape(fingerprint), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// EvictCachedResult removes a cached result.
func (c *Client) EvictCachedResult(ctx context.Context, fingerprint string) error {
	return c.del(ctx, "/api/v1/cache/"+url.PathEscape(fingerprint), nil)
}
