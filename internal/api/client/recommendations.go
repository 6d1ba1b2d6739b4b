package client

import (
	"context"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// Recommendation is a served recommendation as returned by the API.
type Recommendation struct {
	Result      domain.RecommendationResult `json:"result"`
	Source      domain.ResultSource         `json:"source"`
	Fingerprint string                      `json:"fingerprint"`
	Attempts    int                         `json:"attempts"`
	FailureKind string                      `json:"failureKind,omitempty"`
	HistoryID   string                      `json:"historyId,omitempty"`
}

// Recommend requests crop recommendations for a farm.
func (c *Client) Recommend(
	ctx context.Context,
	farm *domain.FarmRequestRaw,
) (*Recommendation, error) {
	var rec Recommendation
	if err := c.post(ctx, "/api/v1/recommendations", farm, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
