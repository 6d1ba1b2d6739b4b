package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// ProfilesResponse wraps a paginated profiles response.
type ProfilesResponse struct {
	Profiles []domain.FarmProfile `json:"profiles"`
	Total    int                  `json:"total"`
}

// ListProfilesParams defines query parameters for profile queries.
type ListProfilesParams struct {
	SoilType        string
	FarmingPriority string
	Name            string
	Limit           int
	Offset          int
}

// ListProfiles returns profiles matching the given parameters.
func (c *Client) ListProfiles(
	ctx context.Context,
	params *ListProfilesParams,
) (*ProfilesResponse, error) {
	q := url.Values{}
	if params.SoilType != "" {
		q.Set("soil", params.SoilType)
	}
	if params.FarmingPriority != "" {
		q.Set("priority", params.FarmingPriority)
	}
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/v1/profiles"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ProfilesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProfile returns a single profile by ID.
func (c *Client) GetProfile(ctx context.Context, id string) (*domain.FarmProfile, error) {
	var p domain.FarmProfile
	if err := c.get(ctx, profilePath(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type profileRequest struct {
	Name string                `json:"name"`
	Farm domain.FarmRequestRaw `json:"farm"`
}

// CreateProfile saves a new farm profile.
func (c *Client) CreateProfile(
	ctx context.Context,
	name string,
	farm *domain.FarmRequestRaw,
) (*domain.FarmProfile, error) {
	var p domain.FarmProfile
	body := profileRequest{Name: name, Farm: *farm}
	if err := c.post(ctx, "/api/v1/profiles", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile replaces a saved farm profile.
func (c *Client) UpdateProfile(
	ctx context.Context,
	id, name string,
	farm *domain.FarmRequestRaw,
) (*domain.FarmProfile, error) {
	var p domain.FarmProfile
	body := profileRequest{Name: name, Farm: *farm}
	if err := c.put(ctx, profilePath(id), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProfile removes a profile and its history.
func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	return c.del(ctx, profilePath(id), nil)
}

// RecommendProfile requests recommendations for a saved profile.
func (c *Client) RecommendProfile(ctx context.Context, id string) (*Recommendation, error) {
	var rec Recommendation
	if err := c.post(ctx, profilePath(id)+"/recommendations", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListHistory returns recent recommendations served for a profile.
func (c *Client) ListHistory(
	ctx context.Context,
	id string,
	limit int,
) ([]domain.HistoryEntry, error) {
	path := profilePath(id) + "/recommendations"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp struct {
		History []domain.HistoryEntry `json:"history"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

func profilePath(id string) string {
	return fmt.Sprintf("/api/v1/profiles/%s", url.PathEscape(id))
}
