package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/crop-advisor/internal/store"
	"github.com/donaldgifford/crop-advisor/pkg/advisor"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// ProfilesHandler handles saved farm profiles and their recommendations.
type ProfilesHandler struct {
	store     store.Store
	recommend *RecommendHandler
}

// NewProfilesHandler creates a new ProfilesHandler.
func NewProfilesHandler(s store.Store, rec *RecommendHandler) *ProfilesHandler {
	return &ProfilesHandler{store: s, recommend: rec}
}

// --- Input/Output types ---

// ProfileBody is the wire form of a saved profile.
type ProfileBody struct {
	ID        string    `json:"id"         doc:"Profile UUID"`
	Name      string    `json:"name"       doc:"Profile name"`
	Farm      FarmBody  `json:"farm"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func profileBodyFrom(p *domain.FarmProfile) ProfileBody {
	return ProfileBody{
		ID:        p.ID,
		Name:      p.Name,
		Farm:      farmBodyFrom(&p.Farm),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ListProfilesInput is the input for listing profiles.
type ListProfilesInput struct {
	SoilType        string `query:"soil"     doc:"Filter by soil type"`
	FarmingPriority string `query:"priority" doc:"Filter by farming priority" enum:"profit,balanced,sustainability,"`
	Name            string `query:"name"     doc:"Case-insensitive name substring"`
	Limit           int    `query:"limit"    doc:"Number of results (default 50)" minimum:"0" maximum:"500"`
	Offset          int    `query:"offset"   doc:"Pagination offset"              minimum:"0"`
}

// ListProfilesOutput is the response for listing profiles.
type ListProfilesOutput struct {
	Body struct {
		Profiles []ProfileBody `json:"profiles"`
		Total    int           `json:"total"`
		Limit    int           `json:"limit"`
		Offset   int           `json:"offset"`
	}
}

// ProfileIDInput identifies a single profile.
type ProfileIDInput struct {
	ID string `path:"id" doc:"Profile UUID"`
}

// ProfileOutput is the response for a single profile.
type ProfileOutput struct {
	Body ProfileBody
}

// ProfileRequestBody is the body for creating or replacing a profile.
type ProfileRequestBody struct {
	Name string   `json:"name" minLength:"1" maxLength:"200" doc:"Profile name" example:"North plot"`
	Farm FarmBody `json:"farm"`
}

// CreateProfileInput is the input for creating a profile.
type CreateProfileInput struct {
	Body ProfileRequestBody
}

// UpdateProfileInput is the input for replacing a profile.
type UpdateProfileInput struct {
	ID   string `path:"id" doc:"Profile UUID"`
	Body ProfileRequestBody
}

// HistoryInput is the input for listing a profile's history.
type HistoryInput struct {
	ID    string `path:"id"     doc:"Profile UUID"`
	Limit int    `query:"limit" doc:"Number of entries (default 20)" minimum:"0" maximum:"500"`
}

// HistoryOutput is the response for a profile's history.
type HistoryOutput struct {
	Body struct {
		History []domain.HistoryEntry `json:"history"`
	}
}

// --- Handlers ---

// ListProfiles returns saved profiles with optional filters and pagination.
func (h *ProfilesHandler) ListProfiles(
	ctx context.Context,
	input *ListProfilesInput,
) (*ListProfilesOutput, error) {
	q := &store.ProfileQuery{
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if input.SoilType != "" {
		q.SoilType = &input.SoilType
	}
	if input.FarmingPriority != "" {
		q.FarmingPriority = &input.FarmingPriority
	}
	if input.Name != "" {
		q.Name = &input.Name
	}

	profiles, total, err := h.store.ListProfiles(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing profiles: " + err.Error())
	}

	resp := &ListProfilesOutput{}
	resp.Body.Profiles = make([]ProfileBody, 0, len(profiles))
	for i := range profiles {
		resp.Body.Profiles = append(resp.Body.Profiles, profileBodyFrom(&profiles[i]))
	}
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// GetProfile returns a single profile by ID.
func (h *ProfilesHandler) GetProfile(
	ctx context.Context,
	input *ProfileIDInput,
) (*ProfileOutput, error) {
	p, err := h.store.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, storeError(err, "getting profile")
	}
	return &ProfileOutput{Body: profileBodyFrom(p)}, nil
}

// CreateProfile validates and saves a new profile.
func (h *ProfilesHandler) CreateProfile(
	ctx context.Context,
	input *CreateProfileInput,
) (*ProfileOutput, error) {
	p, err := profileFromBody(&input.Body)
	if err != nil {
		return nil, err
	}

	if err := h.store.CreateProfile(ctx, p); err != nil {
		return nil, huma.Error500InternalServerError("creating profile: " + err.Error())
	}
	return &ProfileOutput{Body: profileBodyFrom(p)}, nil
}

// UpdateProfile validates and replaces an existing profile.
func (h *ProfilesHandler) UpdateProfile(
	ctx context.Context,
	input *UpdateProfileInput,
) (*ProfileOutput, error) {
	p, err := profileFromBody(&input.Body)
	if err != nil {
		return nil, err
	}
	p.ID = input.ID

	if err := h.store.UpdateProfile(ctx, p); err != nil {
		return nil, storeError(err, "updating profile")
	}
	return &ProfileOutput{Body: profileBodyFrom(p)}, nil
}

// DeleteProfile removes a profile and its history.
func (h *ProfilesHandler) DeleteProfile(
	ctx context.Context,
	input *ProfileIDInput,
) (*struct{}, error) {
	if err := h.store.DeleteProfile(ctx, input.ID); err != nil {
		return nil, storeError(err, "deleting profile")
	}
	return nil, nil //nolint:nilnil // 204 No Content
}

// RecommendProfile runs the advisor on a saved profile.
func (h *ProfilesHandler) RecommendProfile(
	ctx context.Context,
	input *ProfileIDInput,
) (*RecommendOutput, error) {
	p, err := h.store.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, storeError(err, "getting profile")
	}
	return h.recommend.run(ctx, &p.Farm, &p.ID)
}

// ListHistory returns the most recent recommendations served for a profile.
func (h *ProfilesHandler) ListHistory(
	ctx context.Context,
	input *HistoryInput,
) (*HistoryOutput, error) {
	if _, err := h.store.GetProfile(ctx, input.ID); err != nil {
		return nil, storeError(err, "getting profile")
	}

	entries, err := h.store.ListHistory(ctx, input.ID, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing history: " + err.Error())
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}

	resp := &HistoryOutput{}
	resp.Body.History = entries
	return resp, nil
}

func profileFromBody(body *ProfileRequestBody) (*domain.FarmProfile, error) {
	raw, err := body.Farm.toRaw()
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid farm", err)
	}
	if _, err := advisor.NormalizeRequest(raw); err != nil {
		return nil, recommendError(err, nil)
	}
	return &domain.FarmProfile{Name: body.Name, Farm: *raw}, nil
}

func storeError(err error, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return huma.Error404NotFound("profile not found")
	}
	return huma.Error500InternalServerError(op + ": " + err.Error())
}

// RegisterProfileRoutes registers profile endpoints with the Huma API.
func RegisterProfileRoutes(api huma.API, h *ProfilesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles",
		Summary:     "List farm profiles",
		Description: "Returns saved farm profiles with optional soil, priority, and name filters.",
		Tags:        []string{"profiles"},
	}, h.ListProfiles)

	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/api/v1/profiles",
		Summary:       "Create a farm profile",
		Description:   "Validates and saves a farm description for later recommendations.",
		Tags:          []string{"profiles"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnprocessableEntity},
	}, h.CreateProfile)

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}",
		Summary:     "Get a farm profile",
		Tags:        []string{"profiles"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetProfile)

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/api/v1/profiles/{id}",
		Summary:     "Replace a farm profile",
		Tags:        []string{"profiles"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
	}, h.UpdateProfile)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-profile",
		Method:        http.MethodDelete,
		Path:          "/api/v1/profiles/{id}",
		Summary:       "Delete a farm profile",
		Description:   "Deletes the profile and its recommendation history.",
		Tags:          []string{"profiles"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteProfile)

	huma.Register(api, huma.Operation{
		OperationID: "recommend-profile",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles/{id}/recommendations",
		Summary:     "Recommend crops for a saved profile",
		Tags:        []string{"profiles", "recommendations"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
	}, h.RecommendProfile)

	huma.Register(api, huma.Operation{
		OperationID: "list-profile-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/recommendations",
		Summary:     "List a profile's recommendation history",
		Description: "Returns the most recent recommendations served for the profile, newest first.",
		Tags:        []string{"profiles", "recommendations"},
		Errors:      []int{http.StatusNotFound},
	}, h.ListHistory)
}
