package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// CacheHandler exposes the result cache for inspection.
type CacheHandler struct {
	cache advisor.ResultCache
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(c advisor.ResultCache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// CacheEntryInput identifies a cache entry.
type CacheEntryInput struct {
	Fingerprint string `path:"fingerprint" doc:"Request fingerprint" example:"farm:v1:3f2a..."`
}

// CacheEntryOutput is a cached result.
type CacheEntryOutput struct {
	Body domain.RecommendationResult
}

// GetEntry returns the cached result for a fingerprint, or 404 when it is
// missing or expired.
func (h *CacheHandler) GetEntry(
	ctx context.Context,
	input *CacheEntryInput,
) (*CacheEntryOutput, error) {
	res, ok, err := h.cache.Get(ctx, input.Fingerprint)
	if err != nil {
		return nil, huma.Error500InternalServerError("reading cache: " + err.Error())
	}
	if !ok {
		return nil, huma.Error404NotFound("no cached result for fingerprint")
	}
	return &CacheEntryOutput{Body: *res}, nil
}

// EvictEntry removes a cached result so the next request calls the model.
func (h *CacheHandler) EvictEntry(
	ctx context.Context,
	input *CacheEntryInput,
) (*struct{}, error) {
	if err := h.cache.Evict(ctx, input.Fingerprint); err != nil {
		return nil, huma.Error500InternalServerError("evicting cache entry: " + err.Error())
	}
	return nil, nil //nolint:nilnil // 204 No Content
}

// RegisterCacheRoutes registers cache endpoints with the Huma API.
func RegisterCacheRoutes(api huma.API, h *CacheHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cache-entry",
		Method:      http.MethodGet,
		Path:        "/api/v1/cache/{fingerprint}",
		Summary:     "Get a cached result",
		Description: "Returns the cached recommendation for a request fingerprint.",
		Tags:        []string{"cache"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetEntry)

	huma.Register(api, huma.Operation{
		OperationID:   "evict-cache-entry",
		Method:        http.MethodDelete,
		Path:          "/api/v1/cache/{fingerprint}",
		Summary:       "Evict a cached result",
		Tags:          []string{"cache"},
		DefaultStatus: http.StatusNoContent,
	}, h.EvictEntry)
}
