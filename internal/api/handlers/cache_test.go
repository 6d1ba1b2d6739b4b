package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/internal/api/handlers"
	"github.com/donaldgifford/crop-advisor/internal/cache"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*domain.RecommendationResult, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenCache) Put(context.Context, string, *domain.RecommendationResult) error {
	return errors.New("connection refused")
}

func (brokenCache) Evict(context.Context, string) error {
	return errors.New("connection refused")
}

func TestCacheHandler_GetEntry(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemoryCache()
	require.NoError(t, mem.Put(context.Background(), "farm:v1:abc", sampleResult()))

	tests := []struct {
		name        string
		fingerprint string
		wantStatus  int
		wantBody    string
	}{
		{name: "hit", fingerprint: "farm:v1:abc", wantStatus: http.StatusOK, wantBody: "Maize"},
		{name: "miss", fingerprint: "farm:v1:zzz", wantStatus: http.StatusNotFound, wantBody: "no cached result"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(mem))

			resp := api.Get("/api/v1/cache/" + tt.fingerprint)
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestCacheHandler_EvictEntry(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemoryCache()
	require.NoError(t, mem.Put(context.Background(), "farm:v1:abc", sampleResult()))

	_, api := humatest.New(t)
	handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(mem))

	resp := api.Delete("/api/v1/cache/farm:v1:abc")
	require.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, 0, mem.Len())

	resp = api.Get("/api/v1/cache/farm:v1:abc")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCacheHandler_BackendErrors(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(brokenCache{}))

	resp := api.Get("/api/v1/cache/farm:v1:abc")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "reading cache")

	resp = api.Delete("/api/v1/cache/farm:v1:abc")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "evicting cache entry")
}
