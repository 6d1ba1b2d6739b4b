package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

func sampleFarm() *domain.FarmRequestRaw {
	return &domain.FarmRequestRaw{
		Location:          &domain.Location{Name: "Nairobi"},
		LandSize:          10,
		SoilType:          "Loamy",
		WaterAvailability: domain.WaterCategoryOf("rainfed"),
		Budget:            1000,
		FarmingPriority:   "balanced",
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.GetProfile(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		wantNotFound bool
	}{
		{name: "server error", status: http.StatusInternalServerError},
		{name: "not found", status: http.StatusNotFound, wantNotFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.GetProfile(context.Background(), "p1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "API error (HTTP")
			assert.Equal(t, tt.wantNotFound, IsNotFound(err))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_Recommend(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/recommendations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rainfed", body["waterAvailability"])
		assert.Equal(t, "Loamy", body["soilType"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": {"categories": [{"type": "Vegetables", "crops": [{"name": "Kale", "score": 70, "isTopPick": true}]}], "reasoning": "ok"},
			"source": "fresh",
			"fingerprint": "farm:v1:abc",
			"attempts": 2
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	rec, err := c.Recommend(context.Background(), sampleFarm())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFresh, rec.Source)
	assert.Equal(t, 2, rec.Attempts)
	require.Len(t, rec.Result.Categories, 1)
	assert.Equal(t, "Kale", rec.Result.Categories[0].Crops[0].Name)
}

func TestClient_ListProfiles(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/profiles", r.URL.Path)
		assert.Equal(t, "Clay", r.URL.Query().Get("soil"))
		assert.Equal(t, "profit", r.URL.Query().Get("priority"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"profiles":[{"id":"p1","name":"North","farm":{"soilType":"Clay","waterAvailability":14}}],"total":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ListProfiles(context.Background(), &ListProfilesParams{
		SoilType:        "Clay",
		FarmingPriority: "profit",
		Limit:           10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Profiles, 1)
	require.NotNil(t, resp.Profiles[0].Farm.WaterAvailability)
	require.NotNil(t, resp.Profiles[0].Farm.WaterAvailability.Inches)
	assert.InDelta(t, 14.0, *resp.Profiles[0].Farm.WaterAvailability.Inches, 0)
}

func TestClient_CreateProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/profiles", r.URL.Path)

		var body struct {
			Name string         `json:"name"`
			Farm map[string]any `json:"farm"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "North plot", body.Name)
		assert.Equal(t, "Loamy", body.Farm["soilType"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p-created","name":"North plot","farm":{"soilType":"Loamy"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.CreateProfile(context.Background(), "North plot", sampleFarm())
	require.NoError(t, err)
	assert.Equal(t, "p-created", p.ID)
}

func TestClient_UpdateProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/profiles/p1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","name":"Renamed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.UpdateProfile(context.Background(), "p1", "Renamed", sampleFarm())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
}

func TestClient_DeleteProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/profiles/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.DeleteProfile(context.Background(), "p1"))
}

func TestClient_RecommendProfileAndHistory(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/profiles/p1/recommendations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"result":{"categories":[]},"source":"fallback","failureKind":"transport","historyId":"h9"}`))
		case http.MethodGet:
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"history":[{"id":"h9","fingerprint":"farm:v1:abc","source":"fallback","attempts":3}]}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	rec, err := c.RecommendProfile(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, rec.Source)
	assert.Equal(t, "transport", rec.FailureKind)
	assert.Equal(t, "h9", rec.HistoryID)

	history, err := c.ListHistory(context.Background(), "p1", 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].Attempts)
}

func TestClient_CacheEntries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/cache/farm:v1:abc", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"categories":[],"reasoning":"cached"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.GetCachedResult(context.Background(), "farm:v1:abc")
	require.NoError(t, err)
	assert.Equal(t, "cached", res.Reasoning)
	require.NoError(t, c.EvictCachedResult(context.Background(), "farm:v1:abc"))
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
