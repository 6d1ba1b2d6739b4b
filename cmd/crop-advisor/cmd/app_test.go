package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/internal/config"
	storeMocks "github.com/donaldgifford/crop-advisor/internal/store/mocks"
	"github.com/donaldgifford/crop-advisor/pkg/advisor"
	advisorMocks "github.com/donaldgifford/crop-advisor/pkg/advisor/mocks"
	"github.com/donaldgifford/crop-advisor/pkg/logger"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.LLMConfig
		wantName string
		wantErr  error
	}{
		{
			name:     "gemini",
			cfg:      config.LLMConfig{Backend: "gemini", APIKey: "key", Model: "gemini-2.0-flash"},
			wantName: "gemini",
		},
		{
			name:     "gemini with endpoint and rate limit",
			cfg:      config.LLMConfig{Backend: "gemini", APIKey: "key", Endpoint: "http://localhost:8090/v1beta/models", RateLimit: config.RateLimitConfig{PerSecond: 2, Burst: 1}},
			wantName: "gemini",
		},
		{
			name:    "gemini without key",
			cfg:     config.LLMConfig{Backend: "gemini"},
			wantErr: advisor.ErrConfiguration,
		},
		{
			name:    "genai without key",
			cfg:     config.LLMConfig{Backend: "genai"},
			wantErr: advisor.ErrConfiguration,
		},
		{
			name:    "unknown backend",
			cfg:     config.LLMConfig{Backend: "openai", APIKey: "key"},
			wantErr: advisor.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := newBackend(context.Background(), &tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, b.Name())
		})
	}
}

func TestNewResultCache(t *testing.T) {
	t.Parallel()

	t.Run("memory sweeps", func(t *testing.T) {
		t.Parallel()

		rc, err := newResultCache(&config.CacheConfig{Backend: "memory"})
		require.NoError(t, err)
		assert.NotNil(t, rc.sweeper)
		require.NoError(t, rc.pinger.Ping(context.Background()))
		require.NoError(t, rc.close())
	})

	t.Run("redis has no sweeper", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		rc, err := newResultCache(&config.CacheConfig{
			Backend: "redis",
			Redis:   config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "test:"},
		})
		require.NoError(t, err)
		assert.Nil(t, rc.sweeper)
		require.NoError(t, rc.pinger.Ping(context.Background()))
		require.NoError(t, rc.close())
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()

		_, err := newResultCache(&config.CacheConfig{Backend: "memcached"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "memcached")
	})
}

func TestNewFallbackReporter(t *testing.T) {
	t.Parallel()

	r := newFallbackReporter(&config.NotificationsConfig{}, logger.Discard())
	r.Handle(context.Background(), advisor.FallbackEvent{Fingerprint: "farm:v1:abc"})
	r.Wait()
}

func newTestRouter(t *testing.T, withStore bool) (http.Handler, *advisorMocks.MockRecommender) {
	t.Helper()

	rc, err := newResultCache(&config.CacheConfig{Backend: "memory"})
	require.NoError(t, err)

	rec := advisorMocks.NewMockRecommender(t)
	deps := routerDeps{advisor: rec, cache: rc, log: logger.Discard()}
	if withStore {
		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().Ping(mock.Anything).Return(nil).Maybe()
		ms.EXPECT().ListProfiles(mock.Anything, mock.Anything).Return(nil, 0, nil).Maybe()
		deps.store = ms
	}
	return newRouter(deps), rec
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewRouter_OperationalRoutes(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, false)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/healthz", wantStatus: http.StatusOK, wantBody: `"ok"`},
		{path: "/readyz", wantStatus: http.StatusOK, wantBody: `"cache":"ok"`},
		{path: "/openapi.json", wantStatus: http.StatusOK, wantBody: "/api/v1/recommendations"},
		{path: "/docs", wantStatus: http.StatusOK, wantBody: "swagger-ui"},
		{path: "/metrics", wantStatus: http.StatusOK, wantBody: "crop_advisor_"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := serve(h, http.MethodGet, tt.path, "")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestNewRouter_ProfilesNeedStore(t *testing.T) {
	t.Parallel()

	without, _ := newTestRouter(t, false)
	assert.Equal(t, http.StatusNotFound, serve(without, http.MethodGet, "/api/v1/profiles", "").Code)
	assert.NotContains(t, serve(without, http.MethodGet, "/openapi.json", "").Body.String(), "/api/v1/profiles")

	with, _ := newTestRouter(t, true)
	resp := serve(with, http.MethodGet, "/api/v1/profiles", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, serve(with, http.MethodGet, "/readyz", "").Body.String(), `"database":"ok"`)
}

func TestNewRouter_Recommend(t *testing.T) {
	t.Parallel()

	h, rec := newTestRouter(t, false)
	rec.EXPECT().
		Recommend(mock.Anything, mock.Anything).
		Return(&advisor.Outcome{
			Result:      advisor.FallbackResult(),
			Source:      domain.SourceFallback,
			Fingerprint: "farm:v1:abc",
			Attempts:    3,
		}, nil).
		Once()

	body := `{"location":{"name":"Nairobi"},"landSize":5,"soilType":"Clay","waterAvailability":"rainfed","budget":500,"farmingPriority":"profit"}`
	resp := serve(h, http.MethodPost, "/api/v1/recommendations", body)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "fallback", resp.Header().Get("X-Recommendation-Source"))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := versionCommand()
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())
	assert.Equal(t, "crop-advisor dev\n", out.String())
}
