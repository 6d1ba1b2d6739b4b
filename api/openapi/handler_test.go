package openapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/api/openapi"
)

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	e := echo.New()
	openapi.RegisterRoutes(e, "Crop Advisor API", "/openapi.json")

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
		wantBody     []string
	}{
		{
			name:       "ui page",
			path:       "/docs",
			wantStatus: http.StatusOK,
			wantBody:   []string{"<title>Crop Advisor API</title>", `url: "/openapi.json"`},
		},
		{name: "trailing slash", path: "/docs/", wantStatus: http.StatusMovedPermanently, wantLocation: "/docs"},
		{name: "legacy swagger path", path: "/swagger", wantStatus: http.StatusMovedPermanently, wantLocation: "/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}
