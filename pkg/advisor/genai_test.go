package advisor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

func TestNewGenAIBackend_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := advisor.NewGenAIBackend(context.Background(), "", "gemini-2.0-flash")
	require.ErrorIs(t, err, advisor.ErrConfiguration)
}

func TestGenAIBackend_Generate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "sdk-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"reasoning\": \"sdk\"}"}]}}],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15},
			"modelVersion": "gemini-test-001"
		}`))
	}))
	defer srv.Close()

	b, err := advisor.NewGenAIBackend(context.Background(), "sdk-key", "gemini-test",
		advisor.WithGenAIBaseURL(srv.URL+"/"),
		advisor.WithGenAIHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	assert.Equal(t, "genai", b.Name())

	resp, err := b.Generate(context.Background(), advisor.GenerateRequest{
		Prompt:          "recommend crops",
		Temperature:     0.2,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reasoning": "sdk"}`, resp.Content)
	assert.Equal(t, "gemini-test-001", resp.Model)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestGenAIBackend_Generate_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"code": 503, "message": "overloaded", "status": "UNAVAILABLE"}}`))
	}))
	defer srv.Close()

	b, err := advisor.NewGenAIBackend(context.Background(), "sdk-key", "gemini-test",
		advisor.WithGenAIBaseURL(srv.URL+"/"),
	)
	require.NoError(t, err)

	_, err = b.Generate(context.Background(), advisor.GenerateRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling genai")
}
