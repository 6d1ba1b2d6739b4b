package advisor_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

func TestNewGeminiBackend_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := advisor.NewGeminiBackend("  ")
	require.ErrorIs(t, err, advisor.ErrConfiguration)

	b, err := advisor.NewGeminiBackend("key")
	require.NoError(t, err)
	assert.Equal(t, "gemini", b.Name())
}

func TestGeminiBackend_Generate(t *testing.T) {
	t.Parallel()

	successResponse := `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "{\"categories\":"}, {"text": " []}"}]},
			"finishReason": "STOP"
		}],
		"usageMetadata": {"promptTokenCount": 120, "candidatesTokenCount": 30, "totalTokenCount": 150},
		"modelVersion": "gemini-2.0-flash-001"
	}`

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantErrMsg string
		wantResp   string
		wantModel  string
		wantUsage  int
	}{
		{
			name: "successful generation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				contents := body["contents"].([]any)
				parts := contents[0].(map[string]any)["parts"].([]any)
				assert.Equal(t, "recommend crops", parts[0].(map[string]any)["text"])
				gen := body["generationConfig"].(map[string]any)
				assert.InDelta(t, 0.2, gen["temperature"], 1e-9)
				assert.InDelta(t, 40, gen["topK"], 1e-9)
				assert.InDelta(t, 0.95, gen["topP"], 1e-9)
				assert.InDelta(t, 4096, gen["maxOutputTokens"], 1e-9)

				_, _ = w.Write([]byte(successResponse))
			},
			wantResp:  `{"categories": []}`,
			wantModel: "gemini-2.0-flash-001",
			wantUsage: 150,
		},
		{
			name: "structured API error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "Quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
			},
			wantErr:    true,
			wantErrMsg: "gemini API error (status 429): RESOURCE_EXHAUSTED: Quota exceeded",
		},
		{
			name: "plain error body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream unavailable"))
			},
			wantErr:    true,
			wantErrMsg: "gemini API error (status 502): upstream unavailable",
		},
		{
			name: "blocked prompt",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"promptFeedback": {"blockReason": "SAFETY"}}`))
			},
			wantErr:    true,
			wantErrMsg: "gemini blocked prompt: SAFETY",
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"candidates": []}`))
			},
			wantErr:    true,
			wantErrMsg: "empty response from gemini",
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErr:    true,
			wantErrMsg: "parsing gemini response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			b, err := advisor.NewGeminiBackend("test-key",
				advisor.WithGeminiEndpoint(srv.URL+"/models/"),
				advisor.WithGeminiModel("gemini-test"),
				advisor.WithGeminiHTTPClient(srv.Client()),
			)
			require.NoError(t, err)

			resp, err := b.Generate(context.Background(), advisor.GenerateRequest{
				Prompt:          "recommend crops",
				Temperature:     advisor.DefaultTemperature,
				TopK:            advisor.DefaultTopK,
				TopP:            advisor.DefaultTopP,
				MaxOutputTokens: advisor.DefaultMaxOutputTokens,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResp, resp.Content)
			assert.Equal(t, tt.wantModel, resp.Model)
			assert.Equal(t, tt.wantUsage, resp.Usage.TotalTokens)
		})
	}
}

func TestGeminiBackend_RateLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{}"}]}}]}`))
	}))
	defer srv.Close()

	b, err := advisor.NewGeminiBackend("k",
		advisor.WithGeminiEndpoint(srv.URL),
		advisor.WithGeminiRateLimit(0.01, 1),
	)
	require.NoError(t, err)

	_, err = b.Generate(context.Background(), advisor.GenerateRequest{Prompt: "p"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = b.Generate(ctx, advisor.GenerateRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
}

func TestGeminiBackend_CancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	b, err := advisor.NewGeminiBackend("k", advisor.WithGeminiEndpoint(srv.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = b.Generate(ctx, advisor.GenerateRequest{Prompt: "p"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
