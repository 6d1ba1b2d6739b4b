package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, mode string) *httptest.Server {
	t.Helper()
	fixture, err := loadFixture(filepath.Join("testdata", "recommendation.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	s := &server{logger: testLogger(), fixture: fixture, mode: mode, delay: time.Second}
	srv := httptest.NewServer(s.routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("sending request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const promptBody = `{"contents":[{"parts":[{"text":"recommend crops for a loamy farm"}]}]}`

func TestLoadFixture(t *testing.T) {
	fixture, err := loadFixture(filepath.Join("testdata", "recommendation.json"))
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	if !strings.Contains(fixture, `"categories"`) {
		t.Error("fixture has no categories")
	}

	if _, err := loadFixture(filepath.Join("testdata", "missing.json")); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestGenerate_OK(t *testing.T) {
	srv := newTestServer(t, modeOK)
	resp := post(t, srv.URL+"/models/gemini-mock:generateContent", promptBody,
		map[string]string{"x-goog-api-key": "k"})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusOK)
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(out.Candidates) != 1 {
		t.Fatalf("candidates=%d, want 1", len(out.Candidates))
	}
	if !strings.Contains(out.Candidates[0].Content.Parts[0].Text, "```json") {
		t.Error("expected fenced JSON reply")
	}
	if out.ModelVersion != "gemini-mock" {
		t.Errorf("modelVersion=%s, want gemini-mock", out.ModelVersion)
	}
	if out.UsageMetadata.TotalTokenCount == 0 {
		t.Error("expected token usage")
	}
}

func TestGenerate_Rejections(t *testing.T) {
	srv := newTestServer(t, modeOK)

	tests := []struct {
		name    string
		path    string
		body    string
		headers map[string]string
		want    int
	}{
		{
			name: "missing api key",
			path: "/models/gemini-mock:generateContent",
			body: promptBody,
			want: http.StatusUnauthorized,
		},
		{
			name:    "unsupported method",
			path:    "/models/gemini-mock:countTokens",
			body:    promptBody,
			headers: map[string]string{"x-goog-api-key": "k"},
			want:    http.StatusNotFound,
		},
		{
			name:    "empty contents",
			path:    "/models/gemini-mock:generateContent",
			body:    `{"contents":[]}`,
			headers: map[string]string{"x-goog-api-key": "k"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "unknown mode",
			path:    "/models/gemini-mock:generateContent",
			body:    promptBody,
			headers: map[string]string{"x-goog-api-key": "k", "X-Mock-Mode": "nope"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "error mode",
			path:    "/models/gemini-mock:generateContent",
			body:    promptBody,
			headers: map[string]string{"x-goog-api-key": "k", "X-Mock-Mode": modeError},
			want:    http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body, tt.headers)
			if resp.StatusCode != tt.want {
				t.Errorf("status=%d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

// The advisor's own Gemini backend should accept every success shape the
// mock produces and reject the failure shapes.
func TestGeminiBackendAgainstMock(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
		check   func(t *testing.T, content string)
	}{
		{
			mode: modeOK,
			check: func(t *testing.T, content string) {
				parsed, err := advisor.ExtractJSON(content)
				if err != nil {
					t.Fatalf("ExtractJSON: %v", err)
				}
				result, err := advisor.NormalizeResult(parsed)
				if err != nil {
					t.Fatalf("NormalizeResult: %v", err)
				}
				if result.CropCount() != 4 {
					t.Errorf("crops=%d, want 4", result.CropCount())
				}
			},
		},
		{
			mode: modeProse,
			check: func(t *testing.T, content string) {
				if _, err := advisor.ExtractJSON(content); err == nil {
					t.Error("expected extraction failure for prose")
				}
			},
		},
		{
			mode: modeSchema,
			check: func(t *testing.T, content string) {
				parsed, err := advisor.ExtractJSON(content)
				if err != nil {
					t.Fatalf("ExtractJSON: %v", err)
				}
				if _, err := advisor.NormalizeResult(parsed); err == nil {
					t.Error("expected schema failure")
				}
			},
		},
		{mode: modeError, wantErr: true},
		{mode: modeBlocked, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			srv := newTestServer(t, tt.mode)
			b, err := advisor.NewGeminiBackend("k",
				advisor.WithGeminiEndpoint(srv.URL+"/models"),
				advisor.WithGeminiModel("gemini-mock"),
			)
			if err != nil {
				t.Fatalf("NewGeminiBackend: %v", err)
			}

			resp, err := b.Generate(context.Background(), advisor.GenerateRequest{Prompt: "crops?"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if resp.Model != "gemini-mock" {
				t.Errorf("model=%s, want gemini-mock", resp.Model)
			}
			tt.check(t, resp.Content)
		})
	}
}

func TestGenerate_SlowHonorsClientCancel(t *testing.T) {
	srv := newTestServer(t, modeSlow)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		srv.URL+"/models/gemini-mock:generateContent", strings.NewReader(promptBody))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("x-goog-api-key", "k")

	resp, err := http.DefaultClient.Do(req)
	if err == nil {
		resp.Body.Close()
		t.Fatal("expected client timeout")
	}
}
