// Package main implements a mock Gemini generateContent server for local
// development. It answers every prompt with a canned recommendation fixture,
// or with one of several failure shapes, so the advisor's retry and fallback
// paths can be exercised without an API key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Response modes. The -mode flag sets the default; the X-Mock-Mode request
// header overrides it per call.
const (
	modeOK      = "ok"      // fenced JSON fixture
	modeProse   = "prose"   // text with no JSON object
	modeSchema  = "schema"  // JSON without a categories array
	modeError   = "error"   // HTTP 500 with a Gemini error body
	modeBlocked = "blocked" // prompt feedback block
	modeSlow    = "slow"    // fixture after -delay
)

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

type part struct {
	Text string `json:"text"`
}

type candidate struct {
	Content struct {
		Parts []part `json:"parts"`
		Role  string `json:"role"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

type usage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  usage           `json:"usageMetadata"`
	ModelVersion   string          `json:"modelVersion"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type server struct {
	logger  *slog.Logger
	fixture string
	mode    string
	delay   time.Duration
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-gemini/testdata/recommendation.json", "path to recommendation fixture")
	mode := flag.String("mode", modeOK, "default response mode: ok, prose, schema, error, blocked, slow")
	delay := flag.Duration("delay", 30*time.Second, "response delay in slow mode")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "bytes", len(fixture))

	s := &server{logger: logger, fixture: fixture, mode: *mode, delay: *delay}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock gemini server", "addr", addr, "mode", *mode)

	srv := &http.Server{
		Addr:        addr,
		Handler:     requestLogger(logger, s.routes()),
		ReadTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadFixture reads the fixture and checks that it is a JSON object.
func loadFixture(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return "", fmt.Errorf("reading fixture: %w", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("parsing fixture: %w", err)
	}
	return string(data), nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /models/{action}", s.generateHandler)
	mux.HandleFunc("POST /v1beta/models/{action}", s.generateHandler)
	return mux
}

func (s *server) generateHandler(w http.ResponseWriter, r *http.Request) {
	model, ok := strings.CutSuffix(r.PathValue("action"), ":generateContent")
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "unsupported method")
		return
	}
	if r.Header.Get("x-goog-api-key") == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "API key not provided")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON payload")
		return
	}
	prompt := promptText(&req)
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "contents must not be empty")
		return
	}

	mode := s.mode
	if m := r.Header.Get("X-Mock-Mode"); m != "" {
		mode = m
	}

	var text string
	switch mode {
	case modeOK:
		text = "Here are my recommendations:\n```json\n" + s.fixture + "\n```"
	case modeProse:
		text = "I recommend planting sorghum and chickpea this season."
	case modeSchema:
		text = `{"reasoning": "no crops today"}`
	case modeError:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "mock backend failure")
		return
	case modeBlocked:
		writeJSON(w, generateResponse{
			PromptFeedback: &promptFeedback{BlockReason: "SAFETY"},
			ModelVersion:   model,
		})
		return
	case modeSlow:
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
		text = s.fixture
	default:
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "unknown mock mode "+mode)
		return
	}

	promptTokens := len(strings.Fields(prompt))
	replyTokens := len(strings.Fields(text))

	var c candidate
	c.Content.Parts = []part{{Text: text}}
	c.Content.Role = "model"
	c.FinishReason = "STOP"

	writeJSON(w, generateResponse{
		Candidates: []candidate{c},
		UsageMetadata: usage{
			PromptTokenCount:     promptTokens,
			CandidatesTokenCount: replyTokens,
			TotalTokenCount:      promptTokens + replyTokens,
		},
		ModelVersion: model,
	})
	s.logger.Info("generated", "model", model, "mode", mode, "prompt_tokens", promptTokens)
}

func promptText(req *generateRequest) string {
	var b strings.Builder
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, status, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": msg, "status": status},
	})
}
