package advisor

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GenAIBackend implements LLMBackend with the Google Gen AI SDK.
type GenAIBackend struct {
	client *genai.Client
	model  string
}

// GenAIOption configures the GenAIBackend.
type GenAIOption func(*genai.ClientConfig)

// WithGenAIBaseURL points the SDK at a different API host.
func WithGenAIBaseURL(url string) GenAIOption {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = url
	}
}

// WithGenAIHTTPClient overrides the SDK's HTTP client.
func WithGenAIHTTPClient(hc *http.Client) GenAIOption {
	return func(c *genai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// NewGenAIBackend creates an SDK-backed Gemini backend.
func NewGenAIBackend(
	ctx context.Context,
	apiKey, model string,
	opts ...GenAIOption,
) (*GenAIBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: genai API key is not set", ErrConfiguration)
	}
	if model == "" {
		model = defaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GenAIBackend{client: client, model: model}, nil
}

// Name returns the backend name.
func (*GenAIBackend) Name() string {
	return "genai"
}

// Generate calls Models.GenerateContent.
func (b *GenAIBackend) Generate(
	ctx context.Context,
	req GenerateRequest,
) (GenerateResponse, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		TopK:            genai.Ptr(float32(req.TopK)),
		TopP:            genai.Ptr(float32(req.TopP)),
		MaxOutputTokens: int32(req.MaxOutputTokens),
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("calling genai: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return GenerateResponse{}, fmt.Errorf("empty response from genai")
	}

	out := GenerateResponse{Content: text, Model: resp.ModelVersion}
	if out.Model == "" {
		out.Model = b.model
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}
