// Package advisor turns a farm description into categorized crop
// recommendations by prompting a text-generation model, repairing its JSON
// reply, and caching the normalized result.
package advisor

import (
	"context"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// GenerateRequest defines the input for an LLM generation call.
type GenerateRequest struct {
	Prompt          string
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// TokenUsage tracks LLM token consumption.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Content string
	Model   string
	Usage   TokenUsage
}

// LLMBackend defines the interface for LLM text generation.
type LLMBackend interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Name() string
}

// Recommender produces crop recommendations for a farm.
type Recommender interface {
	Recommend(ctx context.Context, raw *domain.FarmRequestRaw) (*Outcome, error)
}

// ResultCache stores normalized results by request fingerprint.
// Get reports false for missing or expired entries.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (*domain.RecommendationResult, bool, error)
	Put(ctx context.Context, fingerprint string, result *domain.RecommendationResult) error
	Evict(ctx context.Context, fingerprint string) error
}
