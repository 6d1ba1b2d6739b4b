package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/donaldgifford/crop-advisor/internal/metrics"
)

// Default generation settings.
const (
	DefaultTimeout         = 25 * time.Second
	DefaultTemperature     = 0.2
	DefaultTopK            = 40
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 4096
)

// Completer sends prompts to an LLM backend with a per-attempt timeout.
type Completer struct {
	backend    LLMBackend
	timeout    time.Duration
	params     GenerateRequest
	policy     RetryPolicy
	log        *slog.Logger
	tokenUsage metric.Int64Histogram
}

// CompleterOption configures the Completer.
type CompleterOption func(*Completer)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) CompleterOption {
	return func(c *Completer) {
		c.timeout = d
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) CompleterOption {
	return func(c *Completer) {
		c.params.Temperature = t
	}
}

// WithTopK sets top-k sampling.
func WithTopK(k int) CompleterOption {
	return func(c *Completer) {
		c.params.TopK = k
	}
}

// WithTopP sets nucleus sampling.
func WithTopP(p float64) CompleterOption {
	return func(c *Completer) {
		c.params.TopP = p
	}
}

// WithMaxOutputTokens caps the response length.
func WithMaxOutputTokens(n int) CompleterOption {
	return func(c *Completer) {
		c.params.MaxOutputTokens = n
	}
}

// WithCompleterRetryPolicy sets the policy used by CompleteWithRetry.
func WithCompleterRetryPolicy(p RetryPolicy) CompleterOption {
	return func(c *Completer) {
		c.policy = p
	}
}

// WithCompleterLogger sets a custom logger.
func WithCompleterLogger(l *slog.Logger) CompleterOption {
	return func(c *Completer) {
		c.log = l
	}
}

// NewCompleter creates a Completer for the given backend.
func NewCompleter(backend LLMBackend, opts ...CompleterOption) *Completer {
	c := &Completer{
		backend: backend,
		timeout: DefaultTimeout,
		params: GenerateRequest{
			Temperature:     DefaultTemperature,
			TopK:            DefaultTopK,
			TopP:            DefaultTopP,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
		policy: DefaultRetryPolicy(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// The global meter is a no-op unless OTLP metric export is configured.
	hist, err := otel.Meter(tracerName).Int64Histogram("gen_ai.client.token.usage",
		metric.WithUnit("{token}"),
		metric.WithDescription("Tokens used per completion, by token type."),
	)
	if err != nil {
		c.log.Warn("token usage histogram unavailable", "error", err)
	}
	c.tokenUsage = hist
	return c
}

// Backend returns the backend name.
func (c *Completer) Backend() string {
	return c.backend.Name()
}

// Complete performs a single generation attempt bounded by the timeout.
// A timed-out call is cancelled and reported as an ErrCompletion failure.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := c.params
	req.Prompt = prompt

	start := time.Now()
	resp, err := c.backend.Generate(attemptCtx, req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.CompletionDuration.WithLabelValues(c.backend.Name(), "error").Observe(elapsed)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %s: %w", ErrCompletion, c.backend.Name(), err)
	}
	metrics.CompletionDuration.WithLabelValues(c.backend.Name(), "ok").Observe(elapsed)
	metrics.CompletionTokensTotal.WithLabelValues(c.backend.Name()).Add(float64(resp.Usage.TotalTokens))
	c.recordTokens(ctx, resp)

	c.log.Debug("completion received",
		"backend", c.backend.Name(),
		"model", resp.Model,
		"bytes", len(resp.Content),
		"total_tokens", resp.Usage.TotalTokens,
	)
	return resp.Content, nil
}

func (c *Completer) recordTokens(ctx context.Context, resp GenerateResponse) {
	if c.tokenUsage == nil {
		return
	}
	system := attribute.String("gen_ai.system", c.backend.Name())
	model := attribute.String("gen_ai.response.model", resp.Model)
	c.tokenUsage.Record(ctx, int64(resp.Usage.PromptTokens), metric.WithAttributes(
		system, model, attribute.String("gen_ai.token.type", "input"),
	))
	c.tokenUsage.Record(ctx, int64(resp.Usage.CompletionTokens), metric.WithAttributes(
		system, model, attribute.String("gen_ai.token.type", "output"),
	))
}

// CompleteWithRetry calls Complete under the retry policy and returns the
// first successful reply.
func (c *Completer) CompleteWithRetry(ctx context.Context, prompt string) (string, error) {
	var text string
	err := c.policy.Do(ctx, func(ctx context.Context, _ int) error {
		out, err := c.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		c.log.Warn("completion attempt failed",
			"backend", c.backend.Name(),
			"attempt", attempt,
			"retry_in", wait,
			"error", err,
		)
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
